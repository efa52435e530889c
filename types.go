package main

// Request/response DTOs. Keep them minimal and explicit.

type verifyReq struct {
	// ImageData is a base64 data URL ("data:image/jpeg;base64,...") or a
	// bare base64 payload, as sent by the capture clients.
	ImageData string `json:"imageData"`
	Source    string `json:"source,omitempty"` // "camera" or "upload"
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

type contactReq struct {
	Region      string `json:"region"`
	ContactName string `json:"contactName"`
	PhoneNumber string `json:"phoneNumber"`
	Designation string `json:"designation"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}

type healthResp struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"modelLoaded"`
	Timestamp   string `json:"timestamp"`
}

type messageResp struct {
	Message string `json:"message"`
}
