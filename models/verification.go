package models

// Prediction is one ranked classifier label. The json keys mirror what the
// classifier service emits and what the web client already expects.
type Prediction struct {
	Label       string  `json:"className"`
	Probability float64 `json:"probability"`
}

// VerificationResult is produced per submission attempt and never persisted.
// On accept it accompanies the report the user confirms; on reject it is
// discarded and the user retries with a new image.
type VerificationResult struct {
	IsHoneybee  bool         `json:"isHoneybee"`
	Confidence  int          `json:"confidence"` // 0..100
	Labels      []string     `json:"labels"`
	Predictions []Prediction `json:"predictions,omitempty"`
	Message     string       `json:"message,omitempty"`
}
