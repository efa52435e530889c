// Package failure carries request-level errors across handler boundaries:
// a developer error for logging plus the HTTP status and public message
// actually written to the caller.
package failure

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

type RequestFailure struct {
	err  error  // developer level error for logging
	Code int    // http status
	Msg  string // public facing message to send
}

func New(err error, statusCode int, userMsg string) *RequestFailure {
	if userMsg == "" {
		userMsg = http.StatusText(statusCode)
	}
	return &RequestFailure{
		err:  err,
		Code: statusCode,
		Msg:  userMsg,
	}
}

func (rf *RequestFailure) Error() string {
	return fmt.Sprintf("%v - %v", http.StatusText(rf.Code), rf.Msg)
}

// Unwrap exposes the internal error for errors.Is / errors.As checks.
func (rf *RequestFailure) Unwrap() error { return rf.err }

// Write logs the internal error and sends the public JSON body.
func (rf *RequestFailure) Write(w http.ResponseWriter, r *http.Request) {
	if rf.err != nil {
		slog.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", rf.Code),
			slog.String("error", rf.err.Error()),
		)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rf.Code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": rf.Msg})
}
