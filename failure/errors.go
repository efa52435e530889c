package failure

import (
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrNoImage = New(
		errors.New("verify request carried no image data"),
		http.StatusBadRequest,
		"No image data provided",
	)

	ErrModelUnavailable = New(
		errors.New("classifier not loaded"),
		http.StatusServiceUnavailable,
		"AI Model failed to initialize. Please try again in a moment.",
	)

	ErrContactNotFound = New(
		errors.New("emergency contact id not found"),
		http.StatusNotFound,
		"Contact not found",
	)

	Validation = func(msg string) *RequestFailure {
		return New(errors.New(msg), http.StatusBadRequest, msg)
	}

	BadImage = func(err error) *RequestFailure {
		return New(
			errors.Wrap(err, "image decode"),
			http.StatusBadRequest,
			"Could not decode the supplied image",
		)
	}

	Storage = func(err error) *RequestFailure {
		return New(
			errors.Wrap(err, "report persistence"),
			http.StatusInternalServerError,
			"Failed to store report",
		)
	}

	Internal = func(err error) *RequestFailure {
		return New(errors.Wrap(err, "internal"), http.StatusInternalServerError, "")
	}
)
