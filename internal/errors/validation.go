package errors

import "net/http"

const KindValidation = "validation"

var ErrValidation = &Exception{
	Kind:       KindValidation,
	Message:    "invalid request",
	StatusCode: http.StatusBadRequest,
}

// Validation builds a user-correctable field error.
func Validation(message string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
