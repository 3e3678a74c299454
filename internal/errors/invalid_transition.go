package errors

import "net/http"

const KindInvalidTransition = "invalid_transition"

var ErrInvalidTransition = &Exception{
	Kind:       KindInvalidTransition,
	Message:    "invalid status transition",
	StatusCode: http.StatusUnprocessableEntity,
}

func InvalidTransition(message string) *Exception {
	return &Exception{
		Kind:       KindInvalidTransition,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}
