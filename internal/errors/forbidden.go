package errors

import "net/http"

const KindForbidden = "forbidden"

// ErrForbidden is deliberately generic: it never explains which role
// or ownership check failed.
var ErrForbidden = &Exception{
	Kind:       KindForbidden,
	Message:    "forbidden",
	StatusCode: http.StatusForbidden,
}

var ErrUnauthenticated = &Exception{
	Kind:       KindForbidden,
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}
