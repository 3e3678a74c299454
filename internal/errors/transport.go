package errors

import "net/http"

const KindTransport = "transport"

// ErrTransport marks a network or timeout failure where the outcome of
// the remote operation is unknown. Callers holding optimistic state
// must reconcile against the store rather than assume either result.
var ErrTransport = &Exception{
	Kind:       KindTransport,
	Message:    "transport failure",
	StatusCode: http.StatusBadGateway,
}

func Transport(message string) *Exception {
	return &Exception{
		Kind:       KindTransport,
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}
