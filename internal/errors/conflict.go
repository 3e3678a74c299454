package errors

import "net/http"

const KindConflict = "conflict"

var ErrTimerAlreadyRunning = &Exception{
	Kind:       KindConflict,
	Message:    "an open time entry already exists, stop it first",
	StatusCode: http.StatusConflict,
}

var ErrConcurrentUpdate = &Exception{
	Kind:       KindConflict,
	Message:    "task was modified concurrently",
	StatusCode: http.StatusConflict,
}
