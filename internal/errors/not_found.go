package errors

import "net/http"

const KindNotFound = "not_found"

var ErrTaskNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrUserNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}

var ErrNoOpenTimer = &Exception{
	Kind:       KindNotFound,
	Message:    "no open time entry found",
	StatusCode: http.StatusNotFound,
}
