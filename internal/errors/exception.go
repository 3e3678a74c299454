package errors

import "errors"

// Exception is a domain error carrying the HTTP status it maps to.
// Kind groups errors for errors.Is classification, so a dynamically
// built validation message still matches the ErrValidation sentinel.
type Exception struct {
	Kind       string
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Is(target error) bool {
	var other *Exception
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}
