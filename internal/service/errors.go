package service

import "fmt"

// ValidationError marks a request rejected by business rules, as opposed
// to a datastore or infrastructure fault. Handlers report it as a client
// error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
