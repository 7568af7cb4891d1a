package domain

// ValidationError reports the first constraint violated by an input. It maps
// to HTTP 400 in the API error handler.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}
