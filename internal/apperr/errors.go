package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// UpstreamError is a non-2xx answer from an external API that is relayed to
// the client with the upstream status and body.
type UpstreamError struct {
	Message string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Message, e.Status)
}

func NewUpstream(msg string, status int, body string) *UpstreamError {
	return &UpstreamError{Message: msg, Status: status, Body: body}
}
