package analyzer

import (
	"errors"
	"fmt"
)

// User-facing outcome messages.
const (
	MessageTimeout   = "Request timed out."
	MessageNetwork   = "Network error. Please try again."
	MessageEmpty     = "No response data."
	MessageMalformed = "Malformed response data."
	serverPrefix     = "Server error: "
)

// TimeoutError means the request was aborted by the client-side timeout.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() (msg string) {
	msg = fmt.Sprintf("analysis request timed out: %v", e.Err)
	return msg
}

func (e *TimeoutError) Unwrap() (err error) {
	err = e.Err
	return err
}

// ServerError means the service answered with a non-2xx status.
type ServerError struct {
	StatusCode int
	Status     string
	// Message is the service-provided explanation, if any.
	Message string
}

func (e *ServerError) Error() (msg string) {
	msg = fmt.Sprintf("analysis service returned %d: %s", e.StatusCode, e.Reason())
	return msg
}

// Reason returns the service message, falling back to the status text.
func (e *ServerError) Reason() (reason string) {
	reason = e.Message
	if reason == "" {
		reason = e.Status
	}
	return reason
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() (msg string) {
	msg = fmt.Sprintf("no response from analysis service: %v", e.Err)
	return msg
}

func (e *NetworkError) Unwrap() (err error) {
	err = e.Err
	return err
}

// EmptyResponseError means the service succeeded but sent no body.
type EmptyResponseError struct {
	StatusCode int
}

func (e *EmptyResponseError) Error() (msg string) {
	msg = fmt.Sprintf("analysis service returned %d with an empty body", e.StatusCode)
	return msg
}

// MalformedResponseError means a successful body could not be decoded.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() (msg string) {
	msg = fmt.Sprintf("malformed analysis response: %v", e.Err)
	return msg
}

func (e *MalformedResponseError) Unwrap() (err error) {
	err = e.Err
	return err
}

// Message maps a submission error to the single line shown to the user.
func Message(err error) (msg string) {
	if err == nil {
		return msg
	}

	var timeoutErr *TimeoutError
	var serverErr *ServerError
	var networkErr *NetworkError
	var emptyErr *EmptyResponseError
	var malformedErr *MalformedResponseError

	switch {
	case errors.As(err, &timeoutErr):
		msg = MessageTimeout
	case errors.As(err, &serverErr):
		msg = serverPrefix + serverErr.Reason()
	case errors.As(err, &networkErr):
		msg = MessageNetwork
	case errors.As(err, &emptyErr):
		msg = MessageEmpty
	case errors.As(err, &malformedErr):
		msg = MessageMalformed
	default:
		msg = err.Error()
	}

	return msg
}
