package errors

import (
	"errors"
	"fmt"
)

// UpstreamError carries the wire-level detail of a failed call to the
// commerce platform API. The API client wraps it into an *Error; Dump
// surfaces the fields for log entries.
type UpstreamError struct {
	Operation  string
	HTTPStatus int
	Messages   []string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Messages) > 0 {
		return fmt.Sprintf("upstream %s failed: %s", e.Operation, e.Messages[0])
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream %s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("upstream %s failed with status %d", e.Operation, e.HTTPStatus)
}

func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamOperation string   `json:"upstream_operation,omitempty"`
	UpstreamStatus    int      `json:"upstream_status,omitempty"`
	UpstreamMessages  []string `json:"upstream_messages,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		d.UpstreamOperation = upErr.Operation
		d.UpstreamStatus = upErr.HTTPStatus
		d.UpstreamMessages = upErr.Messages
	}

	return d
}
