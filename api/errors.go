package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by Call.
type ErrorKind int

const (
	// KindTransport means the submission itself failed: the network was
	// unreachable, the request was rejected, or the server answered with a
	// non-success status.
	KindTransport ErrorKind = iota + 1
	// KindDecode means the server answered successfully but the payload did
	// not match the declared response shape.
	KindDecode
	// KindEncode means the request value could not be serialised.
	KindEncode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against an *Error's kind.
var (
	ErrTransport = errors.New("hydrus api transport error")
	ErrDecode    = errors.New("hydrus api decode error")
	ErrEncode    = errors.New("hydrus api encode error")

	// ErrBuilderConsumed is returned when Build is called on a builder that
	// has already produced its request.
	ErrBuilderConsumed = errors.New("request builder already built")
)

// Error is the typed error returned by Call and the HTTP transport.
type Error struct {
	Kind   ErrorKind
	Method string
	Path   string
	Status int    // HTTP status when the server answered
	Body   string // body of a failed response
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s %s", e.Method, e.Path)
	switch {
	case e.Status != 0 && e.Body != "":
		msg = fmt.Sprintf("%s returned status %d: %s", msg, e.Status, e.Body)
	case e.Status != 0:
		msg = fmt.Sprintf("%s returned status %d", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrEncode:
		return e.Kind == KindEncode
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or zero when err is not
// an *Error or the server never answered.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
