package api

import (
	"context"
	"net/url"
)

// Submission is one serialised request handed to a Transport.
type Submission struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
}

// Transport executes submissions against the hydrus client API. It owns
// authentication, timeouts and connection reuse; implementations must return
// an *Error of KindTransport when the server is unreachable or answers with a
// non-success status.
type Transport interface {
	Submit(ctx context.Context, s Submission) ([]byte, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, s Submission) ([]byte, error)

// Submit calls f.
func (f TransportFunc) Submit(ctx context.Context, s Submission) ([]byte, error) {
	return f(ctx, s)
}

// BodyEncoder is implemented by request types that are not sent as JSON,
// such as raw file uploads.
type BodyEncoder interface {
	EncodeBody() (contentType string, body []byte, err error)
}
