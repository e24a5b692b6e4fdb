package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Endpoint ties a request type and a response type to a fixed path of the
// client API. Endpoints are declared once as package-level values and carry
// no runtime state.
type Endpoint[Req, Resp any] struct {
	Method string
	Path   string
}

func (e Endpoint[Req, Resp]) String() string {
	return e.Method + " /" + e.Path
}

// Empty is the response shape of endpoints that return nothing of interest.
// Any body, including none at all, decodes into Empty.
type Empty struct{}

// RawBody is the response shape of endpoints that return file content.
type RawBody []byte

type bodyDecoder interface {
	decodeBody(body []byte) error
}

func (*Empty) decodeBody([]byte) error { return nil }

func (r *RawBody) decodeBody(body []byte) error {
	*r = append((*r)[:0], body...)
	return nil
}

var errEmptyBody = errors.New("empty response body")

// Call serialises req for ep, submits it through t and decodes the answer
// into ep's response type. Errors from t are returned as-is when they are
// already an *Error and wrapped as KindTransport otherwise; a payload that
// does not fit the response type yields KindDecode.
func Call[Req, Resp any](ctx context.Context, t Transport, ep Endpoint[Req, Resp], req Req) (Resp, error) {
	var resp Resp

	sub, err := newSubmission(ep.Method, ep.Path, req)
	if err != nil {
		return resp, &Error{Kind: KindEncode, Method: ep.Method, Path: ep.Path, Err: err}
	}

	body, err := t.Submit(ctx, sub)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return resp, err
		}
		return resp, &Error{Kind: KindTransport, Method: ep.Method, Path: ep.Path, Err: err}
	}

	if err := decodeResponse(body, &resp); err != nil {
		return resp, &Error{Kind: KindDecode, Method: ep.Method, Path: ep.Path, Err: err}
	}
	return resp, nil
}

func newSubmission(method, path string, req any) (Submission, error) {
	sub := Submission{Method: method, Path: path}
	if method == http.MethodGet {
		query, err := encodeQuery(req)
		if err != nil {
			return Submission{}, err
		}
		sub.Query = query
		return sub, nil
	}

	if enc, ok := req.(BodyEncoder); ok {
		contentType, body, err := enc.EncodeBody()
		if err != nil {
			return Submission{}, fmt.Errorf("encode body: %w", err)
		}
		sub.ContentType = contentType
		sub.Body = body
		return sub, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Submission{}, fmt.Errorf("marshal request: %w", err)
	}
	sub.ContentType = "application/json"
	sub.Body = body
	return sub, nil
}

// encodeQuery turns a request into query parameters the way the client API
// reads them: strings verbatim, everything else as JSON text. Null fields are
// dropped.
func encodeQuery(req any) (url.Values, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}
	if bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("query request must encode to an object: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	values := url.Values{}
	for key, value := range fields {
		switch {
		case bytes.Equal(value, []byte("null")):
			continue
		case len(value) > 0 && value[0] == '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("query field %q: %w", key, err)
			}
			values.Set(key, s)
		default:
			values.Set(key, string(value))
		}
	}
	return values, nil
}

func decodeResponse(body []byte, dest any) error {
	if dec, ok := dest.(bodyDecoder); ok {
		return dec.decodeBody(body)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
