package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Limit int      `json:"limit"`
	Flag  bool     `json:"flag"`
	Skip  *string  `json:"skip"`
}

type echoResponse struct {
	Value string `json:"value"`
}

var (
	echoGet  = Endpoint[echoRequest, echoResponse]{Method: http.MethodGet, Path: "test/echo"}
	echoPost = Endpoint[echoRequest, echoResponse]{Method: http.MethodPost, Path: "test/echo"}
	emptyOut = Endpoint[echoRequest, Empty]{Method: http.MethodPost, Path: "test/empty"}
	rawOut   = Endpoint[GetFileRequest, RawBody]{Method: http.MethodGet, Path: "test/raw"}
)

func TestCall_GetEncodesQuery(t *testing.T) {
	var got Submission
	transport := TransportFunc(func(_ context.Context, s Submission) ([]byte, error) {
		got = s
		return []byte(`{"value":"ok"}`), nil
	})

	resp, err := Call(context.Background(), transport, echoGet, echoRequest{
		Name:  "blue eyes",
		Tags:  []string{"a", "b"},
		Limit: 3,
		Flag:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Value)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "test/echo", got.Path)
	assert.Nil(t, got.Body)
	assert.Equal(t, "blue eyes", got.Query.Get("name"))
	assert.Equal(t, `["a","b"]`, got.Query.Get("tags"))
	assert.Equal(t, "3", got.Query.Get("limit"))
	assert.Equal(t, "true", got.Query.Get("flag"))
	assert.False(t, got.Query.Has("skip"))
}

func TestCall_GetWithEmptyRequestHasNoQuery(t *testing.T) {
	var got Submission
	transport := TransportFunc(func(_ context.Context, s Submission) ([]byte, error) {
		got = s
		return []byte(`{"version":64,"hydrus_version":600}`), nil
	})

	resp, err := Call(context.Background(), transport, APIVersion, Empty{})
	require.NoError(t, err)
	assert.Equal(t, 64, resp.Version)
	assert.Empty(t, got.Query)
}

func TestCall_PostSendsJSON(t *testing.T) {
	var got Submission
	transport := TransportFunc(func(_ context.Context, s Submission) ([]byte, error) {
		got = s
		return []byte(`{"value":"ok"}`), nil
	})

	_, err := Call(context.Background(), transport, echoPost, echoRequest{Name: "x", Tags: []string{"t"}})
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.ContentType)
	assert.JSONEq(t, `{"name":"x","tags":["t"],"limit":0,"flag":false,"skip":null}`, string(got.Body))
}

func TestCall_PostUsesBodyEncoder(t *testing.T) {
	var got Submission
	transport := TransportFunc(func(_ context.Context, s Submission) ([]byte, error) {
		got = s
		return []byte(`{"status":1,"hash":"abc"}`), nil
	})

	resp, err := Call(context.Background(), transport, AddFileBytes, AddFileBytesRequest{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Hash)
	assert.Equal(t, "application/octet-stream", got.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, got.Body)
}

func TestCall_EmptyResponseAcceptsNoBody(t *testing.T) {
	transport := TransportFunc(func(context.Context, Submission) ([]byte, error) {
		return nil, nil
	})

	_, err := Call(context.Background(), transport, emptyOut, echoRequest{})
	require.NoError(t, err)

	_, err = Call(context.Background(), transport, SetTime, SetTimeRequest{})
	require.NoError(t, err)
}

func TestCall_RawBodyIsVerbatim(t *testing.T) {
	transport := TransportFunc(func(context.Context, Submission) ([]byte, error) {
		return []byte{0xff, 0xd8, 0x00}, nil
	})

	body, err := Call(context.Background(), transport, rawOut, GetFileRequest{Hash: "abc"})
	require.NoError(t, err)
	assert.Equal(t, RawBody{0xff, 0xd8, 0x00}, body)
}

func TestCall_DecodeMismatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed", "{not-json"},
		{"wrong shape", `{"value":42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := TransportFunc(func(context.Context, Submission) ([]byte, error) {
				return []byte(tt.body), nil
			})
			_, err := Call(context.Background(), transport, echoPost, echoRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.NotErrorIs(t, err, ErrTransport)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "test/echo", apiErr.Path)
		})
	}
}

func TestCall_TransportErrorPassesThrough(t *testing.T) {
	want := &Error{Kind: KindTransport, Method: http.MethodPost, Path: "edit_times/set_time", Status: 400, Body: "bad hashes"}
	transport := TransportFunc(func(context.Context, Submission) ([]byte, error) {
		return nil, want
	})

	req, err := SetDiskTime().Build()
	require.NoError(t, err)

	_, err = Call(context.Background(), transport, SetTime, req)
	require.Error(t, err)
	assert.Same(t, want, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 400, StatusCode(err))
}

func TestCall_PlainTransportErrorIsWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	transport := TransportFunc(func(context.Context, Submission) ([]byte, error) {
		return nil, cause
	})

	_, err := Call(context.Background(), transport, echoGet, echoRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, StatusCode(err))
}

type badRequest struct{}

func (badRequest) MarshalJSON() ([]byte, error) { return nil, errors.New("boom") }

func TestCall_EncodeFailure(t *testing.T) {
	called := false
	transport := TransportFunc(func(context.Context, Submission) ([]byte, error) {
		called = true
		return nil, nil
	})

	ep := Endpoint[badRequest, Empty]{Method: http.MethodPost, Path: "test/bad"}
	_, err := Call(context.Background(), transport, ep, badRequest{})
	assert.ErrorIs(t, err, ErrEncode)
	assert.False(t, called)
}

func TestEncodeQuery_RejectsNonObject(t *testing.T) {
	_, err := encodeQuery([]string{"a"})
	assert.Error(t, err)

	values, err := encodeQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, values)
}

func TestEndpoint_String(t *testing.T) {
	assert.Equal(t, "POST /edit_times/set_time", SetTime.String())
}

func TestServicesResponse_SkipsVersionFields(t *testing.T) {
	var services ServicesResponse
	err := json.Unmarshal([]byte(`{
		"local_tags": [{"name": "my tags", "service_key": "6c6f63616c2074616773"}],
		"all_known_files": [{"name": "all known files", "service_key": "616c6c206b6e6f776e2066696c6573"}],
		"version": 64,
		"hydrus_version": 600
	}`), &services)
	require.NoError(t, err)
	assert.Len(t, services, 2)
	assert.Equal(t, "my tags", services["local_tags"][0].Name)
}
