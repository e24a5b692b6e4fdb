package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testAccessKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, DefaultAPIAddress, u.Host)
	assert.Equal(t, "/", u.Path)

	u, err = parseBaseURL("https://example.com:1234/hydrus?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:1234/hydrus/", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

func TestNewHTTPTransport_TimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	for _, opts := range [][]Option{
		{WithHTTPClient(shared), WithTimeout(time.Second)},
		{WithTimeout(time.Second), WithHTTPClient(shared)},
	} {
		transport, err := NewHTTPTransport("", opts...)
		require.NoError(t, err)
		assert.Equal(t, time.Second, transport.http.Timeout)
		assert.NotSame(t, shared, transport.http)
	}
	assert.Equal(t, time.Minute, shared.Timeout)

	transport, err := NewHTTPTransport("", WithHTTPClient(shared))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, transport.http.Timeout)

	transport, err = NewHTTPTransport("")
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, transport.http.Timeout)
}

func TestHTTPTransport_SendsHeadersAndBody(t *testing.T) {
	t.Parallel()

	var (
		gotPath   string
		gotKey    string
		gotAgent  string
		gotCType  string
		gotBody   map[string]any
		gotMethod string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotKey = r.Header.Get("Hydrus-Client-API-Access-Key")
		gotAgent = r.Header.Get("User-Agent")
		gotCType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(server.URL, WithAccessKey(testAccessKey))
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	req, err := SetDbTime(DbFileDeletedTime, "svc1").AddHash("h1").AddHash("h2").Build()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, client.SetTime(ctx, req))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/edit_times/set_time", gotPath)
	assert.Equal(t, testAccessKey, gotKey)
	assert.True(t, strings.HasPrefix(gotAgent, "hydrant/"), "User-Agent = %q", gotAgent)
	assert.Equal(t, "application/json", gotCType)
	assert.EqualValues(t, 4, gotBody["timestamp_type"])
	assert.Equal(t, []any{"h1", "h2"}, gotBody["hashes"])
	assert.Equal(t, "svc1", gotBody["file_service_key"])
	assert.NotContains(t, gotBody, "timestamp_ms")
}

func TestHTTPTransport_SessionKeyWins(t *testing.T) {
	t.Parallel()

	var header http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		_, _ = w.Write([]byte(`{"version":64,"hydrus_version":600}`))
	}))
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(server.URL, WithAccessKey(testAccessKey), WithSessionKey("session"))
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	_, err = client.APIVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session", header.Get("Hydrus-Client-API-Session-Key"))
	assert.Empty(t, header.Get("Hydrus-Client-API-Access-Key"))
}

func TestHTTPTransport_GetEncodesJSONQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"file_ids":[1,2,3]}`))
	}))
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(server.URL)
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	sort := SortImportTime
	asc := false
	resp, err := client.SearchFiles(context.Background(), SearchFilesRequest{
		Tags:         []any{"blue eyes", []string{"solo", "duo"}},
		FileSortType: &sort,
		FileSortAsc:  &asc,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, resp.FileIDs)
	assert.Equal(t, `["blue eyes",["solo","duo"]]`, gotQuery.Get("tags"))
	assert.Equal(t, "2", gotQuery.Get("file_sort_type"))
	assert.Equal(t, "false", gotQuery.Get("file_sort_asc"))
	assert.False(t, gotQuery.Has("return_hashes"))
}

func TestHTTPTransport_ErrorStatusKeepsDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "hashes were malformed", http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(server.URL)
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	req, err := SetDiskTime().AddHash("not-a-hash").Build()
	require.NoError(t, err)

	err = client.SetTime(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "hashes were malformed", apiErr.Body)
	assert.Contains(t, err.Error(), "returned status 400")
}

func TestHTTPTransport_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(server.URL)
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	_, err = client.VerifyAccessKey(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "decode response")
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	transport, err := NewHTTPTransport("127.0.0.1:1", WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = transport.Submit(context.Background(), Submission{Method: http.MethodGet, Path: "api_version"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "execute request")
}

func TestHTTPTransport_UploadsBytes(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	var gotCType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"status":4,"hash":"","note":"could not parse"}`))
	}))
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(server.URL)
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	resp, err := client.AddFileBytes(context.Background(), []byte{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, ImportStatusFailed, resp.Status)
	assert.Equal(t, "application/octet-stream", gotCType)
	assert.Equal(t, []byte{0, 0, 0, 0}, gotBody)
}

func TestHTTPTransport_RecordsMetricsAndLogs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/manage_pages/focus_page" {
			http.Error(w, "no such page", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	core, logs := observer.New(zap.DebugLevel)

	transport, err := NewHTTPTransport(server.URL, WithMetrics(metrics), WithLogger(zap.New(core)))
	require.NoError(t, err)
	client, err := NewClient(transport)
	require.NoError(t, err)

	require.NoError(t, client.ArchiveFiles(context.Background(), []string{"abc"}))
	require.Error(t, client.FocusPage(context.Background(), "missing"))

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodPost, "add_files/archive_files", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodPost, "manage_pages/focus_page", "404")), 0)
	assert.Equal(t, 2, logs.FilterMessage("hydrus api request").Len())
	assert.Equal(t, 1, logs.FilterMessage("hydrus api returned error status").Len())
}
