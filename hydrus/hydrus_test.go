package hydrus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/hydrant/api"
)

const testHash = "6c6c5a2b3c4d5e6f6c6c5a2b3c4d5e6f6c6c5a2b3c4d5e6f6c6c5a2b3c4d5e6f"

type fakeHydrus struct {
	mu            sync.Mutex
	metadataHits  int
	metadataQuery []string
	bodies        map[string]map[string]any
	rawUploads    [][]byte
	metadata      []api.FileMetadataInfo
}

func newFakeHydrus(t *testing.T) (*fakeHydrus, *Hydrus) {
	t.Helper()

	md := api.FileMetadataInfo{FileID: 7, Hash: testHash, Mime: "image/png"}
	md.ServiceKeysToStatusesToTags = map[string]map[string][]string{
		string(MyTags): {
			"0": {"character:megumin", "solo"},
			"1": {"pending tag"},
		},
		"remote": {
			"0": {"solo", "blue eyes"},
		},
	}
	fake := &fakeHydrus{
		bodies:   make(map[string]map[string]any),
		metadata: []api.FileMetadataInfo{md},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/get_files/file_metadata", func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.metadataHits++
		fake.metadataQuery = append(fake.metadataQuery, r.URL.RawQuery)
		md := fake.metadata
		fake.mu.Unlock()
		writeJSON(w, api.FileMetadataResponse{Metadata: md})
	})
	mux.HandleFunc("/add_files/add_file", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Header.Get("Content-Type") == "application/octet-stream" {
			fake.mu.Lock()
			fake.rawUploads = append(fake.rawUploads, body)
			fake.mu.Unlock()
			writeJSON(w, api.AddFileResponse{Status: api.ImportStatusFailed, Note: "could not parse"})
			return
		}
		writeJSON(w, api.AddFileResponse{Status: api.ImportStatusAlreadyInDatabase, Hash: testHash})
	})
	mux.HandleFunc("/add_urls/get_url_info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.GetURLInfoResponse{
			NormalisedURL: r.URL.Query().Get("url"),
			URLType:       api.URLTypePost,
			MatchName:     "example post",
			CanParse:      true,
		})
	})
	mux.HandleFunc("/add_urls/get_url_files", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.GetURLFilesResponse{
			NormalisedURL: r.URL.Query().Get("url"),
			URLFileStatuses: []api.URLFileStatus{
				{Status: api.ImportStatusAlreadyInDatabase, Hash: testHash},
				{Status: api.ImportStatusPreviouslyDeleted, Hash: "deleted"},
			},
		})
	})
	mux.HandleFunc("/add_urls/add_url", func(w http.ResponseWriter, r *http.Request) {
		body := fake.record(r)
		writeJSON(w, api.AddURLResponse{HumanResultText: "queued", NormalisedURL: body["url"].(string)})
	})
	mux.HandleFunc("/manage_pages/get_pages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.GetPagesResponse{Pages: api.PageInformation{
			Name:     "top pages notebook",
			PageKey:  "root",
			PageType: api.PageTypePageOfPages,
			Pages: []api.PageInformation{
				{Name: "files", PageKey: "k1", PageType: api.PageTypeFileSearch, Selected: true},
				{Name: "downloads", PageKey: "k2", PageType: api.PageTypeURLDownloader},
			},
		}})
	})
	mux.HandleFunc("/get_files/search_files", func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.bodies[r.URL.Path] = map[string]any{"tags": r.URL.Query().Get("tags")}
		fake.mu.Unlock()
		writeJSON(w, api.SearchFilesResponse{FileIDs: []uint64{7}, Hashes: []string{testHash}})
	})
	for _, path := range []string{
		"/add_tags/add_tags",
		"/add_files/archive_files",
		"/add_files/delete_files",
		"/add_urls/associate_url",
		"/edit_times/set_time",
		"/manage_pages/add_files",
		"/manage_pages/focus_page",
	} {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fake.record(r)
			w.WriteHeader(http.StatusOK)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	transport, err := api.NewHTTPTransport(server.URL)
	require.NoError(t, err)
	client, err := api.NewClient(transport)
	require.NoError(t, err)
	h, err := New(client, WithCacheSize(8))
	require.NoError(t, err)
	return fake, h
}

func (f *fakeHydrus) record(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	f.bodies[r.URL.Path] = body
	f.mu.Unlock()
	return body
}

func (f *fakeHydrus) body(path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

func (f *fakeHydrus) hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.metadataHits
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsNilClient(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestFile_MetadataIsCachedAcrossHandles(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()

	md, err := h.File(testHash).Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "image/png", md.Mime)

	_, err = h.File(testHash).Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.hits())

	f := h.File(testHash)
	require.NoError(t, f.AddTags(ctx, MyTags, []Tag{ParseTag("ark mage")}))
	_, err = f.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.hits())

	require.NoError(t, f.Update(ctx))
	assert.Equal(t, 3, fake.hits())
}

func TestFile_MetadataCopiesDoNotLeakIntoCache(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()

	first := h.File(testHash)
	md, err := first.Metadata(ctx)
	require.NoError(t, err)
	md.ServiceKeysToStatusesToTags[string(MyTags)]["0"][0] = "mutated"
	md.ServiceKeysToStatusesToTags["injected"] = map[string][]string{"0": {"x"}}

	again, err := first.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "character:megumin", again.ServiceKeysToStatusesToTags[string(MyTags)]["0"][0])
	assert.NotContains(t, again.ServiceKeysToStatusesToTags, "injected")

	other, err := h.File(testHash).Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.hits())
	assert.Equal(t, "character:megumin", other.ServiceKeysToStatusesToTags[string(MyTags)]["0"][0])
	assert.NotContains(t, other.ServiceKeysToStatusesToTags, "injected")
}

func TestFile_Tags(t *testing.T) {
	_, h := newFakeHydrus(t)
	f := h.File(testHash)

	services, err := f.ServicesWithTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Tag{{Namespace: "character", Name: "megumin"}, {Name: "solo"}}, services[MyTags])

	tags, err := f.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Tag{{Name: "blue eyes"}, {Namespace: "character", Name: "megumin"}, {Name: "solo"}}, tags)
}

func TestFile_NotFound(t *testing.T) {
	fake, h := newFakeHydrus(t)
	fake.mu.Lock()
	fake.metadata = nil
	fake.mu.Unlock()

	_, err := h.File("missing").Metadata(context.Background())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFile_ByIDResolvesHash(t *testing.T) {
	fake, h := newFakeHydrus(t)

	require.NoError(t, h.FileByID(7).Archive(context.Background()))
	assert.Equal(t, []any{testHash}, fake.body("/add_files/archive_files")["hashes"])
	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.metadataQuery, 1)
	assert.Contains(t, fake.metadataQuery[0], "file_ids=%5B7%5D")
}

func TestFile_SetTimes(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()
	when := time.Date(2024, 3, 1, 12, 0, 0, 250_000_000, time.UTC)
	f := h.File(testHash)

	require.NoError(t, f.SetArchivedTime(ctx, when))
	body := fake.body("/edit_times/set_time")
	assert.EqualValues(t, 5, body["timestamp_type"])
	assert.Equal(t, "1709294400250", body["timestamp_ms"])
	assert.Equal(t, []any{testHash}, body["hashes"])

	require.NoError(t, f.SetImportedTime(ctx, "svc", when))
	body = fake.body("/edit_times/set_time")
	assert.EqualValues(t, 3, body["timestamp_type"])
	assert.Equal(t, "svc", body["file_service_key"])

	require.NoError(t, f.SetLastViewedTime(ctx, api.CanvasMediaViewer, when))
	body = fake.body("/edit_times/set_time")
	assert.EqualValues(t, 6, body["timestamp_type"])
	assert.EqualValues(t, 0, body["canvas_type"])

	require.NoError(t, f.SetModifiedTime(ctx, when))
	assert.EqualValues(t, 1, fake.body("/edit_times/set_time")["timestamp_type"])
}

func TestFile_ModifyTagsAndDelete(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()
	f := h.File(testHash)

	require.NoError(t, f.ModifyTags(ctx, MyTags, api.TagActionDeleteFromLocal, []Tag{{Name: "solo"}}))
	actions := fake.body("/add_tags/add_tags")["service_keys_to_actions_to_tags"].(map[string]any)
	assert.Equal(t, map[string]any{"1": []any{"solo"}}, actions[string(MyTags)])

	require.NoError(t, f.Delete(ctx, "duplicate"))
	assert.Equal(t, "duplicate", fake.body("/add_files/delete_files")["reason"])
}

func TestImport_File(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()

	f, err := h.Import().File(FileImportPath("/tmp/image.png")).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, testHash, f.ID.Hash)
	assert.Equal(t, StatusInDatabase, f.Status)

	_, err = h.Import().File(FileImportBytes([]byte{0, 0, 0, 0})).Run(ctx)
	require.ErrorIs(t, err, ErrImportFailed)
	assert.Contains(t, err.Error(), "could not parse")
	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.rawUploads, 1)
	assert.Equal(t, []byte{0, 0, 0, 0}, fake.rawUploads[0])
}

func TestImport_URL(t *testing.T) {
	fake, h := newFakeHydrus(t)

	u, err := h.Import().URL("https://example.com/post/1").
		Page(PageByName("Rusty Import")).
		ShowPage(true).
		AddAdditionalTag(MyTags, ParseTag("character:megumin")).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.URLTypePost, u.Type)
	assert.Equal(t, "https://example.com/post/1", u.Normalised)

	body := fake.body("/add_urls/add_url")
	assert.Equal(t, "Rusty Import", body["destination_page_name"])
	assert.Equal(t, true, body["show_destination_page"])
	assert.Equal(t,
		map[string]any{string(MyTags): []any{"character:megumin"}},
		body["service_keys_to_additional_tags"])
}

func TestURL_FilesAndAssociate(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()

	u, err := h.URL(ctx, "https://example.com/post/1")
	require.NoError(t, err)
	assert.True(t, u.CanParse)

	files, err := u.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, StatusInDatabase, files[0].Status)
	assert.Equal(t, StatusDeleted, files[1].Status)

	require.NoError(t, u.Associate(ctx, []string{testHash}))
	body := fake.body("/add_urls/associate_url")
	assert.Equal(t, []any{"https://example.com/post/1"}, body["urls_to_add"])
}

func TestPages(t *testing.T) {
	fake, h := newFakeHydrus(t)
	ctx := context.Background()

	root, err := h.Pages(ctx)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.True(t, root.Children[0].Selected)

	downloads := root.Find("downloads")
	require.NotNil(t, downloads)
	assert.Equal(t, "k2", downloads.Key)
	assert.Nil(t, root.Find("nope"))

	require.NoError(t, downloads.Focus(ctx))
	assert.Equal(t, "k2", fake.body("/manage_pages/focus_page")["page_key"])

	require.NoError(t, h.Page("k1").AddFiles(ctx, []*File{h.File(testHash), h.FileByID(9)}))
	body := fake.body("/manage_pages/add_files")
	assert.Equal(t, []any{testHash}, body["hashes"])
	assert.Equal(t, []any{float64(9)}, body["file_ids"])
}

func TestSearch(t *testing.T) {
	fake, h := newFakeHydrus(t)

	files, err := h.Search(context.Background(), []string{"solo", "system:inbox"}, SortBy(api.SortImportTime, false))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, testHash, files[0].ID.Hash)
	assert.Equal(t, `["solo","system:inbox"]`, fake.body("/get_files/search_files")["tags"])
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want Tag
	}{
		{"character:megumin", Tag{Namespace: "character", Name: "megumin"}},
		{"solo", Tag{Name: "solo"}},
		{":)", Tag{Name: ":)"}},
		{"series:re:zero", Tag{Namespace: "series", Name: "re:zero"}},
	}
	for _, tt := range tests {
		got := ParseTag(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.in, got.String())
	}
}
