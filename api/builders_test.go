package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTagsRequestBuilder(t *testing.T) {
	b := NewAddTagsRequestBuilder().
		AddHash("h1").
		AddHashes([]string{"h2"}).
		AddTag("local", "character:megumin").
		AddTags("local", []string{"ark mage"}).
		AddTagWithAction("local", "solo", TagActionDeleteFromLocal).
		AddTagWithAction("remote", "blue eyes", TagActionPendToRemote)

	req, err := b.Build()
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"hashes": ["h1", "h2"],
		"service_keys_to_tags": {"local": ["character:megumin", "ark mage"]},
		"service_keys_to_actions_to_tags": {
			"local": {"1": ["solo"]},
			"remote": {"2": ["blue eyes"]}
		}
	}`, string(raw))

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
	b.AddHash("late")
	assert.Equal(t, []string{"h1", "h2"}, req.Hashes)
}

func TestAddTagsRequestBuilder_EmptyHashesAreArray(t *testing.T) {
	req, err := NewAddTagsRequestBuilder().Build()
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hashes":[]}`, string(raw))
}

func TestAddURLRequestBuilder(t *testing.T) {
	b := NewAddURLRequestBuilder("https://example.com/post/1").
		DestinationPageKey("key").
		DestinationPageName("Rusty Import").
		ShowDestinationPage(true).
		AddAdditionalTags("local", []string{"ark mage"}).
		AddAdditionalTags("local", []string{"character:megumin"}).
		AddFilterableTags([]string{"creator:someone"})

	req, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, req.DestinationPageKey)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"url": "https://example.com/post/1",
		"destination_page_name": "Rusty Import",
		"show_destination_page": true,
		"service_keys_to_additional_tags": {"local": ["ark mage", "character:megumin"]},
		"filterable_tags": ["creator:someone"]
	}`, string(raw))

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}

func TestCookie_ArrayForm(t *testing.T) {
	expires := int64(1700000000)
	cookie := Cookie{Name: "session", Value: "v", Domain: ".example.com", Path: "/", Expires: &expires}

	raw, err := json.Marshal(cookie)
	require.NoError(t, err)
	assert.JSONEq(t, `["session","v",".example.com","/",1700000000]`, string(raw))

	var back Cookie
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cookie, back)

	var resp CookiesResponse
	require.NoError(t, json.Unmarshal([]byte(`{"cookies":[["a","b","c.com","/",null]]}`), &resp))
	require.Len(t, resp.Cookies, 1)
	assert.Nil(t, resp.Cookies[0].Expires)

	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &back))
}

func TestPageInformation_Walk(t *testing.T) {
	tree := PageInformation{
		Name: "top",
		Pages: []PageInformation{
			{Name: "a", Pages: []PageInformation{{Name: "a1"}}},
			{Name: "b"},
		},
	}

	var names []string
	var depths []int
	tree.Walk(func(p PageInformation, depth int) bool {
		names = append(names, p.Name)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"top", "a", "a1", "b"}, names)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)

	names = nil
	tree.Walk(func(p PageInformation, _ int) bool {
		names = append(names, p.Name)
		return p.Name != "a1"
	})
	assert.Equal(t, []string{"top", "a", "a1"}, names)
}

func TestFileIdentifierRequests(t *testing.T) {
	assert.Equal(t, FileMetadataRequest{Hashes: []string{"abc"}}, FileMetadataRequestFor(FileByHash("abc")))
	assert.Equal(t, FileMetadataRequest{FileIDs: []uint64{7}}, FileMetadataRequestFor(FileByID(7)))

	req := GetFileRequestFor(FileByID(7))
	require.NotNil(t, req.FileID)
	assert.Equal(t, uint64(7), *req.FileID)
	assert.Equal(t, "#7", FileByID(7).String())
}

func TestFileMetadataInfo_CloneIsDeep(t *testing.T) {
	size := uint64(10)
	md := FileMetadataInfo{
		Hash:      "abc",
		Size:      &size,
		KnownURLs: []string{"https://example.com"},
		ServiceKeysToStatusesToTags: map[string]map[string][]string{
			"local": {"0": {"solo"}},
		},
	}

	c := md.Clone()
	*c.Size = 99
	c.KnownURLs[0] = "changed"
	c.ServiceKeysToStatusesToTags["local"]["0"][0] = "changed"
	c.ServiceKeysToStatusesToTags["local"]["1"] = []string{"pending"}

	assert.Equal(t, uint64(10), *md.Size)
	assert.Equal(t, []string{"https://example.com"}, md.KnownURLs)
	assert.Equal(t, map[string][]string{"0": {"solo"}}, md.ServiceKeysToStatusesToTags["local"])
	assert.Nil(t, FileMetadataInfo{}.Clone().ServiceKeysToStatusesToTags)
}
