package api

import (
	"net/http"
	"strconv"
)

// TagAction is the action applied by add_tags/add_tags to a group of tags.
type TagAction int

const (
	TagActionAddToLocal TagAction = iota
	TagActionDeleteFromLocal
	TagActionPendToRemote
	TagActionRescindPendFromRemote
	TagActionPetitionFromRemote
	TagActionRescindPetitionFromRemote
)

func (a TagAction) String() string {
	switch a {
	case TagActionAddToLocal:
		return "add"
	case TagActionDeleteFromLocal:
		return "delete"
	case TagActionPendToRemote:
		return "pend"
	case TagActionRescindPendFromRemote:
		return "rescind pend"
	case TagActionPetitionFromRemote:
		return "petition"
	case TagActionRescindPetitionFromRemote:
		return "rescind petition"
	default:
		return "tag action " + strconv.Itoa(int(a))
	}
}

// CleanTagsRequest asks hydrus how it would normalise tags.
type CleanTagsRequest struct {
	Tags []string `json:"tags"`
}

// CleanTagsResponse lists the normalised tags.
type CleanTagsResponse struct {
	Tags []string `json:"tags"`
}

// SearchTagsRequest autocompletes a partial tag.
type SearchTagsRequest struct {
	Search        string `json:"search"`
	TagServiceKey string `json:"tag_service_key,omitempty"`
}

// TagCount is a tag and its number of files.
type TagCount struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}

// SearchTagsResponse lists matching tags.
type SearchTagsResponse struct {
	Tags []TagCount `json:"tags"`
}

// AddTagsRequest edits tags on files.
type AddTagsRequest struct {
	Hashes                            []string                       `json:"hashes"`
	ServiceKeysToTags                 map[string][]string            `json:"service_keys_to_tags,omitempty"`
	ServiceKeysToActionsToTags        map[string]map[string][]string `json:"service_keys_to_actions_to_tags,omitempty"`
	OverridePreviouslyDeletedMappings bool                           `json:"override_previously_deleted_mappings,omitempty"`
}

// AddTagsRequestBuilder assembles an AddTagsRequest. It is single-use like
// SetTimeRequestBuilder.
type AddTagsRequestBuilder struct {
	req   *AddTagsRequest
	built bool
}

// NewAddTagsRequestBuilder returns an empty builder.
func NewAddTagsRequestBuilder() *AddTagsRequestBuilder {
	return &AddTagsRequestBuilder{req: &AddTagsRequest{Hashes: []string{}}}
}

// AddHash adds a file hash.
func (b *AddTagsRequestBuilder) AddHash(hash string) *AddTagsRequestBuilder {
	return b.AddHashes([]string{hash})
}

// AddHashes adds several file hashes.
func (b *AddTagsRequestBuilder) AddHashes(hashes []string) *AddTagsRequestBuilder {
	if b.built {
		return b
	}
	b.req.Hashes = append(b.req.Hashes, hashes...)
	return b
}

// AddTag adds a tag to the local tag service.
func (b *AddTagsRequestBuilder) AddTag(serviceKey, tag string) *AddTagsRequestBuilder {
	return b.AddTags(serviceKey, []string{tag})
}

// AddTags adds tags to the local tag service.
func (b *AddTagsRequestBuilder) AddTags(serviceKey string, tags []string) *AddTagsRequestBuilder {
	if b.built {
		return b
	}
	if b.req.ServiceKeysToTags == nil {
		b.req.ServiceKeysToTags = make(map[string][]string)
	}
	b.req.ServiceKeysToTags[serviceKey] = append(b.req.ServiceKeysToTags[serviceKey], tags...)
	return b
}

// AddTagWithAction adds a tag with an explicit action.
func (b *AddTagsRequestBuilder) AddTagWithAction(serviceKey, tag string, action TagAction) *AddTagsRequestBuilder {
	if b.built {
		return b
	}
	if b.req.ServiceKeysToActionsToTags == nil {
		b.req.ServiceKeysToActionsToTags = make(map[string]map[string][]string)
	}
	actions := b.req.ServiceKeysToActionsToTags[serviceKey]
	if actions == nil {
		actions = make(map[string][]string)
		b.req.ServiceKeysToActionsToTags[serviceKey] = actions
	}
	key := strconv.Itoa(int(action))
	actions[key] = append(actions[key], tag)
	return b
}

// Build finalises the request. It may be called once.
func (b *AddTagsRequestBuilder) Build() (AddTagsRequest, error) {
	if b.built {
		return AddTagsRequest{}, ErrBuilderConsumed
	}
	b.built = true
	req := *b.req
	b.req = nil
	return req, nil
}

var (
	CleanTags  = Endpoint[CleanTagsRequest, CleanTagsResponse]{Method: http.MethodGet, Path: "add_tags/clean_tags"}
	SearchTags = Endpoint[SearchTagsRequest, SearchTagsResponse]{Method: http.MethodGet, Path: "add_tags/search_tags"}
	AddTags    = Endpoint[AddTagsRequest, Empty]{Method: http.MethodPost, Path: "add_tags/add_tags"}
)
