package api

import "net/http"

// URLType classifies a URL the way the hydrus downloader does.
type URLType int

const (
	URLTypePost      URLType = 0
	URLTypeFile      URLType = 2
	URLTypeGallery   URLType = 3
	URLTypeWatchable URLType = 4
	URLTypeUnknown   URLType = 5
)

func (t URLType) String() string {
	switch t {
	case URLTypePost:
		return "post"
	case URLTypeFile:
		return "file"
	case URLTypeGallery:
		return "gallery"
	case URLTypeWatchable:
		return "watchable"
	default:
		return "unknown"
	}
}

// URLRequest names a single URL.
type URLRequest struct {
	URL string `json:"url"`
}

// URLFileStatus is one file known for a URL.
type URLFileStatus struct {
	Status int    `json:"status"`
	Hash   string `json:"hash"`
	Note   string `json:"note"`
}

// GetURLFilesResponse answers add_urls/get_url_files.
type GetURLFilesResponse struct {
	NormalisedURL   string          `json:"normalised_url"`
	URLFileStatuses []URLFileStatus `json:"url_file_statuses"`
}

// GetURLInfoResponse answers add_urls/get_url_info.
type GetURLInfoResponse struct {
	NormalisedURL string  `json:"normalised_url"`
	URLType       URLType `json:"url_type"`
	URLTypeString string  `json:"url_type_string"`
	MatchName     string  `json:"match_name"`
	CanParse      bool    `json:"can_parse"`
}

// AddURLRequest queues a URL for download.
type AddURLRequest struct {
	URL                         string              `json:"url"`
	DestinationPageKey          string              `json:"destination_page_key,omitempty"`
	DestinationPageName         string              `json:"destination_page_name,omitempty"`
	ShowDestinationPage         bool                `json:"show_destination_page"`
	ServiceKeysToAdditionalTags map[string][]string `json:"service_keys_to_additional_tags,omitempty"`
	FilterableTags              []string            `json:"filterable_tags,omitempty"`
}

// AddURLResponse answers add_urls/add_url.
type AddURLResponse struct {
	HumanResultText string `json:"human_result_text"`
	NormalisedURL   string `json:"normalised_url"`
}

// AddURLRequestBuilder assembles an AddURLRequest. It is single-use.
type AddURLRequestBuilder struct {
	req   *AddURLRequest
	built bool
}

// NewAddURLRequestBuilder starts a request for url.
func NewAddURLRequestBuilder(url string) *AddURLRequestBuilder {
	return &AddURLRequestBuilder{req: &AddURLRequest{URL: url}}
}

// DestinationPageKey sends the download to an existing page. It replaces a
// page name set earlier.
func (b *AddURLRequestBuilder) DestinationPageKey(key string) *AddURLRequestBuilder {
	if !b.built {
		b.req.DestinationPageKey = key
		b.req.DestinationPageName = ""
	}
	return b
}

// DestinationPageName sends the download to a page by name, creating it if
// needed. It replaces a page key set earlier.
func (b *AddURLRequestBuilder) DestinationPageName(name string) *AddURLRequestBuilder {
	if !b.built {
		b.req.DestinationPageName = name
		b.req.DestinationPageKey = ""
	}
	return b
}

// ShowDestinationPage focuses the destination page after queueing.
func (b *AddURLRequestBuilder) ShowDestinationPage(show bool) *AddURLRequestBuilder {
	if !b.built {
		b.req.ShowDestinationPage = show
	}
	return b
}

// AddAdditionalTags applies tags to every file the URL produces.
func (b *AddURLRequestBuilder) AddAdditionalTags(serviceKey string, tags []string) *AddURLRequestBuilder {
	if b.built {
		return b
	}
	if b.req.ServiceKeysToAdditionalTags == nil {
		b.req.ServiceKeysToAdditionalTags = make(map[string][]string)
	}
	b.req.ServiceKeysToAdditionalTags[serviceKey] = append(b.req.ServiceKeysToAdditionalTags[serviceKey], tags...)
	return b
}

// AddFilterableTags adds parsed-tag filters.
func (b *AddURLRequestBuilder) AddFilterableTags(tags []string) *AddURLRequestBuilder {
	if !b.built {
		b.req.FilterableTags = append(b.req.FilterableTags, tags...)
	}
	return b
}

// Build finalises the request. It may be called once.
func (b *AddURLRequestBuilder) Build() (AddURLRequest, error) {
	if b.built {
		return AddURLRequest{}, ErrBuilderConsumed
	}
	b.built = true
	req := *b.req
	b.req = nil
	return req, nil
}

// AssociateURLRequest links or unlinks URLs and files.
type AssociateURLRequest struct {
	URLsToAdd    []string `json:"urls_to_add,omitempty"`
	URLsToDelete []string `json:"urls_to_delete,omitempty"`
	Hashes       []string `json:"hashes"`
}

var (
	GetURLFiles  = Endpoint[URLRequest, GetURLFilesResponse]{Method: http.MethodGet, Path: "add_urls/get_url_files"}
	GetURLInfo   = Endpoint[URLRequest, GetURLInfoResponse]{Method: http.MethodGet, Path: "add_urls/get_url_info"}
	AddURL       = Endpoint[AddURLRequest, AddURLResponse]{Method: http.MethodPost, Path: "add_urls/add_url"}
	AssociateURL = Endpoint[AssociateURLRequest, Empty]{Method: http.MethodPost, Path: "add_urls/associate_url"}
)
