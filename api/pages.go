package api

import "net/http"

// PageType is the kind of a page in the hydrus client.
type PageType int

const (
	PageTypeGalleryDownloader PageType = 1
	PageTypeSimpleDownloader  PageType = 2
	PageTypeHardDriveImport   PageType = 3
	PageTypePetitions         PageType = 5
	PageTypeFileSearch        PageType = 6
	PageTypeURLDownloader     PageType = 7
	PageTypeDuplicates        PageType = 8
	PageTypeThreadWatcher     PageType = 9
	PageTypePageOfPages       PageType = 10
)

func (t PageType) String() string {
	switch t {
	case PageTypeGalleryDownloader:
		return "gallery downloader"
	case PageTypeSimpleDownloader:
		return "simple downloader"
	case PageTypeHardDriveImport:
		return "hard drive import"
	case PageTypePetitions:
		return "petitions"
	case PageTypeFileSearch:
		return "file search"
	case PageTypeURLDownloader:
		return "url downloader"
	case PageTypeDuplicates:
		return "duplicates"
	case PageTypeThreadWatcher:
		return "thread watcher"
	case PageTypePageOfPages:
		return "page of pages"
	default:
		return "unknown"
	}
}

// PageInformation is a node of the page tree.
type PageInformation struct {
	Name        string            `json:"name"`
	PageKey     string            `json:"page_key"`
	PageState   int               `json:"page_state"`
	PageType    PageType          `json:"page_type"`
	IsMediaPage bool              `json:"is_media_page"`
	Selected    bool              `json:"selected"`
	Pages       []PageInformation `json:"pages"`
}

// Walk visits p and its descendants depth first. Returning false from fn
// stops the walk.
func (p PageInformation) Walk(fn func(page PageInformation, depth int) bool) {
	p.walk(fn, 0)
}

func (p PageInformation) walk(fn func(PageInformation, int) bool, depth int) bool {
	if !fn(p, depth) {
		return false
	}
	for _, child := range p.Pages {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// GetPagesResponse answers manage_pages/get_pages.
type GetPagesResponse struct {
	Pages PageInformation `json:"pages"`
}

// PageInfoRequest selects a page by key.
type PageInfoRequest struct {
	PageKey string `json:"page_key"`
	Simple  bool   `json:"simple"`
}

// PageMedia summarises the files shown on a media page.
type PageMedia struct {
	NumFiles int      `json:"num_files"`
	HashIDs  []uint64 `json:"hash_ids"`
}

// PageDetails is the page_info payload.
type PageDetails struct {
	Name        string         `json:"name"`
	PageKey     string         `json:"page_key"`
	PageState   int            `json:"page_state"`
	PageType    PageType       `json:"page_type"`
	IsMediaPage bool           `json:"is_media_page"`
	Management  map[string]any `json:"management"`
	Media       *PageMedia     `json:"media"`
}

// GetPageInfoResponse answers manage_pages/get_page_info.
type GetPageInfoResponse struct {
	PageInfo PageDetails `json:"page_info"`
}

// FocusPageRequest brings a page to the front.
type FocusPageRequest struct {
	PageKey string `json:"page_key"`
}

// AddFilesToPageRequest appends files to a media page.
type AddFilesToPageRequest struct {
	PageKey string   `json:"page_key"`
	FileIDs []uint64 `json:"file_ids,omitempty"`
	Hashes  []string `json:"hashes,omitempty"`
}

var (
	GetPages       = Endpoint[Empty, GetPagesResponse]{Method: http.MethodGet, Path: "manage_pages/get_pages"}
	GetPageInfo    = Endpoint[PageInfoRequest, GetPageInfoResponse]{Method: http.MethodGet, Path: "manage_pages/get_page_info"}
	FocusPage      = Endpoint[FocusPageRequest, Empty]{Method: http.MethodPost, Path: "manage_pages/focus_page"}
	AddFilesToPage = Endpoint[AddFilesToPageRequest, Empty]{Method: http.MethodPost, Path: "manage_pages/add_files"}
)
