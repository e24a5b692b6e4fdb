package hydrus

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/five82/hydrant/api"
)

const defaultCacheSize = 512

var (
	// ErrFileNotFound is returned when hydrus has no metadata for a file.
	ErrFileNotFound = errors.New("file not found")
	// ErrImportFailed is returned when hydrus rejects or vetoes an import.
	ErrImportFailed = errors.New("import failed")
)

// Hydrus is the entry point of the high-level API. It shares one metadata
// cache between all File handles it creates.
type Hydrus struct {
	client    *api.Client
	cache     *lru.Cache[string, api.FileMetadataInfo]
	cacheSize int
	logger    *zap.Logger
}

// Option configures a Hydrus.
type Option func(*Hydrus)

// WithCacheSize bounds the number of cached file metadata entries.
func WithCacheSize(n int) Option {
	return func(h *Hydrus) {
		if n > 0 {
			h.cacheSize = n
		}
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(h *Hydrus) {
		if l != nil {
			h.logger = l
		}
	}
}

// New wraps an api.Client.
func New(client *api.Client, opts ...Option) (*Hydrus, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	h := &Hydrus{client: client, cacheSize: defaultCacheSize, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	cache, err := lru.New[string, api.FileMetadataInfo](h.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create metadata cache: %w", err)
	}
	h.cache = cache
	return h, nil
}

// Client returns the underlying typed client.
func (h *Hydrus) Client() *api.Client { return h.client }

// Version returns the API and hydrus versions.
func (h *Hydrus) Version(ctx context.Context) (api.APIVersionResponse, error) {
	return h.client.APIVersion(ctx)
}

// Services lists the client's services by kind.
func (h *Hydrus) Services(ctx context.Context) (api.ServicesResponse, error) {
	return h.client.Services(ctx)
}

// URL looks up how hydrus classifies raw.
func (h *Hydrus) URL(ctx context.Context, raw string) (*URL, error) {
	info, err := h.client.URLInfo(ctx, raw)
	if err != nil {
		return nil, err
	}
	return newURL(h, raw, info), nil
}

// File returns a handle for the file with the given hash. No request is made.
func (h *Hydrus) File(hash string) *File {
	return &File{hydrus: h, ID: api.FileByHash(hash), Status: StatusUnknown}
}

// FileByID returns a handle for the file with the given database id.
func (h *Hydrus) FileByID(id uint64) *File {
	return &File{hydrus: h, ID: api.FileByID(id), Status: StatusUnknown}
}

// SearchOption adjusts a Search.
type SearchOption func(*api.SearchFilesRequest)

// SortBy orders search results.
func SortBy(sort api.FileSortType, ascending bool) SearchOption {
	return func(req *api.SearchFilesRequest) {
		req.FileSortType = &sort
		req.FileSortAsc = &ascending
	}
}

// Search returns the files matching every tag. System predicates such as
// "system:inbox" are passed through.
func (h *Hydrus) Search(ctx context.Context, tags []string, opts ...SearchOption) ([]*File, error) {
	req := api.SearchFilesRequest{Tags: make([]any, 0, len(tags)), ReturnHashes: true}
	for _, tag := range tags {
		req.Tags = append(req.Tags, tag)
	}
	for _, opt := range opts {
		opt(&req)
	}
	resp, err := h.client.SearchFiles(ctx, req)
	if err != nil {
		return nil, err
	}
	files := make([]*File, 0, len(resp.Hashes))
	for _, hash := range resp.Hashes {
		f := h.File(hash)
		f.Status = StatusInDatabase
		files = append(files, f)
	}
	return files, nil
}

// CleanTags returns tags normalised the way hydrus stores them.
func (h *Hydrus) CleanTags(ctx context.Context, tags []Tag) ([]Tag, error) {
	resp, err := h.client.CleanTags(ctx, tagStrings(tags))
	if err != nil {
		return nil, err
	}
	return parseTags(resp.Tags), nil
}

// SetUserAgent changes the downloader user agent.
func (h *Hydrus) SetUserAgent(ctx context.Context, ua string) error {
	return h.client.SetUserAgent(ctx, ua)
}

// Import starts an import.
func (h *Hydrus) Import() *ImportBuilder {
	return &ImportBuilder{hydrus: h}
}

func (h *Hydrus) cachedMetadata(hash string) (api.FileMetadataInfo, bool) {
	if hash == "" {
		return api.FileMetadataInfo{}, false
	}
	md, ok := h.cache.Get(hash)
	if !ok {
		return api.FileMetadataInfo{}, false
	}
	h.logger.Debug("metadata cache hit", zap.String("hash", hash))
	return md.Clone(), true
}

func (h *Hydrus) storeMetadata(md api.FileMetadataInfo) {
	if md.Hash != "" {
		h.cache.Add(md.Hash, md.Clone())
	}
}

func (h *Hydrus) forgetMetadata(hash string) {
	if hash != "" {
		h.cache.Remove(hash)
	}
}
