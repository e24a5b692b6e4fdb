package hydrus

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/five82/hydrant/api"
)

// ImportBuilder starts a file or URL import.
type ImportBuilder struct {
	hydrus *Hydrus
}

// File imports a file from disk or memory.
func (b *ImportBuilder) File(file FileImport) *FileImportBuilder {
	return &FileImportBuilder{hydrus: b.hydrus, file: file}
}

// URL queues a download.
func (b *ImportBuilder) URL(raw string) *URLImportBuilder {
	return &URLImportBuilder{hydrus: b.hydrus, url: raw}
}

// FileImport is the source of a file import: a path hydrus can read or the
// file's bytes.
type FileImport struct {
	path    string
	content []byte
}

// FileImportPath imports the file at path on the hydrus host.
func FileImportPath(path string) FileImport { return FileImport{path: path} }

// FileImportBytes uploads content.
func FileImportBytes(content []byte) FileImport { return FileImport{content: content} }

// FileImportReader reads r fully and uploads it.
func FileImportReader(r io.Reader) (FileImport, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return FileImport{}, fmt.Errorf("read import: %w", err)
	}
	return FileImportBytes(content), nil
}

// FileImportBuilder runs a file import.
type FileImportBuilder struct {
	hydrus *Hydrus
	file   FileImport
}

// Run imports the file. Failed and vetoed imports return ErrImportFailed with
// hydrus' note.
func (b *FileImportBuilder) Run(ctx context.Context) (*File, error) {
	var (
		resp api.AddFileResponse
		err  error
	)
	if b.file.content != nil {
		resp, err = b.hydrus.client.AddFileBytes(ctx, b.file.content)
	} else {
		resp, err = b.hydrus.client.AddFile(ctx, b.file.path)
	}
	if err != nil {
		return nil, err
	}
	switch resp.Status {
	case api.ImportStatusFailed, api.ImportStatusVetoed:
		return nil, fmt.Errorf("%w: status %d: %s", ErrImportFailed, resp.Status, resp.Note)
	}
	f := b.hydrus.File(resp.Hash)
	f.Status = statusFromImport(resp.Status)
	return f, nil
}

// PageIdentifier names a destination page by name or by key.
type PageIdentifier struct {
	name string
	key  string
}

// PageByName targets a page by name, creating it if needed.
func PageByName(name string) PageIdentifier { return PageIdentifier{name: name} }

// PageByKey targets an existing page.
func PageByKey(key string) PageIdentifier { return PageIdentifier{key: key} }

// URLImportBuilder queues a URL download.
type URLImportBuilder struct {
	hydrus     *Hydrus
	url        string
	page       *PageIdentifier
	showPage   bool
	serviceTag map[ServiceKey][]Tag
	filterTags []Tag
}

// Page sets the destination page.
func (b *URLImportBuilder) Page(page PageIdentifier) *URLImportBuilder {
	b.page = &page
	return b
}

// ShowPage focuses the destination page after queueing.
func (b *URLImportBuilder) ShowPage(show bool) *URLImportBuilder {
	b.showPage = show
	return b
}

// AddAdditionalTag tags every file the download produces.
func (b *URLImportBuilder) AddAdditionalTag(service ServiceKey, tag Tag) *URLImportBuilder {
	return b.AddAdditionalTags(service, []Tag{tag})
}

// AddAdditionalTags tags every file the download produces.
func (b *URLImportBuilder) AddAdditionalTags(service ServiceKey, tags []Tag) *URLImportBuilder {
	if b.serviceTag == nil {
		b.serviceTag = make(map[ServiceKey][]Tag)
	}
	b.serviceTag[service] = append(b.serviceTag[service], tags...)
	return b
}

// AddFilterTags keeps only parsed tags matching these filters.
func (b *URLImportBuilder) AddFilterTags(tags []Tag) *URLImportBuilder {
	b.filterTags = append(b.filterTags, tags...)
	return b
}

// Run queues the download and returns the URL as hydrus classifies it.
func (b *URLImportBuilder) Run(ctx context.Context) (*URL, error) {
	rb := api.NewAddURLRequestBuilder(b.url).ShowDestinationPage(b.showPage)
	if b.page != nil {
		if b.page.key != "" {
			rb.DestinationPageKey(b.page.key)
		} else {
			rb.DestinationPageName(b.page.name)
		}
	}
	for service, tags := range b.serviceTag {
		rb.AddAdditionalTags(string(service), tagStrings(tags))
	}
	if len(b.filterTags) > 0 {
		rb.AddFilterableTags(tagStrings(b.filterTags))
	}
	req, err := rb.Build()
	if err != nil {
		return nil, err
	}
	resp, err := b.hydrus.client.AddURL(ctx, req)
	if err != nil {
		return nil, err
	}
	b.hydrus.logger.Debug("url queued",
		zap.String("url", resp.NormalisedURL),
		zap.String("result", resp.HumanResultText),
	)
	raw := resp.NormalisedURL
	if raw == "" {
		raw = b.url
	}
	return b.hydrus.URL(ctx, raw)
}
