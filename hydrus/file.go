package hydrus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/five82/hydrant/api"
)

// FileStatus is what hydrus reported about a file when the handle was made.
type FileStatus int

const (
	StatusUnknown FileStatus = iota
	StatusReadyForImport
	StatusInDatabase
	StatusDeleted
)

func (s FileStatus) String() string {
	switch s {
	case StatusReadyForImport:
		return "ready for import"
	case StatusInDatabase:
		return "in database"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// statusFromImport maps the numeric status of url and import responses.
func statusFromImport(raw int) FileStatus {
	switch raw {
	case api.ImportStatusReady:
		return StatusReadyForImport
	case api.ImportStatusPreviouslyDeleted:
		return StatusDeleted
	default:
		return StatusInDatabase
	}
}

// currentTags is the status key of tags that are committed to a service.
const currentTags = "0"

// File is a handle on one file. Metadata is fetched lazily and shared through
// the Hydrus cache.
type File struct {
	hydrus   *Hydrus
	ID       api.FileIdentifier
	Status   FileStatus
	metadata *api.FileMetadataInfo
}

// Update drops any cached metadata and fetches it again.
func (f *File) Update(ctx context.Context) error {
	if f.metadata != nil {
		f.hydrus.forgetMetadata(f.metadata.Hash)
	}
	f.hydrus.forgetMetadata(f.ID.Hash)
	f.metadata = nil
	_, err := f.Metadata(ctx)
	return err
}

// Metadata returns the file's metadata, fetching it on first use. The result
// is a copy; changing it does not affect the cache or other handles.
func (f *File) Metadata(ctx context.Context) (api.FileMetadataInfo, error) {
	if f.metadata != nil {
		return f.metadata.Clone(), nil
	}
	if md, ok := f.hydrus.cachedMetadata(f.ID.Hash); ok {
		f.metadata = &md
		return md.Clone(), nil
	}
	resp, err := f.hydrus.client.FileMetadata(ctx, api.FileMetadataRequestFor(f.ID))
	if err != nil {
		return api.FileMetadataInfo{}, err
	}
	if len(resp.Metadata) == 0 {
		return api.FileMetadataInfo{}, fmt.Errorf("%w: %s", ErrFileNotFound, f.ID)
	}
	md := resp.Metadata[0]
	f.metadata = &md
	f.hydrus.storeMetadata(md)
	return md.Clone(), nil
}

// Hash returns the file's sha256, resolving it from metadata for id handles.
func (f *File) Hash(ctx context.Context) (string, error) {
	if f.ID.IsHash() {
		return f.ID.Hash, nil
	}
	md, err := f.Metadata(ctx)
	if err != nil {
		return "", err
	}
	if md.Hash == "" {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, f.ID)
	}
	return md.Hash, nil
}

// AssociateURLs adds known URLs to the file.
func (f *File) AssociateURLs(ctx context.Context, urls []string) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	defer f.invalidate()
	return f.hydrus.client.AssociateURLs(ctx, urls, []string{hash})
}

// DisassociateURLs removes known URLs from the file.
func (f *File) DisassociateURLs(ctx context.Context, urls []string) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	defer f.invalidate()
	return f.hydrus.client.DisassociateURLs(ctx, urls, []string{hash})
}

// ServicesWithTags returns the current tags of the file per tag service.
func (f *File) ServicesWithTags(ctx context.Context) (map[ServiceKey][]Tag, error) {
	md, err := f.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[ServiceKey][]Tag, len(md.ServiceKeysToStatusesToTags))
	for service, statuses := range md.ServiceKeysToStatusesToTags {
		if tags := statuses[currentTags]; len(tags) > 0 {
			out[ServiceKey(service)] = parseTags(tags)
		}
	}
	return out, nil
}

// Tags returns the file's current tags across all services, deduplicated and
// sorted.
func (f *File) Tags(ctx context.Context) ([]Tag, error) {
	services, err := f.ServicesWithTags(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[Tag]struct{})
	var out []Tag
	for _, tags := range services {
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// AddTags adds tags to a local tag service.
func (f *File) AddTags(ctx context.Context, service ServiceKey, tags []Tag) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	req, err := api.NewAddTagsRequestBuilder().
		AddHash(hash).
		AddTags(string(service), tagStrings(tags)).
		Build()
	if err != nil {
		return err
	}
	defer f.invalidate()
	return f.hydrus.client.AddTags(ctx, req)
}

// ModifyTags applies action to tags on service.
func (f *File) ModifyTags(ctx context.Context, service ServiceKey, action api.TagAction, tags []Tag) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	b := api.NewAddTagsRequestBuilder().AddHash(hash)
	for _, tag := range tags {
		b.AddTagWithAction(string(service), tag.String(), action)
	}
	req, err := b.Build()
	if err != nil {
		return err
	}
	defer f.invalidate()
	return f.hydrus.client.AddTags(ctx, req)
}

// SetTime adds the file to b, builds it and submits the edit.
func (f *File) SetTime(ctx context.Context, b *api.SetTimeRequestBuilder) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	req, err := b.AddHash(hash).Build()
	if err != nil {
		return err
	}
	defer f.invalidate()
	return f.hydrus.client.SetTime(ctx, req)
}

// SetModifiedTime sets the file's disk modified time.
func (f *File) SetModifiedTime(ctx context.Context, t time.Time) error {
	return f.SetTime(ctx, api.SetDiskTime().SetTime(t))
}

// SetImportedTime sets when the file was imported into fileServiceKey.
func (f *File) SetImportedTime(ctx context.Context, fileServiceKey string, t time.Time) error {
	return f.SetTime(ctx, api.SetDbTime(api.DbFileImportedTime, fileServiceKey).SetTime(t))
}

// SetArchivedTime sets when the file left the inbox.
func (f *File) SetArchivedTime(ctx context.Context, t time.Time) error {
	return f.SetTime(ctx, api.SetArchivedTime().SetTime(t))
}

// SetLastViewedTime sets the last view time for one canvas.
func (f *File) SetLastViewedTime(ctx context.Context, canvas uint64, t time.Time) error {
	return f.SetTime(ctx, api.SetLastViewedTime(canvas).SetTime(t))
}

// Delete sends the file to the trash.
func (f *File) Delete(ctx context.Context, reason string) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	defer f.invalidate()
	return f.hydrus.client.DeleteFiles(ctx, api.DeleteFilesRequest{Hashes: []string{hash}, Reason: reason})
}

// Undelete restores the file from the trash.
func (f *File) Undelete(ctx context.Context) error {
	return f.hashAction(ctx, f.hydrus.client.UndeleteFiles)
}

// Archive removes the file from the inbox.
func (f *File) Archive(ctx context.Context) error {
	return f.hashAction(ctx, f.hydrus.client.ArchiveFiles)
}

// Unarchive puts the file back in the inbox.
func (f *File) Unarchive(ctx context.Context) error {
	return f.hashAction(ctx, f.hydrus.client.UnarchiveFiles)
}

// Content downloads the file.
func (f *File) Content(ctx context.Context) ([]byte, error) {
	return f.hydrus.client.File(ctx, f.ID)
}

// Thumbnail downloads the file's thumbnail.
func (f *File) Thumbnail(ctx context.Context) ([]byte, error) {
	return f.hydrus.client.Thumbnail(ctx, f.ID)
}

func (f *File) hashAction(ctx context.Context, action func(context.Context, []string) error) error {
	hash, err := f.Hash(ctx)
	if err != nil {
		return err
	}
	defer f.invalidate()
	return action(ctx, []string{hash})
}

func (f *File) invalidate() {
	if f.metadata != nil {
		f.hydrus.forgetMetadata(f.metadata.Hash)
		f.metadata = nil
	}
	f.hydrus.forgetMetadata(f.ID.Hash)
}
