package hydrus

import (
	"context"

	"github.com/five82/hydrant/api"
)

// URL is a web address as hydrus understands it.
type URL struct {
	hydrus *Hydrus

	Raw        string
	Normalised string
	Type       api.URLType
	MatchName  string
	CanParse   bool
}

func newURL(h *Hydrus, raw string, info api.GetURLInfoResponse) *URL {
	return &URL{
		hydrus:     h,
		Raw:        raw,
		Normalised: info.NormalisedURL,
		Type:       info.URLType,
		MatchName:  info.MatchName,
		CanParse:   info.CanParse,
	}
}

// Files returns the files hydrus associates with the URL.
func (u *URL) Files(ctx context.Context) ([]*File, error) {
	resp, err := u.hydrus.client.URLFiles(ctx, u.Raw)
	if err != nil {
		return nil, err
	}
	files := make([]*File, 0, len(resp.URLFileStatuses))
	for _, st := range resp.URLFileStatuses {
		f := u.hydrus.File(st.Hash)
		f.Status = statusFromImport(st.Status)
		files = append(files, f)
	}
	return files, nil
}

// Associate links the URL to files by hash.
func (u *URL) Associate(ctx context.Context, hashes []string) error {
	for _, hash := range hashes {
		u.hydrus.forgetMetadata(hash)
	}
	return u.hydrus.client.AssociateURLs(ctx, []string{u.Raw}, hashes)
}

// Import queues the URL for download.
func (u *URL) Import() *URLImportBuilder {
	return u.hydrus.Import().URL(u.Raw)
}
