package hydrus

import (
	"context"

	"github.com/five82/hydrant/api"
)

// Page is a tab in the hydrus client. Pages returned by Hydrus.Pages carry
// their children.
type Page struct {
	hydrus *Hydrus

	Key      string
	Name     string
	Type     api.PageType
	Selected bool
	Children []*Page
}

// Pages returns the root of the page tree.
func (h *Hydrus) Pages(ctx context.Context) (*Page, error) {
	resp, err := h.client.Pages(ctx)
	if err != nil {
		return nil, err
	}
	return newPage(h, resp.Pages), nil
}

// Page returns a handle for the page with key. No request is made.
func (h *Hydrus) Page(key string) *Page {
	return &Page{hydrus: h, Key: key}
}

func newPage(h *Hydrus, info api.PageInformation) *Page {
	p := &Page{
		hydrus:   h,
		Key:      info.PageKey,
		Name:     info.Name,
		Type:     info.PageType,
		Selected: info.Selected,
	}
	for _, child := range info.Pages {
		p.Children = append(p.Children, newPage(h, child))
	}
	return p
}

// Find returns the first page in the subtree whose name matches.
func (p *Page) Find(name string) *Page {
	if p.Name == name {
		return p
	}
	for _, child := range p.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Info fetches the page's details.
func (p *Page) Info(ctx context.Context, simple bool) (api.PageDetails, error) {
	resp, err := p.hydrus.client.PageInfo(ctx, p.Key, simple)
	if err != nil {
		return api.PageDetails{}, err
	}
	return resp.PageInfo, nil
}

// Focus brings the page to the front.
func (p *Page) Focus(ctx context.Context) error {
	return p.hydrus.client.FocusPage(ctx, p.Key)
}

// AddFiles shows files on the page.
func (p *Page) AddFiles(ctx context.Context, files []*File) error {
	req := api.AddFilesToPageRequest{PageKey: p.Key}
	for _, f := range files {
		if f.ID.IsHash() {
			req.Hashes = append(req.Hashes, f.ID.Hash)
		} else {
			req.FileIDs = append(req.FileIDs, f.ID.ID)
		}
	}
	return p.hydrus.client.AddFilesToPage(ctx, req)
}
