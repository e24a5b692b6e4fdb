package api

import (
	"context"
	"fmt"
)

// Client exposes one typed method per client API endpoint. Every method is a
// single Call with the endpoint's descriptor.
type Client struct {
	transport Transport
}

// NewClient wraps a Transport.
func NewClient(t Transport) (*Client, error) {
	if t == nil {
		return nil, fmt.Errorf("transport is nil")
	}
	return &Client{transport: t}, nil
}

// Transport returns the underlying transport.
func (c *Client) Transport() Transport { return c.transport }

// APIVersion returns the API and hydrus versions.
func (c *Client) APIVersion(ctx context.Context) (APIVersionResponse, error) {
	return Call(ctx, c.transport, APIVersion, Empty{})
}

// RequestNewPermissions asks the user to approve a new access key.
func (c *Client) RequestNewPermissions(ctx context.Context, name string, permissions []int) (NewPermissionsResponse, error) {
	return Call(ctx, c.transport, RequestNewPermissions, NewPermissionsRequest{Name: name, BasicPermissions: permissions})
}

// SessionKey fetches a temporary session key.
func (c *Client) SessionKey(ctx context.Context) (SessionKeyResponse, error) {
	return Call(ctx, c.transport, SessionKey, Empty{})
}

// VerifyAccessKey describes the permissions of the configured key.
func (c *Client) VerifyAccessKey(ctx context.Context) (VerifyAccessKeyResponse, error) {
	return Call(ctx, c.transport, VerifyAccessKey, Empty{})
}

// Services lists the client's services by kind.
func (c *Client) Services(ctx context.Context) (ServicesResponse, error) {
	return Call(ctx, c.transport, GetServices, Empty{})
}

// AddFile imports a file from a path readable by the hydrus client.
func (c *Client) AddFile(ctx context.Context, path string) (AddFileResponse, error) {
	return Call(ctx, c.transport, AddFile, AddFileRequest{Path: path})
}

// AddFileBytes uploads file content.
func (c *Client) AddFileBytes(ctx context.Context, content []byte) (AddFileResponse, error) {
	return Call(ctx, c.transport, AddFileBytes, AddFileBytesRequest(content))
}

// DeleteFiles moves files to the trash.
func (c *Client) DeleteFiles(ctx context.Context, req DeleteFilesRequest) error {
	_, err := Call(ctx, c.transport, DeleteFiles, req)
	return err
}

// UndeleteFiles restores files from the trash.
func (c *Client) UndeleteFiles(ctx context.Context, hashes []string) error {
	_, err := Call(ctx, c.transport, UndeleteFiles, NewFilesRequest(hashes...))
	return err
}

// ArchiveFiles removes files from the inbox.
func (c *Client) ArchiveFiles(ctx context.Context, hashes []string) error {
	_, err := Call(ctx, c.transport, ArchiveFiles, NewFilesRequest(hashes...))
	return err
}

// UnarchiveFiles puts files back in the inbox.
func (c *Client) UnarchiveFiles(ctx context.Context, hashes []string) error {
	_, err := Call(ctx, c.transport, UnarchiveFiles, NewFilesRequest(hashes...))
	return err
}

// CleanTags returns tags as hydrus would store them.
func (c *Client) CleanTags(ctx context.Context, tags []string) (CleanTagsResponse, error) {
	return Call(ctx, c.transport, CleanTags, CleanTagsRequest{Tags: tags})
}

// SearchTags autocompletes a partial tag.
func (c *Client) SearchTags(ctx context.Context, req SearchTagsRequest) (SearchTagsResponse, error) {
	return Call(ctx, c.transport, SearchTags, req)
}

// AddTags edits tags on files.
func (c *Client) AddTags(ctx context.Context, req AddTagsRequest) error {
	_, err := Call(ctx, c.transport, AddTags, req)
	return err
}

// URLFiles lists the files hydrus knows for url.
func (c *Client) URLFiles(ctx context.Context, url string) (GetURLFilesResponse, error) {
	return Call(ctx, c.transport, GetURLFiles, URLRequest{URL: url})
}

// URLInfo describes how hydrus classifies url.
func (c *Client) URLInfo(ctx context.Context, url string) (GetURLInfoResponse, error) {
	return Call(ctx, c.transport, GetURLInfo, URLRequest{URL: url})
}

// AddURL queues a URL for download.
func (c *Client) AddURL(ctx context.Context, req AddURLRequest) (AddURLResponse, error) {
	return Call(ctx, c.transport, AddURL, req)
}

// AssociateURLs links urls to the files.
func (c *Client) AssociateURLs(ctx context.Context, urls, hashes []string) error {
	_, err := Call(ctx, c.transport, AssociateURL, AssociateURLRequest{URLsToAdd: urls, Hashes: hashes})
	return err
}

// DisassociateURLs unlinks urls from the files.
func (c *Client) DisassociateURLs(ctx context.Context, urls, hashes []string) error {
	_, err := Call(ctx, c.transport, AssociateURL, AssociateURLRequest{URLsToDelete: urls, Hashes: hashes})
	return err
}

// Cookies returns the cookies stored for domain.
func (c *Client) Cookies(ctx context.Context, domain string) (CookiesResponse, error) {
	return Call(ctx, c.transport, GetCookies, GetCookiesRequest{Domain: domain})
}

// SetCookies stores cookies.
func (c *Client) SetCookies(ctx context.Context, cookies []Cookie) error {
	_, err := Call(ctx, c.transport, SetCookies, SetCookiesRequest{Cookies: cookies})
	return err
}

// SetUserAgent changes the downloader user agent.
func (c *Client) SetUserAgent(ctx context.Context, ua string) error {
	_, err := Call(ctx, c.transport, SetUserAgent, SetUserAgentRequest{UserAgent: ua})
	return err
}

// Pages returns the page tree.
func (c *Client) Pages(ctx context.Context) (GetPagesResponse, error) {
	return Call(ctx, c.transport, GetPages, Empty{})
}

// PageInfo describes one page.
func (c *Client) PageInfo(ctx context.Context, pageKey string, simple bool) (GetPageInfoResponse, error) {
	return Call(ctx, c.transport, GetPageInfo, PageInfoRequest{PageKey: pageKey, Simple: simple})
}

// FocusPage brings a page to the front.
func (c *Client) FocusPage(ctx context.Context, pageKey string) error {
	_, err := Call(ctx, c.transport, FocusPage, FocusPageRequest{PageKey: pageKey})
	return err
}

// AddFilesToPage appends files to a media page.
func (c *Client) AddFilesToPage(ctx context.Context, req AddFilesToPageRequest) error {
	_, err := Call(ctx, c.transport, AddFilesToPage, req)
	return err
}

// SearchFiles runs a tag search.
func (c *Client) SearchFiles(ctx context.Context, req SearchFilesRequest) (SearchFilesResponse, error) {
	return Call(ctx, c.transport, SearchFiles, req)
}

// FileMetadata fetches metadata for the selected files.
func (c *Client) FileMetadata(ctx context.Context, req FileMetadataRequest) (FileMetadataResponse, error) {
	return Call(ctx, c.transport, FileMetadata, req)
}

// File downloads file content.
func (c *Client) File(ctx context.Context, id FileIdentifier) ([]byte, error) {
	body, err := Call(ctx, c.transport, GetFile, GetFileRequestFor(id))
	return []byte(body), err
}

// Thumbnail downloads a file's thumbnail.
func (c *Client) Thumbnail(ctx context.Context, id FileIdentifier) ([]byte, error) {
	body, err := Call(ctx, c.transport, GetThumbnail, GetFileRequestFor(id))
	return []byte(body), err
}

// SetTime submits a finalised set-time request.
func (c *Client) SetTime(ctx context.Context, req SetTimeRequest) error {
	_, err := Call(ctx, c.transport, SetTime, req)
	return err
}
