package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Cookie is one cookie in the client's session manager. On the wire it is a
// five-element array: name, value, domain, path, expires.
type Cookie struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires *int64
}

// MarshalJSON encodes the cookie as the array form hydrus expects.
func (c Cookie) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Name, c.Value, c.Domain, c.Path, c.Expires})
}

// UnmarshalJSON decodes the array form.
func (c *Cookie) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 5 {
		return fmt.Errorf("cookie has %d fields, want 5", len(parts))
	}
	var out Cookie
	for i, dest := range []any{&out.Name, &out.Value, &out.Domain, &out.Path, &out.Expires} {
		if err := json.Unmarshal(parts[i], dest); err != nil {
			return fmt.Errorf("cookie field %d: %w", i, err)
		}
	}
	*c = out
	return nil
}

// GetCookiesRequest selects cookies by domain.
type GetCookiesRequest struct {
	Domain string `json:"domain"`
}

// CookiesResponse answers manage_cookies/get_cookies.
type CookiesResponse struct {
	Cookies []Cookie `json:"cookies"`
}

// SetCookiesRequest stores cookies for the downloader session.
type SetCookiesRequest struct {
	Cookies []Cookie `json:"cookies"`
}

// SetUserAgentRequest changes the global downloader user agent. An empty
// value resets it.
type SetUserAgentRequest struct {
	UserAgent string `json:"user-agent"`
}

var (
	GetCookies   = Endpoint[GetCookiesRequest, CookiesResponse]{Method: http.MethodGet, Path: "manage_cookies/get_cookies"}
	SetCookies   = Endpoint[SetCookiesRequest, Empty]{Method: http.MethodPost, Path: "manage_cookies/set_cookies"}
	SetUserAgent = Endpoint[SetUserAgentRequest, Empty]{Method: http.MethodPost, Path: "manage_headers/set_user_agent"}
)
