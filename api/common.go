package api

import (
	"encoding/json"
	"strconv"
)

// FileIdentifier addresses a file either by its numeric id or by its sha256
// hash. Exactly one of the two is meaningful.
type FileIdentifier struct {
	ID   uint64
	Hash string
}

// FileByID identifies a file by its database id.
func FileByID(id uint64) FileIdentifier { return FileIdentifier{ID: id} }

// FileByHash identifies a file by its sha256 hash.
func FileByHash(hash string) FileIdentifier { return FileIdentifier{Hash: hash} }

// IsHash reports whether the identifier carries a hash.
func (f FileIdentifier) IsHash() bool { return f.Hash != "" }

func (f FileIdentifier) String() string {
	if f.IsHash() {
		return f.Hash
	}
	return "#" + strconv.FormatUint(f.ID, 10)
}

// BasicServiceInfo names a hydrus service.
type BasicServiceInfo struct {
	Name       string `json:"name"`
	ServiceKey string `json:"service_key"`
	Type       int    `json:"type,omitempty"`
	TypePretty string `json:"type_pretty,omitempty"`
}

// ServicesResponse groups services by their kind (for example "local_tags"
// or "all_known_files").
type ServicesResponse map[string][]BasicServiceInfo

// UnmarshalJSON keeps only the list-valued members of the payload so the
// version fields the client API adds to every answer are ignored.
func (s *ServicesResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ServicesResponse, len(raw))
	for name, value := range raw {
		if len(value) == 0 || value[0] != '[' {
			continue
		}
		var services []BasicServiceInfo
		if err := json.Unmarshal(value, &services); err != nil {
			return err
		}
		out[name] = services
	}
	*s = out
	return nil
}

// FileMetadataInfo is one entry of get_files/file_metadata.
type FileMetadataInfo struct {
	FileID    uint64   `json:"file_id"`
	Hash      string   `json:"hash"`
	Size      *uint64  `json:"size"`
	Mime      string   `json:"mime"`
	Ext       string   `json:"ext"`
	Width     *uint32  `json:"width"`
	Height    *uint32  `json:"height"`
	Duration  *uint64  `json:"duration"`
	HasAudio  *bool    `json:"has_audio"`
	NumFrames *uint64  `json:"num_frames"`
	NumWords  *uint64  `json:"num_words"`
	IsInbox   bool     `json:"is_inbox"`
	IsLocal   bool     `json:"is_local"`
	IsTrashed bool     `json:"is_trashed"`
	KnownURLs []string `json:"known_urls"`

	// ServiceKeysToStatusesToTags maps tag service key to tag status
	// ("0" current, "1" pending, ...) to tags.
	ServiceKeysToStatusesToTags map[string]map[string][]string `json:"service_keys_to_statuses_to_tags"`
}

// Clone returns a deep copy of m. Its slices, maps and pointers are not shared
// with m.
func (m FileMetadataInfo) Clone() FileMetadataInfo {
	c := m
	c.Size = clonePtr(m.Size)
	c.Width = clonePtr(m.Width)
	c.Height = clonePtr(m.Height)
	c.Duration = clonePtr(m.Duration)
	c.HasAudio = clonePtr(m.HasAudio)
	c.NumFrames = clonePtr(m.NumFrames)
	c.NumWords = clonePtr(m.NumWords)
	if m.KnownURLs != nil {
		c.KnownURLs = append([]string(nil), m.KnownURLs...)
	}
	if m.ServiceKeysToStatusesToTags != nil {
		c.ServiceKeysToStatusesToTags = make(map[string]map[string][]string, len(m.ServiceKeysToStatusesToTags))
		for service, statuses := range m.ServiceKeysToStatusesToTags {
			if statuses == nil {
				c.ServiceKeysToStatusesToTags[service] = nil
				continue
			}
			inner := make(map[string][]string, len(statuses))
			for status, tags := range statuses {
				if tags != nil {
					tags = append([]string(nil), tags...)
				}
				inner[status] = tags
			}
			c.ServiceKeysToStatusesToTags[service] = inner
		}
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// hashesRequest is the shared body of endpoints that act on a list of files.
type hashesRequest struct {
	Hashes []string `json:"hashes"`
}
