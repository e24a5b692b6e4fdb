package api

import "net/http"

// FileSortType orders search results.
type FileSortType int

const (
	SortFileSize           FileSortType = 0
	SortDuration           FileSortType = 1
	SortImportTime         FileSortType = 2
	SortFileType           FileSortType = 3
	SortRandom             FileSortType = 4
	SortWidth              FileSortType = 5
	SortHeight             FileSortType = 6
	SortRatio              FileSortType = 7
	SortNumberOfPixels     FileSortType = 8
	SortNumberOfTags       FileSortType = 9
	SortNumberOfMediaViews FileSortType = 10
	SortTotalMediaViewtime FileSortType = 11
	SortApproxBitrate      FileSortType = 12
	SortHasAudio           FileSortType = 13
	SortModifiedTime       FileSortType = 14
	SortFramerate          FileSortType = 15
	SortNumberOfFrames     FileSortType = 16
	SortLastViewedTime     FileSortType = 18
	SortArchiveTimestamp   FileSortType = 19
	SortHashHex            FileSortType = 20
)

// SearchFilesRequest runs a tag search. Tags may be nested one level to
// express OR groups, hence the []any element type.
type SearchFilesRequest struct {
	Tags         []any         `json:"tags"`
	FileSortType *FileSortType `json:"file_sort_type,omitempty"`
	FileSortAsc  *bool         `json:"file_sort_asc,omitempty"`
	ReturnHashes bool          `json:"return_hashes,omitempty"`
}

// SearchFilesResponse lists matching files.
type SearchFilesResponse struct {
	FileIDs []uint64 `json:"file_ids"`
	Hashes  []string `json:"hashes"`
}

// FileMetadataRequest selects files by hash or id.
type FileMetadataRequest struct {
	Hashes  []string `json:"hashes,omitempty"`
	FileIDs []uint64 `json:"file_ids,omitempty"`
}

// FileMetadataRequestFor builds a metadata request for one identifier.
func FileMetadataRequestFor(id FileIdentifier) FileMetadataRequest {
	if id.IsHash() {
		return FileMetadataRequest{Hashes: []string{id.Hash}}
	}
	return FileMetadataRequest{FileIDs: []uint64{id.ID}}
}

// FileMetadataResponse answers get_files/file_metadata.
type FileMetadataResponse struct {
	Metadata []FileMetadataInfo `json:"metadata"`
}

// GetFileRequest selects the file whose content or thumbnail is fetched.
type GetFileRequest struct {
	Hash   string  `json:"hash,omitempty"`
	FileID *uint64 `json:"file_id,omitempty"`
}

// GetFileRequestFor builds a content request for one identifier.
func GetFileRequestFor(id FileIdentifier) GetFileRequest {
	if id.IsHash() {
		return GetFileRequest{Hash: id.Hash}
	}
	fileID := id.ID
	return GetFileRequest{FileID: &fileID}
}

var (
	SearchFiles  = Endpoint[SearchFilesRequest, SearchFilesResponse]{Method: http.MethodGet, Path: "get_files/search_files"}
	FileMetadata = Endpoint[FileMetadataRequest, FileMetadataResponse]{Method: http.MethodGet, Path: "get_files/file_metadata"}
	GetFile      = Endpoint[GetFileRequest, RawBody]{Method: http.MethodGet, Path: "get_files/file"}
	GetThumbnail = Endpoint[GetFileRequest, RawBody]{Method: http.MethodGet, Path: "get_files/thumbnail"}
)
