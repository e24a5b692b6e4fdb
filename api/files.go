package api

import "net/http"

// Import statuses returned by add_files/add_file and get_url_files.
const (
	ImportStatusReady             = 0
	ImportStatusSuccess           = 1
	ImportStatusAlreadyInDatabase = 2
	ImportStatusPreviouslyDeleted = 3
	ImportStatusFailed            = 4
	ImportStatusVetoed            = 7
)

// AddFileRequest imports a file the hydrus client can read from disk.
type AddFileRequest struct {
	Path string `json:"path"`
}

// AddFileBytesRequest uploads file content directly.
type AddFileBytesRequest []byte

// EncodeBody sends the bytes unmodified.
func (r AddFileBytesRequest) EncodeBody() (string, []byte, error) {
	return "application/octet-stream", []byte(r), nil
}

// AddFileResponse reports the outcome of an import.
type AddFileResponse struct {
	Status int    `json:"status"`
	Hash   string `json:"hash"`
	Note   string `json:"note"`
}

// DeleteFilesRequest sends files to the trash.
type DeleteFilesRequest struct {
	Hashes []string `json:"hashes"`
	Reason string   `json:"reason,omitempty"`
}

// FilesRequest targets a list of files by hash.
type FilesRequest = hashesRequest

// NewFilesRequest builds a FilesRequest for the given hashes.
func NewFilesRequest(hashes ...string) FilesRequest {
	return FilesRequest{Hashes: append([]string{}, hashes...)}
}

var (
	AddFile        = Endpoint[AddFileRequest, AddFileResponse]{Method: http.MethodPost, Path: "add_files/add_file"}
	AddFileBytes   = Endpoint[AddFileBytesRequest, AddFileResponse]{Method: http.MethodPost, Path: "add_files/add_file"}
	DeleteFiles    = Endpoint[DeleteFilesRequest, Empty]{Method: http.MethodPost, Path: "add_files/delete_files"}
	UndeleteFiles  = Endpoint[FilesRequest, Empty]{Method: http.MethodPost, Path: "add_files/undelete_files"}
	ArchiveFiles   = Endpoint[FilesRequest, Empty]{Method: http.MethodPost, Path: "add_files/archive_files"}
	UnarchiveFiles = Endpoint[FilesRequest, Empty]{Method: http.MethodPost, Path: "add_files/unarchive_files"}
)
