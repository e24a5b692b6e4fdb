package api

import "net/http"

// Basic permissions understood by request_new_permissions.
const (
	PermissionImportURLs     = 0
	PermissionImportFiles    = 1
	PermissionAddTags        = 2
	PermissionSearchFiles    = 3
	PermissionManagePages    = 4
	PermissionManageCookies  = 5
	PermissionManageDatabase = 6
	PermissionAddNotes       = 7
	PermissionManageFileRels = 8
	PermissionEditRatings    = 9
	PermissionManagePopups   = 10
	PermissionEditFileTimes  = 11
	PermissionCommitPending  = 12
	PermissionSeeLocalPaths  = 13
)

// APIVersionResponse answers api_version.
type APIVersionResponse struct {
	Version       int `json:"version"`
	HydrusVersion int `json:"hydrus_version"`
}

// NewPermissionsRequest asks the user to grant a new access key.
type NewPermissionsRequest struct {
	Name             string `json:"name"`
	BasicPermissions []int  `json:"basic_permissions"`
}

// NewPermissionsResponse carries the granted access key.
type NewPermissionsResponse struct {
	AccessKey string `json:"access_key"`
}

// SessionKeyResponse carries a temporary session key.
type SessionKeyResponse struct {
	SessionKey string `json:"session_key"`
}

// VerifyAccessKeyResponse describes the permissions of the current key.
type VerifyAccessKeyResponse struct {
	BasicPermissions []int  `json:"basic_permissions"`
	HumanDescription string `json:"human_description"`
}

var (
	APIVersion            = Endpoint[Empty, APIVersionResponse]{Method: http.MethodGet, Path: "api_version"}
	RequestNewPermissions = Endpoint[NewPermissionsRequest, NewPermissionsResponse]{Method: http.MethodGet, Path: "request_new_permissions"}
	SessionKey            = Endpoint[Empty, SessionKeyResponse]{Method: http.MethodGet, Path: "session_key"}
	VerifyAccessKey       = Endpoint[Empty, VerifyAccessKeyResponse]{Method: http.MethodGet, Path: "verify_access_key"}
	GetServices           = Endpoint[Empty, ServicesResponse]{Method: http.MethodGet, Path: "get_services"}
)
