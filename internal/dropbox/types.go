package dropbox

import (
	"fmt"
	"time"
)

// Entry tags reported in the ".tag" field
const (
	TagFile    = "file"
	TagFolder  = "folder"
	TagDeleted = "deleted"
)

// Entry is one item of a folder listing
type Entry struct {
	Tag            string     `json:".tag"`
	Name           string     `json:"name"`
	PathLower      string     `json:"path_lower,omitempty"`
	PathDisplay    string     `json:"path_display,omitempty"`
	ID             string     `json:"id,omitempty"`
	Size           uint64     `json:"size,omitempty"`
	ClientModified *time.Time `json:"client_modified,omitempty"`
	ServerModified *time.Time `json:"server_modified,omitempty"`
}

func (e Entry) IsFolder() bool {
	return e.Tag == TagFolder
}

type listFolderRequest struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type listFolderContinueRequest struct {
	Cursor string `json:"cursor"`
}

type listFolderResponse struct {
	Entries []Entry `json:"entries"`
	Cursor  string  `json:"cursor"`
	HasMore bool    `json:"has_more"`
}

// APIError is the body Dropbox sends with an endpoint-specific error (HTTP 409)
// or an authentication failure (HTTP 401)
type APIError struct {
	StatusCode int    `json:"-"`
	Summary    string `json:"error_summary"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dropbox API error (status %d): %s", e.StatusCode, e.Summary)
}
