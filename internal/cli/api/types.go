package api

import "time"

// User mirrors the backend's user payload.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarURL,omitempty"`
}

// File mirrors the backend's file payload. URL and IconURL point at the
// external drive; only metadata lives on the server.
type File struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	URL            string     `json:"url"`
	IconURL        string     `json:"iconUrl"`
	MimeType       string     `json:"mimeType"`
	Starred        bool       `json:"starred"`
	FolderID       *string    `json:"folderId"`
	UploadedAt     time.Time  `json:"uploadedAt"`
	LastEditedDate *time.Time `json:"lastEditedDate,omitempty"`
}

// Folder mirrors the backend's folder payload.
type Folder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ParentFolderID *string   `json:"parentFolderId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TreeNode is one node of the nested folder hierarchy.
type TreeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Children []*TreeNode `json:"children"`
}

// Crumb is one breadcrumb segment; a null id marks the root level.
type Crumb struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Listing is the combined payload of GET /files.
type Listing struct {
	Files   []File   `json:"files"`
	Folders []Folder `json:"folders"`
}

// FolderList is the payload of GET /folders.
type FolderList struct {
	Folders []Folder `json:"folders"`
}

// Tree is the payload of GET /folders/tree.
type Tree struct {
	Tree []*TreeNode `json:"tree"`
}

// Path is the payload of GET /folders/:id/path.
type Path struct {
	Path     []Crumb `json:"path"`
	Ellipsis []Crumb `json:"ellipsis"`
}

// FolderEnvelope wraps a single folder.
type FolderEnvelope struct {
	Folder Folder `json:"folder"`
}

// FileEnvelope wraps a single file.
type FileEnvelope struct {
	File File `json:"file"`
}

// UserEnvelope wraps a single user.
type UserEnvelope struct {
	User User `json:"user"`
}

// BulkDeleteReport is the payload of POST /files/bulk-delete.
type BulkDeleteReport struct {
	Deleted int                `json:"deleted"`
	Failed  int                `json:"failed"`
	Results []BulkDeleteResult `json:"results"`
}

type BulkDeleteResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// Message is a plain confirmation payload.
type Message struct {
	Message string `json:"message"`
}
