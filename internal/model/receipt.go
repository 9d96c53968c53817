package model

import "time"

// FolderNode is a remote directory, identified by store id and looked up by
// (name, parent) rather than by path string.
type FolderNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// ReceiptFile is one stored receipt document. Description is derived from the
// remote file name, not stored server-side.
type ReceiptFile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedTime   time.Time `json:"created_time"`
	MimeType      string    `json:"mime_type"`
	Size          int64     `json:"size"`
	WebViewLink   string    `json:"web_view_link"`
	ThumbnailLink string    `json:"thumbnail_link,omitempty"`
	ImageURL      string    `json:"image_url"`
}

// UploadResult reports where a receipt landed.
type UploadResult struct {
	FileID     string `json:"file_id"`
	FolderPath string `json:"folder_path"`
}
