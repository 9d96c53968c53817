package gdrive

import (
	"strconv"
	"time"

	"github.com/receiptvault/receiptvault/internal/model"
)

type TokenResp struct {
	AccessToken string `json:"access_token"`
}

// File is one entry from a Drive files query. Size comes back as a quoted
// decimal string in v3 responses.
type File struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	Size          string `json:"size"`
	WebViewLink   string `json:"webViewLink"`
	ThumbnailLink string `json:"thumbnailLink"`
	CreatedTime   string `json:"createdTime"`
}

type FileListResp struct {
	Files []File `json:"files"`
}

type CreateResp struct {
	ID string `json:"id"`
}

// ToReceipt converts an API file entry into the domain record. Unparseable
// size or timestamp fields degrade to zero values instead of failing the
// whole listing.
func (f File) ToReceipt() (model.ReceiptFile, error) {
	size, _ := strconv.ParseInt(f.Size, 10, 64)
	created, _ := time.Parse(time.RFC3339, f.CreatedTime)
	return model.ReceiptFile{
		ID:            f.ID,
		Name:          f.Name,
		Description:   DeriveDescription(f.Name),
		CreatedTime:   created,
		MimeType:      f.MimeType,
		Size:          size,
		WebViewLink:   f.WebViewLink,
		ThumbnailLink: f.ThumbnailLink,
	}, nil
}
