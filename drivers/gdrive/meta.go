package gdrive

import "github.com/receiptvault/receiptvault/internal/errs"

const (
	defaultTokenURL   = "https://www.googleapis.com/oauth2/v4/token"
	defaultAPIBase    = "https://www.googleapis.com/drive/v3"
	defaultUploadBase = "https://www.googleapis.com/upload/drive/v3"

	folderMimeType = "application/vnd.google-apps.folder"
	imageMimeType  = "image/jpeg"
	receiptExt     = ".jpg"

	// rootFolderName anchors the receipts/<year>/<month> hierarchy.
	rootFolderName = "receipts"

	// uploadBoundary separates the metadata and content parts of a
	// multipart/related upload body.
	uploadBoundary = "receiptvault_upload_boundary"

	// displayURLFormat is the provider's public view URL for a file id.
	displayURLFormat = "https://drive.google.com/uc?export=view&id=%s"

	defaultURLConcurrency = 4
)

// Credentials is the immutable OAuth material supplied at construction.
// RedirectURI is not sent on the token exchange; it is retained because it
// belongs to the authorization flow that produced the refresh token.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	RedirectURI  string `json:"redirect_uri"`
}

func (c Credentials) validate() error {
	switch {
	case c.ClientID == "":
		return &errs.AuthError{Reason: "client_id is required"}
	case c.ClientSecret == "":
		return &errs.AuthError{Reason: "client_secret is required"}
	case c.RefreshToken == "":
		return &errs.AuthError{Reason: "refresh_token is required"}
	}
	return nil
}
