package gdrive

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/receiptvault/receiptvault/drivers/base"
	"github.com/receiptvault/receiptvault/internal/errs"
	"github.com/receiptvault/receiptvault/pkg/utils"
)

// defaultDescription is used when a remote name yields no usable first
// segment.
const defaultDescription = "Receipt"

var (
	nonAlphanumeric   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	timestampReplacer = strings.NewReplacer(":", "-", ".", "-")
	descriptionSpacer = strings.NewReplacer("_", " ", "-", " ")
	queryTermEscaper  = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
)

// SanitizeDescription replaces every character outside [a-zA-Z0-9] with an
// underscore, one for one.
func SanitizeDescription(description string) string {
	return nonAlphanumeric.ReplaceAllString(description, "_")
}

// FormatTimestamp renders ts in UTC with millisecond precision, with ':' and
// '.' replaced by '-' so the result is filename-safe.
func FormatTimestamp(ts time.Time) string {
	return timestampReplacer.Replace(ts.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

// BuildReceiptName produces the remote file name for a receipt, e.g.
// description "Gas" at 2025-01-26T15:30:45.123Z becomes
// "Gas_2025-01-26T15-30-45-123Z.jpg".
func BuildReceiptName(description string, ts time.Time) string {
	return SanitizeDescription(description) + "_" + FormatTimestamp(ts) + receiptExt
}

// DeriveDescription recovers the human description from a remote file name:
// the segment before the first underscore, with '-' turned back into spaces.
// Names without a usable segment fall back to "Receipt".
func DeriveDescription(name string) string {
	seg := name
	if i := strings.Index(name, "_"); i >= 0 {
		seg = name[:i]
	}
	seg = strings.TrimSpace(descriptionSpacer.Replace(seg))
	if seg == "" {
		return defaultDescription
	}
	return seg
}

// getAccessToken returns the cached bearer token, performing the refresh-token
// exchange on first use. The token has no tracked expiry: it is reused for the
// lifetime of the client instance.
func (d *GoogleDrive) getAccessToken(ctx context.Context) (string, error) {
	d.tokenMu.Lock()
	defer d.tokenMu.Unlock()
	if d.accessToken != "" {
		return d.accessToken, nil
	}
	var tokenResp TokenResp
	res, err := d.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     d.creds.ClientID,
			"client_secret": d.creds.ClientSecret,
			"refresh_token": d.creds.RefreshToken,
			"grant_type":    "refresh_token",
		}).
		SetResult(&tokenResp).
		Post(d.tokenURL)
	if err != nil {
		return "", &errs.NetworkError{Op: "token exchange", Err: err}
	}
	if tokenResp.AccessToken == "" {
		return "", &errs.AuthError{Reason: "token exchange failed", Body: res.String()}
	}
	d.accessToken = tokenResp.AccessToken
	return d.accessToken, nil
}

// request issues an authenticated call. Only transport failures come back as
// an error; HTTP-level errors are left on the response for the caller to map
// onto the right kind.
func (d *GoogleDrive) request(ctx context.Context, method, url string, callback base.ReqCallback, result interface{}) (*resty.Response, error) {
	token, err := d.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	req := d.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)
	if callback != nil {
		callback(req)
	}
	if result != nil {
		req.SetResult(result)
	}
	res, err := req.Execute(method, url)
	if err != nil {
		return nil, &errs.NetworkError{Op: method + " " + url, Err: err}
	}
	return res, nil
}

// findFolder looks a folder up by exact name and optional parent, returning
// the first match's id or "" when absent.
func (d *GoogleDrive) findFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf("mimeType='%s' and trashed=false and name='%s'", folderMimeType, queryTermEscaper.Replace(name))
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}
	var resp FileListResp
	res, err := d.request(ctx, http.MethodGet, d.apiBase+"/files", func(req *resty.Request) {
		req.SetQueryParams(map[string]string{
			"q":      query,
			"fields": "files(id,name)",
		})
	}, &resp)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", &errs.RemoteStoreError{Op: "find folder " + name, Status: res.StatusCode(), Body: res.String()}
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].ID, nil
}

// createFolder creates a folder without checking for an existing sibling;
// callers must findFolder first.
func (d *GoogleDrive) createFolder(ctx context.Context, name, parentID string) (string, error) {
	data := base.Json{
		"name":     name,
		"mimeType": folderMimeType,
	}
	if parentID != "" {
		data["parents"] = []string{parentID}
	}
	var resp CreateResp
	res, err := d.request(ctx, http.MethodPost, d.apiBase+"/files", func(req *resty.Request) {
		req.SetBody(data)
	}, &resp)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", &errs.RemoteStoreError{Op: "create folder " + name, Status: res.StatusCode(), Body: res.String()}
	}
	return resp.ID, nil
}

// ensureFolderPath materializes receipts/<year>/<month> and returns the month
// folder's id. Each stage blocks on the previous one's id. The find-then-create
// step is not atomic: concurrent callers can race into duplicate siblings, so
// access to one client instance must be serialized.
func (d *GoogleDrive) ensureFolderPath(ctx context.Context, year, month string) (string, error) {
	stages := []struct {
		label string
		name  string
	}{
		{"root", rootFolderName},
		{"year", year},
		{"month", month},
	}
	parentID := ""
	for _, stage := range stages {
		id, err := d.findFolder(ctx, stage.name, parentID)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s folder %q", stage.label, stage.name)
		}
		if id == "" {
			id, err = d.createFolder(ctx, stage.name, parentID)
			if err != nil {
				return "", errors.Wrapf(err, "creating %s folder %q", stage.label, stage.name)
			}
		}
		parentID = id
	}
	return parentID, nil
}

func (d *GoogleDrive) listChildFolders(ctx context.Context, parentID string) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", parentID, folderMimeType)
	var resp FileListResp
	res, err := d.request(ctx, http.MethodGet, d.apiBase+"/files", func(req *resty.Request) {
		req.SetQueryParams(map[string]string{
			"q":      query,
			"fields": "files(id,name)",
		})
	}, &resp)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, &errs.RemoteStoreError{Op: "list folders under " + parentID, Status: res.StatusCode(), Body: res.String()}
	}
	return resp.Files, nil
}

func (d *GoogleDrive) listChildFiles(ctx context.Context, parentID string) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType!='%s' and trashed=false", parentID, folderMimeType)
	var resp FileListResp
	res, err := d.request(ctx, http.MethodGet, d.apiBase+"/files", func(req *resty.Request) {
		req.SetQueryParams(map[string]string{
			"q":       query,
			"orderBy": "createdTime desc",
			"fields":  "files(id,name,mimeType,size,webViewLink,thumbnailLink,createdTime)",
		})
	}, &resp)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, &errs.RemoteStoreError{Op: "list files under " + parentID, Status: res.StatusCode(), Body: res.String()}
	}
	return resp.Files, nil
}

// grantAnyoneReader makes the file world-readable. Callers decide whether a
// failure matters; URL construction does not depend on it.
func (d *GoogleDrive) grantAnyoneReader(ctx context.Context, fileID string) error {
	res, err := d.request(ctx, http.MethodPost, d.apiBase+"/files/"+fileID+"/permissions", func(req *resty.Request) {
		req.SetBody(base.Json{
			"role": "reader",
			"type": "anyone",
		})
	}, nil)
	if err != nil {
		return err
	}
	if res.IsError() {
		return &errs.RemoteStoreError{Op: "grant permission on " + fileID, Status: res.StatusCode(), Body: res.String()}
	}
	return nil
}

// buildUploadBody assembles the multipart/related payload: a JSON metadata
// part naming the file and its parent folder, then the image bytes encoded as
// base64 with a transfer-encoding marker.
func buildUploadBody(name, folderID string, content []byte) []byte {
	metadata := utils.MustMarshalString(base.Json{
		"name":    name,
		"parents": []string{folderID},
	})
	var buf bytes.Buffer
	buf.WriteString("--" + uploadBoundary + "\r\n")
	buf.WriteString("Content-Type: application/json; charset=UTF-8\r\n\r\n")
	buf.WriteString(metadata)
	buf.WriteString("\r\n--" + uploadBoundary + "\r\n")
	buf.WriteString("Content-Type: " + imageMimeType + "\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	buf.WriteString(base64.StdEncoding.EncodeToString(content))
	buf.WriteString("\r\n--" + uploadBoundary + "--")
	return buf.Bytes()
}
