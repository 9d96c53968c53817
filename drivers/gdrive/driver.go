package gdrive

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/receiptvault/receiptvault/drivers/base"
	"github.com/receiptvault/receiptvault/internal/cache"
	"github.com/receiptvault/receiptvault/internal/errs"
	"github.com/receiptvault/receiptvault/internal/model"
	"github.com/receiptvault/receiptvault/pkg/utils"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// GoogleDrive stores receipts in a receipts/<year>/<month> hierarchy on
// Google Drive, authenticating via a refresh-token grant. The token slot and
// the display-URL cache are scoped to the instance; concurrent callers should
// serialize on one instance or accept the documented find-then-create race.
type GoogleDrive struct {
	creds  Credentials
	client *resty.Client

	tokenURL   string
	apiBase    string
	uploadBase string

	tokenMu     sync.Mutex
	accessToken string

	urlCache       *cache.KeyedCache[string]
	urlConcurrency int
}

type Option func(*GoogleDrive)

// WithClient replaces the resty client, e.g. to route through a proxy.
func WithClient(client *resty.Client) Option {
	return func(d *GoogleDrive) {
		d.client = client
	}
}

// WithEndpoints overrides the token, API, and upload base URLs.
func WithEndpoints(tokenURL, apiBase, uploadBase string) Option {
	return func(d *GoogleDrive) {
		d.tokenURL = tokenURL
		d.apiBase = apiBase
		d.uploadBase = uploadBase
	}
}

// WithURLConcurrency bounds the per-month display-URL fan-out.
func WithURLConcurrency(n int) Option {
	return func(d *GoogleDrive) {
		if n > 0 {
			d.urlConcurrency = n
		}
	}
}

// New validates creds and builds a client. The shared resty client is cloned
// so per-instance settings never leak into the globals.
func New(creds Credentials, opts ...Option) (*GoogleDrive, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	d := &GoogleDrive{
		creds:          creds,
		client:         base.RestyClient.Clone(),
		tokenURL:       defaultTokenURL,
		apiBase:        defaultAPIBase,
		uploadBase:     defaultUploadBase,
		urlCache:       cache.NewKeyedCache[string](),
		urlConcurrency: defaultURLConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// UploadReceipt reads the local file, materializes the year/month folder for
// ts, and creates the remote file via a multipart upload. The local read
// happens before any network call so a missing file costs nothing remote.
func (d *GoogleDrive) UploadReceipt(ctx context.Context, localPath, description string, ts time.Time) (*model.UploadResult, error) {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return nil, &errs.LocalFileError{Path: localPath, Err: err}
	}

	year := fmt.Sprintf("%04d", ts.UTC().Year())
	month := fmt.Sprintf("%02d", int(ts.UTC().Month()))
	folderID, err := d.ensureFolderPath(ctx, year, month)
	if err != nil {
		return nil, err
	}

	name := BuildReceiptName(description, ts)
	var resp CreateResp
	res, err := d.request(ctx, http.MethodPost, d.uploadBase+"/files", func(req *resty.Request) {
		req.SetQueryParam("uploadType", "multipart").
			SetHeader("Content-Type", "multipart/related; boundary="+uploadBoundary).
			SetBody(buildUploadBody(name, folderID, content))
	}, &resp)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, &errs.UploadError{Status: res.StatusCode(), Body: res.String()}
	}

	log.WithFields(log.Fields{
		"file_id": resp.ID,
		"name":    name,
		"folder":  folderID,
	}).Debug("receipt uploaded")
	return &model.UploadResult{
		FileID:     resp.ID,
		FolderPath: path.Join(rootFolderName, year, month),
	}, nil
}

// ListReceipts walks receipts/<year>/<month> and returns every stored receipt
// as one flat slice. A store with no receipts folder yields an empty slice,
// not an error. Years and months are walked sequentially; display URLs within
// one month resolve concurrently.
func (d *GoogleDrive) ListReceipts(ctx context.Context) ([]model.ReceiptFile, error) {
	rootID, err := d.findFolder(ctx, rootFolderName, "")
	if err != nil {
		return nil, err
	}
	if rootID == "" {
		return []model.ReceiptFile{}, nil
	}

	years, err := d.listChildFolders(ctx, rootID)
	if err != nil {
		return nil, err
	}
	receipts := make([]model.ReceiptFile, 0)
	for _, year := range years {
		months, err := d.listChildFolders(ctx, year.ID)
		if err != nil {
			return nil, err
		}
		for _, month := range months {
			files, err := d.listChildFiles(ctx, month.ID)
			if err != nil {
				return nil, err
			}
			monthReceipts, err := utils.SliceConvert(files, func(src File) (model.ReceiptFile, error) {
				return src.ToReceipt()
			})
			if err != nil {
				return nil, err
			}
			if err := d.resolveDisplayURLs(ctx, monthReceipts); err != nil {
				return nil, err
			}
			receipts = append(receipts, monthReceipts...)
		}
	}
	return receipts, nil
}

func (d *GoogleDrive) resolveDisplayURLs(ctx context.Context, receipts []model.ReceiptFile) error {
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(d.urlConcurrency))
	for i := range receipts {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			receipts[i].ImageURL = d.DisplayURL(gctx, receipts[i].ID)
			return nil
		})
	}
	return g.Wait()
}

// DisplayURL returns the public view URL for fileID, memoized per instance.
// On first use it attempts to grant anyone/reader; a failed grant is logged
// and swallowed, and the constructed URL is returned anyway even though it
// may not resolve for anonymous viewers.
func (d *GoogleDrive) DisplayURL(ctx context.Context, fileID string) string {
	return d.urlCache.GetOrSet(fileID, func() string {
		if err := d.grantAnyoneReader(ctx, fileID); err != nil {
			log.WithFields(log.Fields{
				"file_id": fileID,
			}).WithError(err).Warn("permission grant failed, keeping constructed url")
		}
		return fmt.Sprintf(displayURLFormat, fileID)
	})
}
