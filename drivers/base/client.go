package base

import (
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	UserAgent      = "receiptvault/" + "1.0"
	DefaultTimeout = 30 * time.Second
)

var RestyClient *resty.Client

func init() {
	InitClient()
}

// InitClient (re)builds the shared client. Drivers clone RestyClient so that
// per-driver tweaks never leak into the global.
func InitClient() {
	RestyClient = NewRestyClient()
}

// NewRestyClient returns a client with the shared defaults. No automatic
// retries: callers own their retry policy.
func NewRestyClient() *resty.Client {
	return resty.New().
		SetHeader("user-agent", UserAgent).
		SetTimeout(DefaultTimeout)
}
