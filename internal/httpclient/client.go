// Package httpclient builds the outbound HTTP clients used to reach
// the public dataset mirrors.
package httpclient

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/atomview/atomview/errors"
)

const maxRedirects = 10

// New returns an HTTP client with the given overall timeout, a bounded
// redirect chain, and conservative transport timeouts. Redirects may
// only land on http or https URLs.
func New(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.Newf("stopped after %d redirects", maxRedirects)
			}
			scheme := strings.ToLower(req.URL.Scheme)
			if scheme != "http" && scheme != "https" {
				return errors.Newf("redirect to scheme %q blocked", scheme)
			}
			return nil
		},
	}
}
