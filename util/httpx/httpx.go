package httpx

import (
	"net"
	"net/http"
	"time"
)

const DefaultTimeout = 10 * time.Second

var defaultClient = New(DefaultTimeout)

// New builds a pooled client; timeout bounds the whole exchange.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		// the gateway relays redirects as they are
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func Client() *http.Client { return defaultClient }
