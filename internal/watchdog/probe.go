package watchdog

import (
	"net/http"
	"time"
)

// HTTPProber probes a URL with a HEAD request, retrying once with GET
// when the server rejects HEAD with 405.
type HTTPProber struct {
	Client *http.Client
}

// NewProber creates a prober with a bounded request timeout.
func NewProber() *HTTPProber {
	return &HTTPProber{Client: &http.Client{Timeout: 10 * time.Second}}
}

// Available reports whether the URL answered with a status below 400.
// Any transport error counts as unavailable.
func (p *HTTPProber) Available(url string) bool {
	resp, err := p.Client.Head(url)
	if err != nil {
		return false
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		get, err := p.Client.Get(url)
		if err != nil {
			return false
		}
		defer get.Body.Close()
		return get.StatusCode < 400
	}

	return resp.StatusCode < 400
}
