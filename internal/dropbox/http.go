package dropbox

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates the HTTP client shared by the token exchange and the files API
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
	}
}

// newAuthorizedClient attaches "Authorization: Bearer <token>" from src to
// every request sent through base
func newAuthorizedClient(base *http.Client, src oauth2.TokenSource) *http.Client {
	if base == nil {
		base = NewHTTPClient()
	}
	return &http.Client{
		Timeout: base.Timeout,
		Transport: &oauth2.Transport{
			Source: src,
			Base:   base.Transport,
		},
	}
}
