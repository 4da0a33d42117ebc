// Package ownhttp provides the http client shared by all remote
// collaborators (launchermeta, the forge maven and the fabric meta api)
package ownhttp

import "net/http"

// UserAgent identifies this tool against the remote services
var UserAgent = "supdate/1 (+https://github.com/supdate/supdate)"

// AddHeaderTransport sets the User-Agent header on every request
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps the given transport (or the default one)
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}

// New returns a new http.Client with the AddHeaderTransport
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}
