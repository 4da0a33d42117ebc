// Package downloadmgr fetches single files over http. Downloads block
// the caller and are never retried, a failed fetch aborts the command.
package downloadmgr

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var defaultClient = http.Client{
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).Dial,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// HTTPItem is a URL, target pair with optional properties that will be
// downloaded using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	Sha1   string
}

// NewHTTPItem creates an item to download
func NewHTTPItem(url string, target string) *HTTPItem {
	return &HTTPItem{URL: url, Target: target}
}

// ErrInvalidSha is returned when the downloaded file's sha1 sum does not
// match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

// Download downloads the item to the defined target using http
func (i *HTTPItem) Download(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return err
	}

	client := i.Client
	if client == nil {
		client = &defaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error while fetching %s: %w", i.URL, err)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode != 200 {
		return fmt.Errorf("invalid status code: %s from %s", fileRes.Status, fileRes.Request.URL)
	}

	dest, err := os.Create(i.Target)
	if err != nil {
		return err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, fileRes.Body); err != nil {
		return err
	}
	if err := dest.Sync(); err != nil {
		return err
	}

	// check sha if there is one set
	if i.Sha1 != "" {
		if err := checkSha1(i.Sha1, dest.Name()); err != nil {
			return err
		}
	}
	return nil
}

func checkSha1(expected string, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return &ErrInvalidSha{filepath.Base(file), expected, actual}
	}
	return nil
}
