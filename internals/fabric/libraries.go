package fabric

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/supdate/supdate/internals/profile"
)

// ErrBadChecksum is returned when a maven .sha1 sidecar does not look
// like a sha1 digest
type ErrBadChecksum struct {
	URL      string
	Checksum string
}

func (e *ErrBadChecksum) Error() string {
	return fmt.Sprintf("%s returned invalid sha1 %q", e.URL, e.Checksum)
}

// Resolver completes library entries from their maven repository
// without downloading the jars. Size comes from a HEAD request,
// the checksum from the .sha1 sidecar every maven repository serves.
type Resolver struct {
	HTTP *http.Client
}

// Resolve fills in the downloads block of every unresolved library in
// the profile
func (r *Resolver) Resolve(ctx context.Context, p *profile.Profile) error {
	for _, library := range p.Libraries {
		if library.Downloads != nil {
			continue
		}
		if library.URL == "" {
			return errors.Errorf("library %s has no repository url", library.Name)
		}

		relPath, err := library.Path()
		if err != nil {
			return err
		}

		url := strings.TrimRight(library.URL, "/") + "/" + relPath

		size, err := r.remoteSize(ctx, url)
		if err != nil {
			return errors.Wrapf(err, "sizing %s", library.Name)
		}

		sha1, err := r.remoteSha1(ctx, url+".sha1")
		if err != nil {
			return errors.Wrapf(err, "fetching checksum of %s", library.Name)
		}

		library.Downloads = &profile.Downloads{
			Artifact: &profile.ArtifactDownload{
				Size: size,
				Sha1: sha1,
				Path: relPath,
				URL:  url,
			},
		}
	}
	return nil
}

func (r *Resolver) remoteSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}

	res, err := r.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, errors.Errorf("%s returned %s", url, res.Status)
	}
	if res.ContentLength < 0 {
		return 0, errors.Errorf("%s has no content length", url)
	}

	return res.ContentLength, nil
}

func (r *Resolver) remoteSha1(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	res, err := r.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("%s returned %s", url, res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	sha1 := strings.TrimSpace(string(data))
	if !isSha1(sha1) {
		return "", &ErrBadChecksum{URL: url, Checksum: truncate(sha1, 80)}
	}
	return sha1, nil
}

func isSha1(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
