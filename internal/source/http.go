package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/klauspost/compress/gzip"
	"github.com/ralt/pkgdiff/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultAPIURL is the ALT Linux repository database API
	DefaultAPIURL = "https://rdb.altlinux.org/api/"

	exportMethod = "export/branch_binary_packages/"
)

// HTTPSource fetches branch exports from the repository database API
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a source for the API at baseURL.
// A zero timeout leaves requests bounded only by the context.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout

	return &HTTPSource{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		client:  client,
	}
}

// URL returns the export endpoint for branch
func (s *HTTPSource) URL(branch string) string {
	return s.baseURL + exportMethod + url.PathEscape(branch)
}

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context, branch string) (*models.PackageList, error) {
	endpoint := s.URL(branch)
	logrus.Infof("Fetching packages of branch %s", branch)
	logrus.Debugf("GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &models.DiffError{Type: models.ErrFetch, Branch: branch, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: branch,
			Err:    fmt.Errorf("failed to connect to %s: %w", s.baseURL, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: branch,
			Err:    fmt.Errorf("got %d status code from %s", resp.StatusCode, endpoint),
		}
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &models.DiffError{
				Type:   models.ErrDecode,
				Branch: branch,
				Err:    fmt.Errorf("failed to open gzip body: %w", err),
			}
		}
		defer gz.Close()
		body = gz
	}

	return decodeList(body, branch)
}
