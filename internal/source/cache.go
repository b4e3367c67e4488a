package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/utils"
	"github.com/sirupsen/logrus"
)

// CachedSource keeps gzip-compressed copies of fetched branches on disk
type CachedSource struct {
	next Source
	dir  string
	ttl  time.Duration
	now  func() time.Time
}

// NewCachedSource wraps next with a cache in dir. Entries older than ttl are
// refetched; a zero ttl keeps entries forever.
func NewCachedSource(next Source, dir string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next: next,
		dir:  dir,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Path returns the cache file of branch
func (c *CachedSource) Path(branch string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(branch)
	return filepath.Join(c.dir, name+".json.gz")
}

// Fetch implements Source
func (c *CachedSource) Fetch(ctx context.Context, branch string) (*models.PackageList, error) {
	path := c.Path(branch)

	list, err := c.load(path, branch)
	if err != nil {
		logrus.Warnf("Ignoring cache entry %s: %v", path, err)
	}
	if list != nil {
		logrus.Infof("Using cached packages of branch %s", branch)
		return list, nil
	}

	list, err = c.next.Fetch(ctx, branch)
	if err != nil {
		return nil, err
	}

	if err := c.store(path, list); err != nil {
		logrus.Warnf("Failed to cache branch %s: %v", branch, err)
	}
	return list, nil
}

// load returns nil without error when there is no fresh entry
func (c *CachedSource) load(path, branch string) (*models.PackageList, error) {
	mtime, exists, err := utils.ModTime(path)
	if err != nil || !exists {
		return nil, err
	}
	if c.ttl > 0 && c.now().Sub(mtime) > c.ttl {
		logrus.Debugf("Cache entry %s expired", path)
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	body, err := utils.GzipDecompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return decodeList(bytes.NewReader(body), branch)
}

func (c *CachedSource) store(path string, list *models.PackageList) error {
	body, err := json.Marshal(list)
	if err != nil {
		return err
	}
	compressed, err := utils.GzipCompress(body)
	if err != nil {
		return err
	}

	logrus.Debugf("Caching %d packages in %s", len(list.Packages), path)
	return utils.WriteFile(path, compressed, 0644)
}
