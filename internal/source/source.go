// Package source fetches branch package lists from the export API, from saved
// export files, or from directories of RPM files.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Branch argument prefixes selecting a local source
const (
	FilePrefix   = "file:"
	RPMDirPrefix = "rpmdir:"
)

// Source interface for retrieving the package list of a branch
type Source interface {
	// Fetch returns every binary package of branch. Failures are fatal and
	// are never retried.
	Fetch(ctx context.Context, branch string) (*models.PackageList, error)
}

// Options configures the remote source built by Resolver
type Options struct {
	APIURL   string
	Timeout  time.Duration
	CacheDir string
	CacheTTL time.Duration
}

// Resolver picks a Source for each branch argument
type Resolver struct {
	remote Source
	files  Source
	rpmdir Source
}

// NewResolver creates a resolver; the remote source is cached when opts.CacheDir is set
func NewResolver(opts Options) *Resolver {
	var remote Source = NewHTTPSource(opts.APIURL, opts.Timeout)
	if opts.CacheDir != "" {
		remote = NewCachedSource(remote, opts.CacheDir, opts.CacheTTL)
	}

	return &Resolver{
		remote: remote,
		files:  NewFileSource(),
		rpmdir: NewRPMDirSource(),
	}
}

// Fetch implements Source by dispatching on the branch prefix:
// "file:PATH" reads a saved export, "rpmdir:DIR" scans RPM files, anything
// else is a branch name for the remote API.
func (r *Resolver) Fetch(ctx context.Context, branch string) (*models.PackageList, error) {
	switch {
	case strings.HasPrefix(branch, FilePrefix):
		return r.files.Fetch(ctx, strings.TrimPrefix(branch, FilePrefix))
	case strings.HasPrefix(branch, RPMDirPrefix):
		return r.rpmdir.Fetch(ctx, strings.TrimPrefix(branch, RPMDirPrefix))
	default:
		return r.remote.Fetch(ctx, branch)
	}
}

// FetchPair fetches two branches concurrently. The first failure cancels the
// other fetch and is returned.
func FetchPair(ctx context.Context, src Source, branch1, branch2 string) (*models.PackageList, *models.PackageList, error) {
	var list1, list2 *models.PackageList

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list1, err = src.Fetch(gctx, branch1)
		return err
	})
	g.Go(func() error {
		var err error
		list2, err = src.Fetch(gctx, branch2)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return list1, list2, nil
}

// decodeList parses an export body
func decodeList(r io.Reader, branch string) (*models.PackageList, error) {
	var list models.PackageList
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		var diffErr *models.DiffError
		if errors.As(err, &diffErr) {
			diffErr.Branch = branch
			return nil, diffErr
		}
		return nil, &models.DiffError{
			Type:   models.ErrDecode,
			Branch: branch,
			Err:    fmt.Errorf("failed to decode package list: %w", err),
		}
	}

	if list.Length != len(list.Packages) {
		logrus.Warnf("Branch %s declares %d packages but lists %d", branch, list.Length, len(list.Packages))
	}
	logrus.Debugf("Loaded %d packages for branch %s", len(list.Packages), branch)

	return &list, nil
}
