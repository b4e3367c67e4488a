package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/utils"
	"github.com/sirupsen/logrus"
)

// FileSource reads saved export bodies; the branch is the file path.
// .gz, .zst and .xz files are decompressed on the fly.
type FileSource struct{}

// NewFileSource creates a new file source
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Fetch implements Source
func (s *FileSource) Fetch(ctx context.Context, path string) (*models.PackageList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.Infof("Reading packages from %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DiffError{Type: models.ErrFileOp, Branch: path, Err: err}
	}
	defer f.Close()

	r, err := utils.Decompressor(path, f)
	if err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrDecode,
			Branch: path,
			Err:    fmt.Errorf("failed to decompress: %w", err),
		}
	}
	defer r.Close()

	return decodeList(r, path)
}
