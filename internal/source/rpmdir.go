package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/sassoftware/go-rpmutils"
	"github.com/sirupsen/logrus"
)

// RPM packages start with 0xED 0xAB 0xEE 0xDB
var rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

// RPMDirSource builds a package list from the RPM files under a directory;
// the branch is the directory path.
type RPMDirSource struct{}

// NewRPMDirSource creates a new RPM directory source
func NewRPMDirSource() *RPMDirSource {
	return &RPMDirSource{}
}

// Fetch implements Source. Files are visited in lexical order; a file that
// looks like an RPM but cannot be parsed aborts the scan.
func (s *RPMDirSource) Fetch(ctx context.Context, dir string) (*models.PackageList, error) {
	var packages []models.Package

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		isRPM, err := isRPMFile(path)
		if err != nil {
			logrus.Warnf("Failed to detect type for %s: %v", path, err)
			return nil
		}
		if !isRPM {
			return nil
		}

		pkg, err := parseRPM(path)
		if err != nil {
			return &models.DiffError{
				Type:   models.ErrInvalidRecord,
				Branch: dir,
				Err:    fmt.Errorf("failed to parse %s: %w", path, err),
			}
		}

		logrus.Debugf("Found RPM package: %s", pkg)
		packages = append(packages, *pkg)
		return nil
	})
	if err != nil {
		if _, ok := err.(*models.DiffError); ok {
			return nil, err
		}
		return nil, &models.DiffError{
			Type:   models.ErrFileOp,
			Branch: dir,
			Err:    fmt.Errorf("failed to scan directory: %w", err),
		}
	}

	logrus.Infof("Found %d packages in %s", len(packages), dir)
	return &models.PackageList{Length: len(packages), Packages: packages}, nil
}

// isRPMFile checks the extension and the lead magic bytes
func isRPMFile(path string) (bool, error) {
	if filepath.Ext(path) != ".rpm" {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(rpmMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return false, nil
	}
	return bytes.Equal(header, rpmMagic), nil
}

// parseRPM reads the header of an RPM file into a package
func parseRPM(path string) (*models.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	pkg := &models.Package{
		Name:    getStringTag(rpm, rpmutils.NAME),
		Arch:    getStringTag(rpm, rpmutils.ARCH),
		Version: getStringTag(rpm, rpmutils.VERSION),
		Release: getStringTag(rpm, rpmutils.RELEASE),
		Extra:   make(map[string]json.RawMessage),
	}
	if pkg.Name == "" || pkg.Arch == "" {
		return nil, fmt.Errorf("RPM header has no name or arch")
	}

	// Epoch is only set when the header carries the tag
	if rpm.Header.HasTag(rpmutils.EPOCH) {
		epochs, err := rpm.Header.GetInts(rpmutils.EPOCH)
		if err == nil && len(epochs) > 0 {
			pkg.Epoch = models.IntPtr(epochs[0])
		}
	}

	// Add additional metadata
	extra := map[string]interface{}{
		"summary":   getStringTag(rpm, rpmutils.SUMMARY),
		"source":    getStringTag(rpm, rpmutils.SOURCERPM),
		"buildtime": getIntTag(rpm, rpmutils.BUILDTIME),
		"filename":  filepath.Base(path),
	}
	for k, v := range extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		pkg.Extra[k] = raw
	}

	return pkg, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.GetStrings(tag)
	if err != nil || len(val) == 0 {
		return ""
	}
	return val[0]
}

// getIntTag safely gets an integer tag from RPM
func getIntTag(rpm *rpmutils.Rpm, tag int) int64 {
	val, err := rpm.Header.GetInts(tag)
	if err != nil || len(val) == 0 {
		return 0
	}
	return int64(val[0])
}
