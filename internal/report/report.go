// Package report renders diff results and writes them to the terminal or to
// (optionally signed) files.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ralt/pkgdiff/internal/diff"
	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/signer"
	"github.com/ralt/pkgdiff/internal/utils"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	bannerStart = "=============== RESULTS =============="
	bannerEnd   = "=============== END =============="
)

// Render encodes result in the given format
func Render(result *diff.Result, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case models.FormatJSON, "":
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
	case models.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(4)
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return buf.Bytes(), nil
}

// Print writes a rendered report between the result banners
func Print(w io.Writer, data []byte) error {
	if _, err := fmt.Fprintln(w, bannerStart); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, bannerEnd)
	return err
}

// Save writes a rendered report to path. With a signer, an armored detached
// signature is written next to it as path.asc.
func Save(path string, data []byte, s signer.Signer) error {
	if err := utils.WriteFile(path, data, 0644); err != nil {
		return &models.DiffError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write report: %w", err),
		}
	}
	logrus.Infof("Report written to %s (sha256 %s)", path, utils.SHA256Sum(data))

	if s == nil {
		return nil
	}

	signature, err := s.SignDetached(data)
	if err != nil {
		return &models.DiffError{
			Type: models.ErrSigning,
			Err:  fmt.Errorf("failed to sign report: %w", err),
		}
	}

	sigPath := path + ".asc"
	if err := utils.WriteFile(sigPath, signature, 0644); err != nil {
		return &models.DiffError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write %s: %w", sigPath, err),
		}
	}
	logrus.Infof("Report signed: %s", sigPath)

	return nil
}
