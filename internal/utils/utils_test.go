package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var payload = []byte(`{"length":0,"packages":[]}`)

func TestGzipRoundTrip(t *testing.T) {
	compressed, err := GzipCompress(payload)
	require.NoError(t, err)

	out, err := GzipDecompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompressor(t *testing.T) {
	gz, err := GzipCompress(payload)
	require.NoError(t, err)

	var zst bytes.Buffer
	zw, err := zstd.NewWriter(&zst)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	_, err = xw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	tests := map[string][]byte{
		"p10.json":     payload,
		"p10.json.gz":  gz,
		"p10.json.zst": zst.Bytes(),
		"p10.json.XZ":  xzBuf.Bytes(),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			r, err := Decompressor(name, bytes.NewReader(data))
			require.NoError(t, err)
			defer r.Close()

			out, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestDecompressorRejectsGarbage(t *testing.T) {
	_, err := Decompressor("p10.json.gz", bytes.NewReader([]byte("not gzip")))
	assert.Error(t, err)
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "report.json")
	require.NoError(t, WriteFile(path, payload, 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestModTime(t *testing.T) {
	dir := t.TempDir()

	_, exists, err := ModTime(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	path := filepath.Join(dir, "present")
	require.NoError(t, WriteFile(path, payload, 0644))
	mtime, exists, err := ModTime(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.WithinDuration(t, time.Now(), mtime, time.Minute)
}

func TestSHA256Sum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Sum(nil))
	assert.Len(t, SHA256Sum(payload), 64)
}
