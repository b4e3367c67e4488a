package signer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	entity, err := openpgp.NewEntity("pkgdiff test", "", "test@example.org", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.SerializePrivate(w, nil))
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "key.asc")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestGPGSignerDetachedSignatureVerifies(t *testing.T) {
	s, err := NewGPGSigner(writeTestKey(t), "")
	require.NoError(t, err)

	report := []byte(`{"count":0,"packages":{}}`)
	sig, err := s.SignDetached(report)
	require.NoError(t, err)
	assert.Contains(t, string(sig), "BEGIN PGP SIGNATURE")

	pub, err := s.GetPublicKey()
	require.NoError(t, err)
	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(pub))
	require.NoError(t, err)

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(report), bytes.NewReader(sig), nil)
	assert.NoError(t, err)

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader([]byte("tampered")), bytes.NewReader(sig), nil)
	assert.Error(t, err)
}

func TestNewGPGSignerErrors(t *testing.T) {
	_, err := NewGPGSigner("", "")
	assert.Error(t, err)

	_, err = NewGPGSigner(filepath.Join(t.TempDir(), "missing.asc"), "")
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.asc")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0600))
	_, err = NewGPGSigner(garbage, "")
	assert.Error(t, err)
}
