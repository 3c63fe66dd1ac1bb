package security

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	key, err := LoadKeyFromBase64(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	return key
}

func TestLoadKeyFromBase64(t *testing.T) {
	_, err := LoadKeyFromBase64("not base64!!")
	assert.Error(t, err)

	// Wrong length decodes but is rejected.
	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err = LoadKeyFromBase64(short)
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey(t)

	enc, err := EncryptAESGCM(key, "shpat_example_token")
	require.NoError(t, err)
	assert.NotContains(t, enc, "shpat_example_token")

	dec, err := DecryptAESGCM(key, enc)
	require.NoError(t, err)
	assert.Equal(t, "shpat_example_token", dec)

	// The nonce is random, so a second encrypt differs but still decrypts.
	enc2, err := EncryptAESGCM(key, "shpat_example_token")
	require.NoError(t, err)
	assert.NotEqual(t, enc, enc2)
}

func TestDecryptRejectsTampering(t *testing.T) {
	key := testKey(t)

	enc, err := EncryptAESGCM(key, "secret")
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(enc)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	_, err = DecryptAESGCM(key, base64.RawURLEncoding.EncodeToString(raw))
	assert.Error(t, err)

	_, err = DecryptAESGCM(key, "AAAA")
	assert.Error(t, err)
}
