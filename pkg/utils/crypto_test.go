package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	encrypted, err := Encrypt([]byte("twitter-access-token"), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, "twitter-access-token", encrypted)

	decrypted, err := Decrypt(encrypted, testKey)
	require.NoError(t, err)
	assert.Equal(t, "twitter-access-token", decrypted)
}

func TestEncrypt_NonDeterministicNonce(t *testing.T) {
	first, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)
	second, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecrypt_WrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	otherKey := []byte("fedcba9876543210fedcba9876543210")
	_, err = Decrypt(encrypted, otherKey)
	assert.Error(t, err)
}

func TestDecrypt_CiphertextTooShort(t *testing.T) {
	short := base64.StdEncoding.EncodeToString([]byte("abc"))
	_, err := Decrypt(short, testKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestDecrypt_InvalidBase64(t *testing.T) {
	_, err := Decrypt("not base64 !!!", testKey)
	assert.Error(t, err)
}

func TestEncrypt_InvalidKeyLength(t *testing.T) {
	_, err := Encrypt([]byte("secret"), []byte("short"))
	assert.Error(t, err)
}
