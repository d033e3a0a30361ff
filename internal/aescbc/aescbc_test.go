package aescbc_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"testing"

	"github.com/programme-lv/reporter/internal/aescbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors produced with `openssl enc -aes-256-cbc` and a zero IV.
func TestEncryptKnownAnswers(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		plain string
		want  string
	}{
		{"short key is zero padded", "secret", "hello", "210ca09eb642ea37730c780a7e4304ec"},
		{
			"long key is truncated",
			"0123456789abcdef0123456789abcdefEXTRA",
			"0123456789abcdef",
			"f83c9a60dc0cdb98219f79d6d5db16351856725cf4114ab4cc113d01a31db94b",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ct, err := aescbc.Encrypt([]byte(tc.key), []byte(tc.plain))
			require.NoError(t, err)
			assert.Equal(t, make([]byte, aescbc.IVSize), ct[:aescbc.IVSize])
			assert.Equal(t, tc.want, hex.EncodeToString(ct[aescbc.IVSize:]))
		})
	}
}

func TestEncryptLengthAndDeterminism(t *testing.T) {
	c, err := aescbc.New([]byte("commkey"))
	require.NoError(t, err)

	for n := 0; n <= 3*aescbc.BlockSize; n++ {
		plain := bytes.Repeat([]byte{'x'}, n)
		first, err := c.Encrypt(plain)
		require.NoError(t, err)
		second, err := c.Encrypt(plain)
		require.NoError(t, err)

		assert.Len(t, first, 16+aescbc.PaddedLen(n))
		assert.Zero(t, (len(first)-16)%aescbc.BlockSize)
		assert.Equal(t, make([]byte, 16), first[:16])
		assert.Equal(t, first, second)
	}
}

func TestPaddedLen(t *testing.T) {
	assert.Equal(t, 16, aescbc.PaddedLen(0))
	assert.Equal(t, 16, aescbc.PaddedLen(15))
	assert.Equal(t, 32, aescbc.PaddedLen(16))
	assert.Equal(t, 48, aescbc.PaddedLen(40))
}

func TestDecryptRoundTrip(t *testing.T) {
	c, err := aescbc.New([]byte("k"))
	require.NoError(t, err)

	plain := []byte(`{"uuid": "x", "accepted": false}`)
	ct, err := c.Encrypt(plain)
	require.NoError(t, err)

	got, err := c.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestRandomIV(t *testing.T) {
	legacy, err := aescbc.New([]byte("k"))
	require.NoError(t, err)
	c, err := aescbc.New([]byte("k"), aescbc.WithRandomIV(nil))
	require.NoError(t, err)

	plain := []byte("same plaintext")
	a, err := c.Encrypt(plain)
	require.NoError(t, err)
	b, err := c.Encrypt(plain)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, make([]byte, aescbc.IVSize), a[:aescbc.IVSize])
	assert.NotEqual(t, a[:aescbc.IVSize], b[:aescbc.IVSize])
	assert.Len(t, a, aescbc.IVSize+aescbc.PaddedLen(len(plain)))

	got, err := legacy.Decrypt(a)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	got, err = c.Decrypt(b)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestRandomIVFromReader(t *testing.T) {
	iv := bytes.Repeat([]byte{0xa5}, aescbc.IVSize)
	c, err := aescbc.New([]byte("k"), aescbc.WithRandomIV(bytes.NewReader(iv)))
	require.NoError(t, err)

	ct, err := c.Encrypt([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, iv, ct[:aescbc.IVSize])

	_, err = c.Encrypt([]byte("hello"))
	assert.Error(t, err, "an exhausted IV source must fail encryption")
}

func TestDecryptRejectsMalformed(t *testing.T) {
	c, err := aescbc.New([]byte("k"))
	require.NoError(t, err)

	_, err = c.Decrypt(make([]byte, 16))
	assert.ErrorIs(t, err, aescbc.ErrInvalidCiphertext)

	_, err = c.Decrypt(make([]byte, 40))
	assert.ErrorIs(t, err, aescbc.ErrInvalidCiphertext)

	block, err := aes.NewCipher(aescbc.NormalizeKey([]byte("k")))
	require.NoError(t, err)
	ct := make([]byte, 32)
	copy(ct[16:], "fifteen bytes..\x00")
	cipher.NewCBCEncrypter(block, ct[:16]).CryptBlocks(ct[16:], ct[16:])
	_, err = c.Decrypt(ct)
	assert.ErrorIs(t, err, aescbc.ErrInvalidPadding)
}
