// Package aescbc encrypts report payloads for the grading website.
//
// The website expects AES-256-CBC with PKCS#7 padding and the IV sent as
// the first block. Legacy receivers are fed a constant zero IV, which makes
// equal plaintexts encrypt to equal ciphertexts under one key; WithRandomIV
// switches to a fresh IV per message for receivers that read it from the
// payload.
package aescbc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	KeySize   = 32
	BlockSize = aes.BlockSize
	IVSize    = BlockSize
)

var (
	ErrInvalidCiphertext = errors.New("ciphertext is not a whole number of blocks after the iv")
	ErrInvalidPadding    = errors.New("invalid pkcs#7 padding")
)

type Cipher struct {
	block  cipher.Block
	random io.Reader
}

type Option func(*Cipher)

// WithRandomIV draws a new IV for every message from r, or from
// crypto/rand when r is nil.
func WithRandomIV(r io.Reader) Option {
	return func(c *Cipher) {
		if r == nil {
			r = rand.Reader
		}
		c.random = r
	}
}

// NormalizeKey truncates key to KeySize bytes or pads it with zeros.
func NormalizeKey(key []byte) []byte {
	k := make([]byte, KeySize)
	copy(k, key)
	return k
}

func New(key []byte, opts ...Option) (*Cipher, error) {
	block, err := aes.NewCipher(NormalizeKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create aes cipher: %w", err)
	}
	c := &Cipher{block: block}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PaddedLen is the ciphertext size for n bytes of plaintext, without the IV.
func PaddedLen(n int) int {
	return n + BlockSize - n%BlockSize
}

// Encrypt returns IV || CBC(PKCS#7(plain)).
func (c *Cipher) Encrypt(plain []byte) ([]byte, error) {
	out := make([]byte, IVSize+PaddedLen(len(plain)))
	iv := out[:IVSize]
	if c.random != nil {
		if _, err := io.ReadFull(c.random, iv); err != nil {
			return nil, fmt.Errorf("failed to read iv: %w", err)
		}
	}

	body := out[IVSize:]
	copy(body, plain)
	pad := byte(len(body) - len(plain))
	for i := len(plain); i < len(body); i++ {
		body[i] = pad
	}
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(body, body)
	return out, nil
}

// Decrypt reverses Encrypt using the IV found in the first block.
func (c *Cipher) Decrypt(ct []byte) ([]byte, error) {
	if len(ct) < IVSize+BlockSize || (len(ct)-IVSize)%BlockSize != 0 {
		return nil, ErrInvalidCiphertext
	}
	iv := ct[:IVSize]
	body := bytes.Clone(ct[IVSize:])
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(body, body)

	pad := int(body[len(body)-1])
	if pad == 0 || pad > BlockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range body[len(body)-pad:] {
		if int(b) != pad {
			return nil, ErrInvalidPadding
		}
	}
	return body[:len(body)-pad], nil
}

// Encrypt encrypts plain under key with the legacy zero IV.
func Encrypt(key, plain []byte) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(plain)
}

func Decrypt(key, ct []byte) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(ct)
}
