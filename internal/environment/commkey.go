package environment

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CommKeyPath is where the shared secret lives below RAILGUN_ROOT.
func CommKeyPath(railgunRoot string) string {
	return filepath.Join(railgunRoot, "keys", "commKey.txt")
}

// LoadCommKey reads the first line of the comm key file, without its line
// terminator.
func LoadCommKey(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load comm key: %w", err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot load comm key: %w", err)
	}
	key := bytes.TrimRight(line, "\r\n")
	if len(key) == 0 {
		return nil, fmt.Errorf("comm key file %s is empty", path)
	}
	return key, nil
}

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MakeKey returns n characters drawn uniformly from letters and digits.
func MakeKey(rnd io.Reader, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("key size must be positive, got %d", n)
	}
	// largest multiple of the alphabet size that fits in a byte
	limit := byte(256 - 256%len(keyAlphabet))
	key := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(key) < n {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= limit || len(key) == n {
				continue
			}
			key = append(key, keyAlphabet[int(b)%len(keyAlphabet)])
		}
	}
	return string(key), nil
}

// WriteCommKey creates a new random key file at path, creating parent
// directories as needed. An existing file is never overwritten.
func WriteCommKey(path string, size int) error {
	key, err := MakeKey(rand.Reader, size)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := fmt.Fprintln(f, key); err != nil {
		f.Close()
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return f.Close()
}
