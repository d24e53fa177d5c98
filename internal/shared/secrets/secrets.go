// Package secrets wraps provider API keys for storage at rest.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMissingSecret = errors.New("encryption secret not configured")
	ErrMalformed     = errors.New("malformed ciphertext")
)

// Box encrypts and decrypts short secrets with AES-256-CBC.
// The 32-byte key is derived from the configured secret via SHA-256.
type Box struct {
	key [32]byte
}

// NewBox derives a Box from the given secret string.
func NewBox(secret string) (*Box, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &Box{key: sha256.Sum256([]byte(secret))}, nil
}

// Encrypt returns base64(iv || CBC(pkcs7(plaintext))).
func (b *Box) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(b.key[:])
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. It fails on truncated input or bad padding.
func (b *Box) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrMalformed
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", ErrMalformed
	}

	block, err := aes.NewCipher(b.key[:])
	if err != nil {
		return "", err
	}

	iv := raw[:aes.BlockSize]
	body := make([]byte, len(raw)-aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(body, raw[aes.BlockSize:])

	plain, err := pkcs7Unpad(body, aes.BlockSize)
	if err != nil {
		return "", ErrMalformed
	}
	return string(plain), nil
}

// Mask renders a key for display: first 5 and last 4 characters kept.
func Mask(key string) string {
	if len(key) < 12 {
		return "****"
	}
	return key[:5] + "..." + key[len(key)-4:]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
