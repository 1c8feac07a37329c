// Package secret provides authenticated symmetric encryption for
// operator-supplied secrets persisted in configuration rows, such as the
// SMTP password.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	keySize   = 32
	nonceSize = 12
	tagSize   = 16
)

// ErrAuthenticationFailed is returned by Decrypt when the GCM tag does not
// verify: the ciphertext was tampered with or a different key was used.
var ErrAuthenticationFailed = errors.New("secret: authentication failed")

// Cipher encrypts and decrypts short secrets with AES-256-GCM. It holds no
// mutable state and is safe for concurrent use with a shared key.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher constructs a Cipher over a 256-bit key. Any other key length is
// a configuration fault and fails construction.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("secret: key must be %d bytes, got %d", keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("secret: failed to init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secret: failed to init gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals the plaintext under a fresh random 96-bit nonce and returns
// base64(nonce || tag || ciphertext). Two calls with the same plaintext never
// produce the same output.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secret: failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext||tag; the stored layout is nonce||tag||ciphertext.
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	body := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	out := make([]byte, 0, nonceSize+tagSize+len(body))
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, body...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. A tag verification failure surfaces as
// ErrAuthenticationFailed and is never silently swallowed.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("secret: ciphertext is not valid base64: %w", err)
	}
	if len(raw) < nonceSize+tagSize {
		return "", fmt.Errorf("secret: ciphertext too short: %d bytes", len(raw))
	}

	nonce := raw[:nonceSize]
	tag := raw[nonceSize : nonceSize+tagSize]
	body := raw[nonceSize+tagSize:]

	sealed := make([]byte, 0, len(body)+tagSize)
	sealed = append(sealed, body...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}

	return string(plaintext), nil
}
