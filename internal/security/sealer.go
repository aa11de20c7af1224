package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	keySize    = 32
	iterations = 100000
)

// sealedMagic prefixes every sealed payload so plain files are detected.
var sealedMagic = []byte("OMSSEAL1")

// ErrNotSealed is returned by Open when the payload carries no seal header.
var ErrNotSealed = errors.New("payload is not sealed")

// Sealer encrypts small payloads at rest with AES-256-GCM.
//
// The key is derived from a passphrase with PBKDF2-SHA256 and a random
// per-payload salt, so sealing the same bytes twice yields different output.
type Sealer struct {
	passphrase []byte
}

// NewSealer creates a sealer for the given passphrase
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	return &Sealer{passphrase: []byte(passphrase)}, nil
}

// Seal encrypts plaintext.
// Layout: magic | salt | nonce | ciphertext+tag.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(sealedMagic)+saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, sealedMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, sealedMagic), nil
}

// Open decrypts a payload produced by Seal
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}
	data := sealed[len(sealedMagic):]
	if len(data) < saltSize {
		return nil, fmt.Errorf("sealed payload too short")
	}

	salt, rest := data[:saltSize], data[saltSize:]
	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return nil, fmt.Errorf("sealed payload too short")
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, sealedMagic)
	if err != nil {
		return nil, fmt.Errorf("failed to open sealed payload (wrong passphrase?): %w", err)
	}
	return plaintext, nil
}

func (s *Sealer) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(s.passphrase, salt, iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// IsSealed reports whether data starts with the seal header
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealedMagic)
}
