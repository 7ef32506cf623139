// Package crypto provides the field-level cipher used for PII columns.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecrypt is returned when a stored value cannot be opened with the
// configured key. Callers must not treat it as an empty value.
var ErrDecrypt = errors.New("crypto: cannot decrypt field value")

// FieldCipher seals short strings with XChaCha20-Poly1305. The stored form is
// base64(nonce || ciphertext || tag).
type FieldCipher struct {
	key      []byte
	indexKey []byte
}

// NewFieldCipher creates a cipher from a 32-byte key
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("crypto: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte("blind-index"))

	return &FieldCipher{
		key:      append([]byte(nil), key...),
		indexKey: mac.Sum(nil),
	}, nil
}

// Encrypt seals plaintext. The empty string stays empty so optional columns
// keep their "not provided" meaning.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto: read nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt
func (c *FieldCipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", fmt.Errorf("%w: value too short", ErrDecrypt)
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plain), nil
}

// BlindIndex returns a deterministic keyed hash of value used for equality
// lookups on encrypted columns. Case and surrounding spaces are ignored.
func (c *FieldCipher) BlindIndex(value string) string {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return ""
	}
	mac := hmac.New(sha256.New, c.indexKey)
	mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil))
}
