package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// destinationLabel is bound into every seal as additional data, so a
// ciphertext lifted from another column or system fails authentication
// here even under the same key.
const destinationLabel = "cashout:destination:v1"

// DestinationCipherImpl implements ports.DestinationCipher with
// AES-256-GCM. Payout destinations are PII and are stored encrypted at
// rest; the plaintext only exists in memory during a send attempt.
type DestinationCipherImpl struct {
	aead cipher.AEAD
}

// NewDestinationCipher builds the cipher from a 64-character hex key
// (32 bytes, AES-256). The AEAD is constructed once; sealing is cheap
// per call.
func NewDestinationCipher(hexKey string) (*DestinationCipherImpl, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("destination cipher key is not hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("destination cipher key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("destination cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("destination cipher: %w", err)
	}
	return &DestinationCipherImpl{aead: aead}, nil
}

// EncryptDestination seals a payout destination for storage. The output is
// base64(nonce || ciphertext || tag); a fresh random nonce is drawn per
// destination.
func (c *DestinationCipherImpl) EncryptDestination(destination string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("destination nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(destination), []byte(destinationLabel))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptDestination opens a stored destination for a send attempt.
func (c *DestinationCipherImpl) DecryptDestination(encrypted string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("stored destination is not base64: %w", err)
	}
	n := c.aead.NonceSize()
	if len(raw) <= n {
		return "", fmt.Errorf("stored destination truncated: %d bytes", len(raw))
	}
	destination, err := c.aead.Open(nil, raw[:n], raw[n:], []byte(destinationLabel))
	if err != nil {
		return "", fmt.Errorf("open destination: %w", err)
	}
	return string(destination), nil
}
