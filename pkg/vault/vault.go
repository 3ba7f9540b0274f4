// Package vault encrypts provider API keys at rest and implements the
// masked/clear/set update semantics used by the admin settings surface.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// MaskedSentinel is returned to clients in place of a stored secret.
// Receiving it back on update means "keep the stored value".
const MaskedSentinel = "***masked***"

const (
	keySize   = 32
	nonceSize = 12
	tagSize   = 16
	hkdfInfo  = "portfolio-ai-be/provider-keys/v1"
)

// Codec encrypts and decrypts provider secrets.
// Decrypt never fails loudly: any problem yields nil.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(stored *string) *string
}

// Vault is an AES-256-GCM Codec. Ciphertext format is hex(nonce):hex(tag):hex(data).
type Vault struct {
	aead cipher.AEAD
}

// New derives the AES key from secret with HKDF-SHA256
func New(secret string) (*Vault, error) {
	if secret == "" {
		return nil, errors.New("vault: encryption secret is empty")
	}

	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("vault: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("vault: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("vault: create gcm: %w", err)
	}

	return &Vault{aead: aead}, nil
}

func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("vault: generate nonce: %w", err)
	}

	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	data, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		hex.EncodeToString(nonce),
		hex.EncodeToString(tag),
		hex.EncodeToString(data),
	}, ":"), nil
}

func (v *Vault) Decrypt(stored *string) *string {
	if stored == nil || *stored == "" {
		return nil
	}

	parts := strings.Split(*stored, ":")
	if len(parts) != 3 {
		return nil
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return nil
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return nil
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil
	}

	plain, err := v.aead.Open(nil, nonce, append(data, tag...), nil)
	if err != nil {
		return nil
	}

	result := string(plain)
	return &result
}

// Mask hides a stored secret behind MaskedSentinel. Absent secrets stay nil.
func Mask(stored *string) *string {
	if stored == nil || *stored == "" {
		return nil
	}
	masked := MaskedSentinel
	return &masked
}
