package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
)

// sealedPrefix marks a field value as ciphertext.
const sealedPrefix = "enc:v1:"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

// ParseKey decodes a base64 AES-256 key as found in configuration.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes (AES-256), got %d", len(key))
	}
	return key, nil
}

type encryptionMiddleware struct {
	next   ports.ProfileStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts the sensitive
// profile fields (location and health conditions) with AES-GCM before they
// reach the underlying store. Other fields stay queryable in plain text.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256)", i)
		}
	}
	return func(next ports.ProfileStore) ports.ProfileStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, userID string, profile *domain.UserProfile) error {
	// Never mutate the caller's copy
	sealed := profile.Clone()

	var err error
	if sealed.Location, err = m.seal(sealed.Location); err != nil {
		return fmt.Errorf("failed to encrypt profile: %w", err)
	}
	for i, c := range sealed.HealthConditions {
		if sealed.HealthConditions[i], err = m.seal(c); err != nil {
			return fmt.Errorf("failed to encrypt profile: %w", err)
		}
	}

	return m.next.Save(ctx, userID, sealed)
}

func (m *encryptionMiddleware) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := m.next.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.Location, err = m.open(profile.Location); err != nil {
		return nil, fmt.Errorf("failed to decrypt profile: %w", err)
	}
	for i, c := range profile.HealthConditions {
		if profile.HealthConditions[i], err = m.open(c); err != nil {
			return nil, fmt.Errorf("failed to decrypt profile: %w", err)
		}
	}
	return profile, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, userID string) error {
	return m.next.Delete(ctx, userID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *encryptionMiddleware) seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	ciphertext, err := encrypt([]byte(plain), m.config.ActiveKey)
	if err != nil {
		return "", err
	}
	return sealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// open decrypts a sealed value. Values written before encryption was enabled
// carry no prefix and are returned unchanged.
func (m *encryptionMiddleware) open(value string) (string, error) {
	encoded, ok := strings.CutPrefix(value, sealedPrefix)
	if !ok {
		return value, nil
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}
	plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
