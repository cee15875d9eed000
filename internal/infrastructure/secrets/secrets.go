// Package secrets encrypts credentials at rest (delegated-storage refresh
// tokens). AES-256-GCM with a random 16-byte nonce per call; the key is
// derived from the operator-supplied secret with scrypt and a fixed
// application salt. Wire format: base64(nonce ‖ ciphertext ‖ tag).
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/crypto/scrypt"

	"finance-tracker-api/internal/application/apperrors"
)

const (
	nonceSize = 16
	keySize   = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Changing the salt invalidates every stored credential.
var keySalt = []byte("finance-tracker-secrets-v1")

type Encryptor struct {
	gcm cipher.AEAD
}

// New derives the AES-256 key and builds the AEAD. An empty operator secret
// is a startup error in production; in other environments an ephemeral
// random key is generated, so stored secrets do not survive a restart.
func New(logger *zap.Logger, operatorSecret string, production bool) (*Encryptor, error) {
	var key []byte

	if operatorSecret == "" {
		if production {
			return nil, fmt.Errorf("SECRETS_ENCRYPTION_KEY is required in production")
		}
		key = make([]byte, keySize)
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, fmt.Errorf("generate ephemeral key: %w", err)
		}
		logger.Warn("no encryption secret configured, using ephemeral key; stored credentials will not survive a restart")
	} else {
		var err error
		key, err = scrypt.Key([]byte(operatorSecret), keySalt, scryptN, scryptR, scryptP, keySize)
		if err != nil {
			return nil, fmt.Errorf("derive encryption key: %w", err)
		}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Encryptor{gcm: gcm}, nil
}

func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: empty plaintext", apperrors.ErrInvalidInput)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends ciphertext+tag to the nonce.
	sealed := e.gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *Encryptor) Decrypt(blob string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: malformed base64 blob", apperrors.ErrInvalidInput)
	}
	if len(sealed) < nonceSize+e.gcm.Overhead() {
		return "", fmt.Errorf("%w: blob too short", apperrors.ErrInvalidInput)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt secret: %w", err)
	}

	return string(plaintext), nil
}
