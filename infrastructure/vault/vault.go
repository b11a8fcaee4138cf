package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	keySalt   = "tracionar-salt"
	aad       = "tracionar"
	keyLength = 32
	ivLength  = 16
	tagLength = 16
)

var (
	ErrEmptySecret   = errors.New("vault: secret must not be empty")
	ErrInvalidFormat = errors.New("vault: invalid ciphertext format")
	ErrDecrypt       = errors.New("vault: unable to decrypt ciphertext")
)

// Vault cifra e decifra tokens de acesso
type Vault interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

// AESVault usa AES-256-GCM com chave derivada por scrypt.
// O blob tem o formato iv:tag:payload, todos em hexadecimal.
type AESVault struct {
	aead cipher.AEAD
}

func New(secret string) (*AESVault, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key, err := scrypt.Key([]byte(secret), []byte(keySalt), 16384, 8, 1, keyLength)
	if err != nil {
		return nil, fmt.Errorf("vault: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("vault: new cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, fmt.Errorf("vault: new gcm: %w", err)
	}

	return &AESVault{aead: aead}, nil
}

func (v *AESVault) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("vault: generate iv: %w", err)
	}

	sealed := v.aead.Seal(nil, iv, []byte(plaintext), []byte(aad))
	payload, tag := sealed[:len(sealed)-tagLength], sealed[len(sealed)-tagLength:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(payload),
	}, ":"), nil
}

func (v *AESVault) Decrypt(blob string) (string, error) {
	if blob == "" {
		return "", nil
	}

	iv, tag, payload, err := split(blob)
	if err != nil {
		return "", err
	}

	plaintext, err := v.aead.Open(nil, iv, append(payload, tag...), []byte(aad))
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// IsEncrypted verifica se o valor é um blob iv:tag:payload válido em hexadecimal
func IsEncrypted(value string) bool {
	_, _, _, err := split(value)
	return err == nil
}

func split(blob string) (iv, tag, payload []byte, err error) {
	parts := strings.Split(blob, ":")
	if len(parts) != 3 {
		return nil, nil, nil, ErrInvalidFormat
	}

	iv, err = hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivLength {
		return nil, nil, nil, ErrInvalidFormat
	}

	tag, err = hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagLength {
		return nil, nil, nil, ErrInvalidFormat
	}

	payload, err = hex.DecodeString(parts[2])
	if err != nil {
		return nil, nil, nil, ErrInvalidFormat
	}

	return iv, tag, payload, nil
}
