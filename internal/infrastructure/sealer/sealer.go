// Package sealer encrypts session snapshots before they reach durable
// storage. A snapshot holds the visitor's bearer token, so Redis and MongoDB
// only ever see ciphertext.
package sealer

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

const keyInfo = "mentawai-shores session snapshot v1"

var (
	ErrEmptySecret = errors.New("sealer: empty secret")
	ErrInvalid     = errors.New("sealer: message authentication failed")
)

// Sealer is safe for concurrent use.
type Sealer struct {
	aead cipher.AEAD
}

// New derives an XChaCha20-Poly1305 key from secret with HKDF-SHA256.
func New(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("sealer: derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("sealer: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal returns nonce || ciphertext.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plain)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("sealer: nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < s.aead.NonceSize() {
		return nil, ErrInvalid
	}
	nonce, box := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, box, nil)
	if err != nil {
		return nil, ErrInvalid
	}
	return plain, nil
}

// SealSession encodes the persisted triple as JSON and seals it.
func (s *Sealer) SealSession(sess domain.Session) ([]byte, error) {
	raw, err := json.Marshal(sess.Normalize())
	if err != nil {
		return nil, fmt.Errorf("sealer: encode session: %w", err)
	}
	return s.Seal(raw)
}

// OpenSession reverses SealSession. The result is normalised, so a tampered
// or outdated flag never survives a reload.
func (s *Sealer) OpenSession(sealed []byte) (domain.Session, error) {
	raw, err := s.Open(sealed)
	if err != nil {
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("sealer: decode session: %w", err)
	}
	return sess.Normalize(), nil
}
