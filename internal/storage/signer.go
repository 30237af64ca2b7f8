package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Las URLs de descarga valen 15 minutos y no se cachean: cada pedido
// acuña una URL nueva.
const SignedURLTTL = 15 * time.Minute

type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign acuña una URL firmada para un objeto del file store. El nonce
// aleatorio hace que dos URLs para el mismo objeto nunca coincidan.
func (s *Signer) Sign(path string, ttl time.Duration) string {
	exp := time.Now().Add(ttl).Unix()
	nonce := uuid.NewString()
	sig := s.signature(path, exp, nonce)
	return fmt.Sprintf("/files/%s?exp=%d&nonce=%s&sig=%s", path, exp, nonce, sig)
}

func (s *Signer) signature(path string, exp int64, nonce string) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d|%s", path, exp, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify valida firma y vencimiento.
func (s *Signer) Verify(path string, exp int64, nonce, sig string) bool {
	if time.Now().Unix() > exp {
		return false
	}
	expected := s.signature(path, exp, nonce)
	return hmac.Equal([]byte(expected), []byte(sig))
}
