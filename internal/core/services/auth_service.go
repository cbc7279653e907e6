package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/daftar-app/daftar/internal/core/domain"
)

// OwnerSubject is the token subject of the single local user.
const OwnerSubject = "owner"

type AuthService struct {
	passphraseHash []byte
	tokens         *TokenService
}

// NewAuthService takes the bcrypt hash of the owner's passphrase. An empty
// hash disables login.
func NewAuthService(passphraseHash string, tokens *TokenService) *AuthService {
	return &AuthService{
		passphraseHash: []byte(passphraseHash),
		tokens:         tokens,
	}
}

func (s *AuthService) Enabled() bool {
	return len(s.passphraseHash) > 0 && s.tokens != nil
}

// Login checks the passphrase and issues a token for the owner.
func (s *AuthService) Login(passphrase string) (string, error) {
	if !s.Enabled() {
		return "", domain.ErrUnauthorized
	}

	err := bcrypt.CompareHashAndPassword(s.passphraseHash, []byte(passphrase))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth service: failed to compare hash: %w", err)
	}

	return s.tokens.GenerateToken(OwnerSubject)
}

// HashPassphrase produces a value suitable for AUTH_PASSPHRASE_HASH.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
