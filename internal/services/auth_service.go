package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier accepts requests carrying the shared admin token.
type TokenVerifier struct {
	token string
}

// NewTokenVerifier creates a new TokenVerifier
func NewTokenVerifier(token string) *TokenVerifier {
	return &TokenVerifier{token: token}
}

// Verify checks creds.Token against the configured token.
func (v *TokenVerifier) Verify(creds Credentials) (string, error) {
	if v.token == "" {
		return "", models.NewError(models.ErrServiceUnavailable, "Admin token not configured")
	}
	if creds.Token == "" || subtle.ConstantTimeCompare([]byte(creds.Token), []byte(v.token)) != 1 {
		return "", models.NewError(models.ErrUnauthorized, "Unauthorized")
	}
	return v.token, nil
}

type adminAccount struct {
	email string
	hash  []byte
}

// CredentialVerifier accepts any configured email/password pair and hands out the shared token.
//
// The i-th email pairs with the i-th password; emails beyond the last password pair with
// the first one. Passwords are kept only as bcrypt hashes of their SHA-256 digest, so
// comparison stays exact for passwords longer than bcrypt's 72-byte input limit.
type CredentialVerifier struct {
	token    string
	accounts []adminAccount
}

// NewCredentialVerifier hashes the configured passwords once. Empty lists are allowed; the
// verifier then rejects every login as not configured.
func NewCredentialVerifier(token string, emails, passwords []string, cost int) (*CredentialVerifier, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	v := &CredentialVerifier{token: token}
	if len(emails) == 0 || len(passwords) == 0 {
		return v, nil
	}

	hashes := make(map[int][]byte, len(passwords))
	for i, email := range emails {
		idx := i
		if idx >= len(passwords) {
			idx = 0
		}
		hash, ok := hashes[idx]
		if !ok {
			var err error
			hash, err = bcrypt.GenerateFromPassword(prehash(passwords[idx]), cost)
			if err != nil {
				return nil, fmt.Errorf("hash admin password: %w", err)
			}
			hashes[idx] = hash
		}
		v.accounts = append(v.accounts, adminAccount{email: email, hash: hash})
	}
	return v, nil
}

// Verify checks creds.Email and creds.Password against the configured pairs.
func (v *CredentialVerifier) Verify(creds Credentials) (string, error) {
	if len(v.accounts) == 0 || v.token == "" {
		return "", models.NewError(models.ErrServiceUnavailable, "Admin credentials not configured on server")
	}
	for _, acct := range v.accounts {
		if acct.email != creds.Email {
			continue
		}
		if bcrypt.CompareHashAndPassword(acct.hash, prehash(creds.Password)) == nil {
			return v.token, nil
		}
	}
	return "", models.NewError(models.ErrUnauthorized, "Invalid credentials. Please try again.")
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// AdminAuthService bundles the two ways an admin proves who they are.
type AdminAuthService struct {
	token       *TokenVerifier
	credentials *CredentialVerifier
}

// NewAdminAuthService creates a new AdminAuthService
func NewAdminAuthService(token string, emails, passwords []string, bcryptCost int) (*AdminAuthService, error) {
	credentials, err := NewCredentialVerifier(token, emails, passwords, bcryptCost)
	if err != nil {
		return nil, err
	}
	return &AdminAuthService{
		token:       NewTokenVerifier(token),
		credentials: credentials,
	}, nil
}

// TokenVerifier guards routes that expect the shared token.
func (s *AdminAuthService) TokenVerifier() Verifier { return s.token }

// CheckToken verifies a token presented to the token-echo login.
func (s *AdminAuthService) CheckToken(token string) error {
	_, err := s.token.Verify(Credentials{Token: token})
	return err
}

// Login exchanges an email/password pair for the shared token.
func (s *AdminAuthService) Login(email, password string) (string, error) {
	return s.credentials.Verify(Credentials{Email: email, Password: password})
}
