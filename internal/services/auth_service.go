package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// TokenSigner mints a session token for an authenticated moderator. Kept as
// a function value so the service does not depend on the JWT layer.
type TokenSigner func(email string) (string, error)

// Credentials is the moderator login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a successful login.
type AuthResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// AuthService authenticates the single site moderator configured through the
// environment. There is no user table; moderation is one account.
type AuthService struct {
	email        string
	passwordHash string
	sign         TokenSigner
}

func NewAuthService(email, passwordHash string, sign TokenSigner) *AuthService {
	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		sign:         sign,
	}
}

// HashPassword derives a bcrypt hash for bootstrap configs that carry a
// plaintext password instead of a hash.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Login verifies the credentials against the configured moderator account.
// A wrong email and a wrong password produce the same error.
func (s *AuthService) Login(c Credentials) (*AuthResult, error) {
	if s.email == "" || s.passwordHash == "" {
		return nil, NewUnauthorizedError("moderator account not configured")
	}
	if strings.ToLower(strings.TrimSpace(c.Email)) != s.email {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(c.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	token, err := s.sign(s.email)
	if err != nil {
		return nil, NewStoreError("token signing failed: " + err.Error())
	}
	return &AuthResult{Token: token, Email: s.email}, nil
}
