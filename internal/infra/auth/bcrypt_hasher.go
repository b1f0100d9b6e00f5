// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"market/config"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// forbiddenWords are trivial passwords rejected regardless of composition.
var forbiddenWords = []string{"password", "qwerty", "123456"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:     cost,
		strength: cfg.PasswordStrength,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the password against the configured
// composition rules.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	strength := h.strength
	if strength == nil {
		strength = &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        72,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
		}
	}

	if len(password) < strength.MinLength {
		return domainerrors.ErrValidationFailed.WithDetails("password too short")
	}
	if strength.MaxLength > 0 && len(password) > strength.MaxLength {
		return domainerrors.ErrValidationFailed.WithDetails("password too long")
	}

	lowered := strings.ToLower(password)
	for _, word := range forbiddenWords {
		if strings.Contains(lowered, word) {
			return domainerrors.ErrValidationFailed.WithDetails("password contains a forbidden word")
		}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if strength.RequireUppercase && !hasUpper {
		return domainerrors.ErrValidationFailed.WithDetails("password needs an uppercase letter")
	}
	if strength.RequireLowercase && !hasLower {
		return domainerrors.ErrValidationFailed.WithDetails("password needs a lowercase letter")
	}
	if strength.RequireNumbers && !hasNumber {
		return domainerrors.ErrValidationFailed.WithDetails("password needs a digit")
	}
	if strength.RequireSpecial && !hasSpecial {
		return domainerrors.ErrValidationFailed.WithDetails("password needs a special character")
	}

	return nil
}
