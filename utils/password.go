package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/rand"
)

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func init() {
	rand.Seed(uint64(time.Now().UnixNano()))
}

// GenerateRandomPassword creates a random temporary password with 10 characters.
func GenerateRandomPassword() string {
	password := make([]byte, 10)
	for i := range password {
		password[i] = passwordCharset[rand.Intn(len(passwordCharset))]
	}
	return string(password)
}

// GenerateResetKey creates a short token for the password-reset link.
func GenerateResetKey() string {
	key := make([]byte, 8)
	for i := range key {
		key[i] = passwordCharset[rand.Intn(len(passwordCharset))]
	}
	return string(key)
}

// ValidatePassword enforces the password strength rules for registration and
// password resets.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	hasUppercase := false
	for _, char := range password {
		if char >= 'A' && char <= 'Z' {
			hasUppercase = true
			break
		}
	}
	if !hasUppercase {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	hasDigit := false
	for _, char := range password {
		if char >= '0' && char <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}

	specialChars := "!@#$%^&*.,"
	hasSpecial := false
	for _, char := range password {
		if strings.ContainsRune(specialChars, char) {
			hasSpecial = true
			break
		}
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
