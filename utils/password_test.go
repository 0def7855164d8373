package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword()

	assert.Len(t, password, 10)
	for _, char := range password {
		assert.True(t, strings.ContainsRune(passwordCharset, char))
	}
}

func TestGenerateResetKey(t *testing.T) {
	key := GenerateResetKey()

	assert.Len(t, key, 8)
	assert.NotEqual(t, key, GenerateResetKey())
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Str0ng.pass", ""},
		{"too short", "S1.a", "at least 8 characters"},
		{"no uppercase", "weak1pass.", "uppercase letter"},
		{"no digit", "Weakpass.", "one number"},
		{"no special", "Weakpass1", "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
