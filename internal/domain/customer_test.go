package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+1234567",
		"+123456789012345",
		"555-123-4567",
	}
	for _, phone := range valid {
		assert.True(t, ValidPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"+123456",           // too short
		"+1234567890123456", // too long
		"555-1234-567",
		"5551234567",
		"+12 34567",
		"abc-def-ghij",
		"555-123-45678",
	}
	for _, phone := range invalid {
		assert.False(t, ValidPhone(phone), "expected %q to be invalid", phone)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("alice@example.com"))
	assert.True(t, ValidEmail("a.b+c@sub.example.org"))

	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail("Alice <alice@example.com>"))
}
