package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGhanaPhone(t *testing.T) {
	valid := []string{"0244123456", "0551112223", "0200000000"}
	for _, phone := range valid {
		ok, _ := ValidateGhanaPhone(phone)
		assert.True(t, ok, "phone %q", phone)
	}

	invalid := []string{"", "244123456", "02441234567", "024412345", "+233244123456", "02441234ab"}
	for _, phone := range invalid {
		ok, _ := ValidateGhanaPhone(phone)
		assert.False(t, ok, "phone %q", phone)
	}
}

func TestValidateEmail(t *testing.T) {
	ok, _ := ValidateEmail("ama@example.com")
	assert.True(t, ok)

	for _, email := range []string{"", "no-at-sign", "a@b", "a b@example.com"} {
		ok, _ := ValidateEmail(email)
		assert.False(t, ok, "email %q", email)
	}
}

func TestValidatePassword(t *testing.T) {
	ok, _ := ValidatePassword("Str0ngPass")
	assert.True(t, ok)

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoNumbersHere"} {
		ok, msg := ValidatePassword(password)
		assert.False(t, ok, "password %q", password)
		assert.NotEmpty(t, msg)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Ama", SanitizeString("  Ama  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeString("<script>"))
}
