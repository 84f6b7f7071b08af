package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"alice@example.com",
		"a.b+tag@sub.example.co.uk",
		"USER@EXAMPLE.COM",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"alice@",
		"alice@example",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePassword("abc12"))
	assert.NoError(t, ValidatePassword("abc123"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName(strings.Repeat("a", 101)))
}

func TestParseSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "Go,SQL", []string{"Go", "SQL"}},
		{"spaces trimmed", " Go , SQL ", []string{"Go", "SQL"}},
		{"empty entries dropped", "Go,, ,SQL,", []string{"Go", "SQL"}},
		{"single", "Go", []string{"Go"}},
		{"all empty", " , ,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseSkills(tt.raw))
		})
	}
}
