package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidatorIsValid(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid())
}

func TestCheckRecordsFailures(t *testing.T) {
	v := New()
	v.Check(false, "field", "must be provided")

	assert.False(t, v.IsValid())
	assert.Equal(t, "must be provided", v.Errors["field"])
}

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("field", "first")
	v.AddError("field", "second")

	assert.Equal(t, "first", v.Errors["field"])
}

func TestCheckNotBlank(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"normal value", "hello", true},
		{"empty string", "", false},
		{"whitespace only", "   \t\n", false},
		{"value with surrounding spaces", " hello ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.CheckNotBlank(tt.value, "field", "must be provided")
			assert.Equal(t, tt.valid, v.IsValid())
		})
	}
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"alice+tag@sub.example.co", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"alice@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := New()
			v.CheckEmail(tt.email, "must be a valid email address")
			assert.Equal(t, tt.valid, v.IsValid(), "email %q", tt.email)
		})
	}
}

func TestIsUnique(t *testing.T) {
	v := New()
	assert.True(t, v.IsUnique([]string{"a", "b", "c"}))
	assert.False(t, v.IsUnique([]string{"a", "b", "a"}))
	assert.True(t, v.IsUnique(nil))
}
