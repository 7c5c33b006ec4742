package validation

import (
	"strings"
	"testing"

	"focusflow/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := validator.IsNonEmptyString(tt.input); result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		min      int
		max      int
		expected bool
	}{
		{"Empty string, min 1", "", 1, 10, false},
		{"Too long", "very long string", 1, 5, false},
		{"Exactly max", "hello", 1, 5, true},
		{"Trims spaces", "  hello  ", 1, 5, true},
		{"Counts runes not bytes", "héllo", 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := validator.IsValidStringLength(tt.input, tt.min, tt.max); result != tt.expected {
				t.Errorf("IsValidStringLength(%q, %d, %d) = %v, expected %v", tt.input, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidTag(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"work", true},
		{"q1-review", true},
		{"snake_case", true},
		{"", false},
		{"   ", false},
		{"two words", true},
		{"café", true},
		{strings.Repeat("a", 50), true},
		{strings.Repeat("a", 51), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := validator.IsValidTag(tt.input); result != tt.expected {
				t.Errorf("IsValidTag(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidTaskID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"0001", true},
		{"12345", true},
		{"a1", true},
		{"", false},
		{" ", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := validator.IsValidTaskID(tt.input); result != tt.expected {
				t.Errorf("IsValidTaskID(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidEstimate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		hours    float64
		expected bool
	}{
		{2.5, true},
		{0.25, true},
		{0, false},
		{-0.5, false},
	}

	for _, tt := range tests {
		if result := validator.IsValidEstimate(tt.hours); result != tt.expected {
			t.Errorf("IsValidEstimate(%v) = %v, expected %v", tt.hours, result, tt.expected)
		}
	}
}

func TestValidator_WithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	cfg.Validation.TagMaxLength = 3
	validator := NewValidatorWithConfig(cfg)

	if validator.IsValidTitleLength("too long") {
		t.Error("IsValidTitleLength() should respect configured maximum")
	}
	if !validator.IsValidTitleLength("") {
		t.Error("IsValidTitleLength() should allow a blank title")
	}
	if validator.IsValidTag("abcd") {
		t.Error("IsValidTag() should respect configured maximum")
	}
	if validator.TitleMaxLength() != 5 || validator.TagMaxLength() != 3 {
		t.Errorf("limits = %d/%d, expected 5/3", validator.TitleMaxLength(), validator.TagMaxLength())
	}
}

func TestValidator_DefaultLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 0

	for name, validator := range map[string]*Validator{
		"nil config":  NewValidatorWithConfig(nil),
		"zero limits": NewValidatorWithConfig(cfg),
	} {
		t.Run(name, func(t *testing.T) {
			if validator.TitleMaxLength() != 255 {
				t.Errorf("TitleMaxLength() = %d, expected 255", validator.TitleMaxLength())
			}
			if !validator.IsValidTag(strings.Repeat("a", 50)) {
				t.Error("IsValidTag() should accept 50 characters by default")
			}
		})
	}
}
