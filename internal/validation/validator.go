package validation

import (
	"strings"
	"unicode/utf8"

	"focusflow/internal/config"
)

const (
	defaultTitleMaxLength = 255
	defaultTagMaxLength   = 50
)

// Validator checks single task field values against the board limits
type Validator struct {
	titleMax int
	tagMax   int
}

// NewValidator uses the default limits
func NewValidator() *Validator {
	return &Validator{titleMax: defaultTitleMaxLength, tagMax: defaultTagMaxLength}
}

// NewValidatorWithConfig takes its limits from cfg. Non-positive limits
// fall back to the defaults.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	v := NewValidator()
	if cfg == nil {
		return v
	}
	if cfg.Validation.TitleMaxLength > 0 {
		v.titleMax = cfg.Validation.TitleMaxLength
	}
	if cfg.Validation.TagMaxLength > 0 {
		v.tagMax = cfg.Validation.TagMaxLength
	}
	return v
}

// IsNonEmptyString reports whether s has anything besides whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength counts runes of the trimmed string
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}

// IsValidTitleLength allows blank titles, which become the placeholder on create.
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, 0, v.titleMax)
}

// IsValidTag accepts any non-blank tag up to the configured length
func (v *Validator) IsValidTag(tag string) bool {
	return v.IsValidStringLength(tag, 1, v.tagMax)
}

// IsValidEstimate accepts a positive number of hours
func (v *Validator) IsValidEstimate(hours float64) bool {
	return hours > 0
}

// IsValidTaskID accepts any non-blank id. Imported boards may carry ids
// that are not zero-padded numbers.
func (v *Validator) IsValidTaskID(id string) bool {
	return v.IsNonEmptyString(id)
}

func (v *Validator) TitleMaxLength() int { return v.titleMax }

func (v *Validator) TagMaxLength() int { return v.tagMax }
