package application

import (
	"fmt"
	"strings"

	"fieldnotes/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "newSlug" -> "new slug")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"slug":     "slug",
		"newSlug":  "new slug",
		"section":  "section",
		"title":    "title",
		"query":    "query",
		"question": "question",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateSlug checks if a value is a well-formed note slug.
// The returned ValidationError wraps ErrInvalidSlug.
func ValidateSlug(fieldName, slug string) error {
	if !domain.ValidSlug(slug) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid slug: %q (want lowercase letters, digits and hyphens)", slug),
			Err:     ErrInvalidSlug,
		}
	}
	return nil
}

// ValidateSection checks that a section name is usable as a corpus directory.
// The archive section is managed by archive/unarchive, not by direct writes.
func ValidateSection(fieldName, section string) error {
	if err := ValidateRequired(fieldName, section); err != nil {
		return err
	}
	if section == "archive" || section == "inbox" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("cannot write notes directly into %q", section),
		}
	}
	if !domain.ValidSlug(section) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid section name: %q", section),
		}
	}
	return nil
}
