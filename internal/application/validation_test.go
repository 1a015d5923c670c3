package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"non-empty value", "slug", "alfred", false},
		{"empty value", "slug", "", true},
		{"whitespace only", "title", "   ", true},
		{"camelCase field", "newSlug", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired(%q, %q) error = %v, wantErr %v",
					tt.field, tt.value, err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	if err := ValidateSlug("slug", "claude-desktop"); err != nil {
		t.Errorf("unexpected error for valid slug: %v", err)
	}
	err := ValidateSlug("slug", "Claude Desktop")
	if err == nil {
		t.Fatal("expected error for invalid slug")
	}
	if !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("expected error to wrap ErrInvalidSlug, got %v", err)
	}
}

func TestValidateSection(t *testing.T) {
	tests := []struct {
		section string
		wantErr bool
	}{
		{"apps", false},
		{"patterns", false},
		{"archive", true},
		{"inbox", true},
		{"", true},
		{"Bad Section", true},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			err := ValidateSection("section", tt.section)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSection(%q) error = %v, wantErr %v", tt.section, err, tt.wantErr)
			}
		})
	}
}
