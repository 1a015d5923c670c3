package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Slugs are the note identifiers: the filename without .md, lowercase
// [a-z0-9-], unique across the corpus including archive/.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a well-formed note slug.
func ValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// ValidateSlug checks if a string is a valid note slug.
func ValidateSlug(s string) error {
	if !ValidSlug(s) {
		return fmt.Errorf("invalid slug: %q (want lowercase letters, digits and hyphens)", s)
	}
	return nil
}

// SlugFromFilename derives the slug from a note filename.
// e.g., "claude-desktop.md" -> "claude-desktop"
func SlugFromFilename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NoteFileName returns the filename for a slug.
// e.g., "claude-desktop" -> "claude-desktop.md"
func NoteFileName(slug string) string {
	return slug + ".md"
}

// Slugify converts a free-form title into a slug candidate.
// e.g., "Claude Desktop" -> "claude-desktop"
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // Suppress leading hyphens
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
