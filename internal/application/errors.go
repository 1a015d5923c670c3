package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidSlug          = errors.New("invalid slug")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrAlreadyArchived      = errors.New("already archived")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error // Optional sentinel, e.g. ErrInvalidSlug
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ArchiveError represents an archive-related failure
type ArchiveError struct {
	Slug   string
	Reason string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("cannot archive %s: %s", e.Slug, e.Reason)
}

func (e *ArchiveError) Is(target error) bool {
	return target == ErrAlreadyArchived
}

// RenameError represents a rename-related failure
type RenameError struct {
	Slug    string
	NewSlug string
	Err     error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("cannot rename %s to %s: %v", e.Slug, e.NewSlug, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}
