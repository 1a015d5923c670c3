package ports

import "fieldnotes/internal/domain"

// ResearchAssistant defines the interface for AI-powered corpus features
type ResearchAssistant interface {
	// SuggestFiling analyzes inbox clippings against the corpus outline and
	// suggests where each one belongs.
	SuggestFiling(clippings []domain.Clipping, corpusOutline string) ([]domain.FilingSuggestion, error)

	// Ask answers a natural-language question from the corpus outline.
	Ask(question string, corpusOutline string) (string, error)

	// IsAvailable returns true if the assistant (e.g., the claude CLI) is usable
	IsAvailable() bool
}
