package domain

import "time"

// Clipping is a raw file in inbox/ awaiting triage into a proper note.
// Clippings are exempt from note lint.
type Clipping struct {
	Name    string // Filename as dropped into inbox/
	Path    string // Relative path from corpus root
	Preview string // First bytes of content, for triage prompts
	Size    int64
	Mtime   time.Time
}

// FilingSuggestion is a suggested destination for a clipping
type FilingSuggestion struct {
	Clipping  string // Which clipping this suggestion is for
	Section   string // Destination section (apps, patterns)
	Slug      string // Existing note to merge into, or "" for a new note
	Title     string // Proposed title when a new note should be created
	Reasoning string
}
