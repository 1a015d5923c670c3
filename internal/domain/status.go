package domain

import "fmt"

// Status represents the lifecycle state of a note
type Status int

const (
	StatusUnknown Status = iota
	StatusCurrent
	StatusNeedsReview
	StatusArchived
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusNeedsReview:
		return "needs-review"
	case StatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// ParseStatus parses a frontmatter status value
func ParseStatus(s string) (Status, error) {
	switch s {
	case "current":
		return StatusCurrent, nil
	case "needs-review":
		return StatusNeedsReview, nil
	case "archived":
		return StatusArchived, nil
	default:
		return StatusUnknown, fmt.Errorf("invalid status: %q (want current, needs-review or archived)", s)
	}
}
