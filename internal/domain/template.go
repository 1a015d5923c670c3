package domain

import (
	"fmt"
	"strings"
	"time"
)

// NoteTemplate generates the scaffold content for a new note
func NoteTemplate(title, app string) string {
	dateStr := time.Now().Format("2006-01-02")

	var fm strings.Builder
	fmt.Fprintf(&fm, "---\ntitle: %s\n", title)
	if app != "" {
		fmt.Fprintf(&fm, "app: %s\n", app)
	}
	fmt.Fprintf(&fm, "status: needs-review\nupdated: %s\ntags: []\n---\n", dateStr)

	return fmt.Sprintf(`%s
# %s

## Observations

-

## Takeaways

-

## Sources

-
`, fm.String(), title)
}
