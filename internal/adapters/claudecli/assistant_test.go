package claudecli

import (
	"strings"
	"testing"

	"fieldnotes/internal/domain"
)

func TestParseFilingSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		result      string
		wantCount   int
		wantFirst   string // first clipping name
		wantSection string
		wantErr     bool
	}{
		{
			name: "valid JSON array",
			result: `[
				{"clipping": "raycast.md", "section": "apps", "slug": "", "title": "Raycast", "reasoning": "New launcher"},
				{"clipping": "alfred-hotkeys.txt", "section": "apps", "slug": "alfred", "title": "", "reasoning": "Extends existing note"}
			]`,
			wantCount:   2,
			wantFirst:   "raycast.md",
			wantSection: "apps",
			wantErr:     false,
		},
		{
			name:        "JSON in markdown code block",
			result:      "```json\n[{\"clipping\": \"clip.md\", \"section\": \"patterns\", \"title\": \"Quick Capture\", \"reasoning\": \"Cross-app pattern\"}]\n```",
			wantCount:   1,
			wantFirst:   "clip.md",
			wantSection: "patterns",
			wantErr:     false,
		},
		{
			name:        "JSON with surrounding text",
			result:      "Here are my suggestions:\n[{\"clipping\": \"shot.png\", \"section\": \"apps\", \"slug\": \"cursor\", \"reasoning\": \"Cursor screenshot\"}]\nLet me know.",
			wantCount:   1,
			wantFirst:   "shot.png",
			wantSection: "apps",
			wantErr:     false,
		},
		{
			name:        "missing clipping in one entry",
			result:      `[{"section": "apps", "reasoning": "x"}, {"clipping": "ok.md", "section": "apps", "reasoning": "y"}]`,
			wantCount:   1, // Only the valid entry
			wantFirst:   "ok.md",
			wantSection: "apps",
			wantErr:     false,
		},
		{
			name:    "no JSON array found",
			result:  "This is just plain text without any JSON",
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			result:  `[{"clipping": "x.md", "section": }]`,
			wantErr: true,
		},
		{
			name:    "empty array",
			result:  `[]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions, err := parseFilingSuggestions(tt.result)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseFilingSuggestions() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("parseFilingSuggestions() unexpected error: %v", err)
				return
			}

			if len(suggestions) != tt.wantCount {
				t.Errorf("got %d suggestions, want %d", len(suggestions), tt.wantCount)
				return
			}

			if tt.wantCount > 0 {
				if suggestions[0].Clipping != tt.wantFirst {
					t.Errorf("first Clipping = %q, want %q", suggestions[0].Clipping, tt.wantFirst)
				}
				if suggestions[0].Section != tt.wantSection {
					t.Errorf("first Section = %q, want %q", suggestions[0].Section, tt.wantSection)
				}
			}
		})
	}
}

func TestBuildFilingPrompt(t *testing.T) {
	clippings := []domain.Clipping{
		{Name: "raycast.md", Preview: "Raycast quicklinks"},
		{Name: "binary.dat"},
	}

	prompt := buildFilingPrompt(clippings, "## apps\n- alfred: Alfred (status: current)\n")

	for _, want := range []string{
		"raycast.md",
		"Raycast quicklinks",
		"binary.dat",
		"(no preview available)",
		"- alfred: Alfred",
		"JSON array",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
