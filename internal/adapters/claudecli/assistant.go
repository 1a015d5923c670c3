package claudecli

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// Assistant implements ports.ResearchAssistant using the Claude Code CLI
type Assistant struct {
	model string
}

var _ ports.ResearchAssistant = (*Assistant)(nil)

// Option configures the Assistant
type Option func(*Assistant)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(a *Assistant) {
		a.model = model
	}
}

// NewAssistant creates a new Claude CLI assistant
func NewAssistant(opts ...Option) *Assistant {
	a := &Assistant{
		model: "haiku", // Default to haiku for speed
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	CostUSD      float64 `json:"cost_usd"`
	DurationMS   int     `json:"duration_ms"`
	DurationAPI  int     `json:"duration_api_ms"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// suggestionJSON represents the expected JSON format from Claude's response
type suggestionJSON struct {
	Clipping  string `json:"clipping"`
	Section   string `json:"section"`
	Slug      string `json:"slug,omitempty"`
	Title     string `json:"title,omitempty"`
	Reasoning string `json:"reasoning"`
}

// SuggestFiling analyzes inbox clippings against the corpus outline and
// suggests where each one belongs
func (a *Assistant) SuggestFiling(clippings []domain.Clipping, corpusOutline string) ([]domain.FilingSuggestion, error) {
	prompt := buildFilingPrompt(clippings, corpusOutline)

	result, err := a.run(prompt)
	if err != nil {
		return nil, err
	}

	return parseFilingSuggestions(result)
}

func buildFilingPrompt(clippings []domain.Clipping, corpusOutline string) string {
	var clippingList strings.Builder
	for i, c := range clippings {
		clippingList.WriteString(fmt.Sprintf("\n### Clipping %d: %s\n", i+1, c.Name))
		if c.Preview != "" {
			clippingList.WriteString(fmt.Sprintf("Preview:\n%s\n", c.Preview))
		} else {
			clippingList.WriteString("(no preview available)\n")
		}
	}

	return fmt.Sprintf(`You are helping organize a corpus of UX research notes on desktop applications.

These raw clippings landed in the inbox and need filing:
%s

Current corpus (sections, note slugs, titles, statuses):
%s

For EACH clipping, suggest a destination:
- If an existing note covers the same app or pattern, name its slug so the clipping can be merged in.
- Otherwise propose a new note: pick a section ("apps" for a single product, "patterns" for a cross-app observation) and a title.

Return ONLY a JSON array (no markdown, no code blocks):
[
  {"clipping": "raycast-screenshot.md", "section": "apps", "slug": "", "title": "Raycast", "reasoning": "New launcher app, no existing note"},
  {"clipping": "alfred-hotkeys.txt", "section": "apps", "slug": "alfred", "title": "", "reasoning": "Extends the existing Alfred note"}
]`, clippingList.String(), corpusOutline)
}

// parseFilingSuggestions extracts the suggestions JSON array from Claude's response
func parseFilingSuggestions(result string) ([]domain.FilingSuggestion, error) {
	jsonStr, err := extractJSONArray(result)
	if err != nil {
		return nil, err
	}

	var rawSuggestions []suggestionJSON
	if err := json.Unmarshal([]byte(jsonStr), &rawSuggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions JSON: %w (json: %s)", err, jsonStr)
	}

	// Convert to domain.FilingSuggestion, validate each has required fields
	var suggestions []domain.FilingSuggestion
	for _, raw := range rawSuggestions {
		if raw.Clipping == "" || raw.Section == "" {
			continue // Skip invalid entries
		}
		suggestions = append(suggestions, domain.FilingSuggestion{
			Clipping:  raw.Clipping,
			Section:   raw.Section,
			Slug:      raw.Slug,
			Title:     raw.Title,
			Reasoning: raw.Reasoning,
		})
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no valid suggestions found in response")
	}

	return suggestions, nil
}

// Ask answers a natural-language question from the corpus outline
func (a *Assistant) Ask(question string, corpusOutline string) (string, error) {
	prompt := fmt.Sprintf(`You are answering a question about a corpus of UX research notes on desktop applications.

Question: %q

Corpus (sections, note slugs, titles, statuses):
%s

Answer concisely from what the corpus covers. When a specific note is
relevant, mention its slug so the reader can open it. If the corpus does
not cover the question, say so.`, question, corpusOutline)

	result, err := a.run(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// IsAvailable checks if the claude CLI is installed and accessible
func (a *Assistant) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

// run invokes the claude CLI with a prompt and returns the result text
func (a *Assistant) run(prompt string) (string, error) {
	args := []string{
		"-p", prompt,
		"--output-format", "json",
		"--model", a.model,
	}

	cmd := exec.Command("claude", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("claude CLI error: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("claude CLI error: %w", err)
	}

	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return "", fmt.Errorf("failed to parse claude response: %w", err)
	}

	if response.IsError {
		return "", fmt.Errorf("claude returned an error: %s", response.Result)
	}

	return response.Result, nil
}

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// extractJSONArray pulls a JSON array out of model output, tolerating
// markdown code fences and surrounding prose
func extractJSONArray(result string) (string, error) {
	result = strings.TrimSpace(result)

	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 {
		result = strings.TrimSpace(matches[1])
	}

	start := strings.Index(result, "[")
	end := strings.LastIndex(result, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no valid JSON array found in response")
	}

	return result[start : end+1], nil
}
