package commands

import (
	"context"
	"errors"
	"testing"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// fakeRepo implements ports.CorpusRepository over fixed data
type fakeRepo struct {
	sections  []domain.Section
	clippings []domain.Clipping
}

var _ ports.CorpusRepository = (*fakeRepo)(nil)

func (f *fakeRepo) Sections() ([]domain.Section, error) { return f.sections, nil }
func (f *fakeRepo) List(string) ([]domain.Note, error)  { return nil, nil }
func (f *fakeRepo) All() ([]domain.Note, error)         { return nil, nil }

func (f *fakeRepo) Get(slug string) (*domain.Note, error) {
	for _, s := range f.sections {
		for i := range s.Notes {
			if s.Notes[i].Slug == slug {
				return &s.Notes[i], nil
			}
		}
	}
	return nil, application.ErrNotFound
}

func (f *fakeRepo) ReadBody(string) ([]byte, error) { return nil, nil }

func (f *fakeRepo) Create(string, string, string) (*domain.Note, error) { return nil, nil }
func (f *fakeRepo) Rename(string, string) (*domain.Note, error)         { return nil, nil }

func (f *fakeRepo) SetStatus(string, domain.Status) (*domain.Note, error) { return nil, nil }
func (f *fakeRepo) Archive(string) (*domain.Note, error)                  { return nil, nil }
func (f *fakeRepo) Unarchive(string, string) (*domain.Note, error)        { return nil, nil }
func (f *fakeRepo) Delete(string) error                                   { return nil }

func (f *fakeRepo) Search(string) ([]domain.SearchResult, error) { return nil, nil }
func (f *fakeRepo) Tree() (*domain.TreeNode, error)              { return nil, nil }

func (f *fakeRepo) Inbox() ([]domain.Clipping, error) { return f.clippings, nil }

func (f *fakeRepo) Root() string                    { return "/tmp/notes" }
func (f *fakeRepo) AbsPath(string) (string, error)  { return "", nil }

// fakeAssistant records the prompts it received
type fakeAssistant struct {
	available   bool
	gotOutline  string
	suggestions []domain.FilingSuggestion
	answer      string
	err         error
}

var _ ports.ResearchAssistant = (*fakeAssistant)(nil)

func (f *fakeAssistant) SuggestFiling(clippings []domain.Clipping, outline string) ([]domain.FilingSuggestion, error) {
	f.gotOutline = outline
	return f.suggestions, f.err
}

func (f *fakeAssistant) Ask(question, outline string) (string, error) {
	f.gotOutline = outline
	return f.answer, f.err
}

func (f *fakeAssistant) IsAvailable() bool { return f.available }

func testSections() []domain.Section {
	return []domain.Section{
		{
			Name: "apps",
			Notes: []domain.Note{
				{Slug: "alfred", Title: "Alfred", Status: domain.StatusCurrent},
				{Slug: "cursor", Title: "Cursor", Status: domain.StatusNeedsReview},
			},
		},
		{
			Name: "patterns",
			Notes: []domain.Note{
				{Slug: "quick-capture", Title: "Quick Capture", Status: domain.StatusCurrent},
			},
		},
	}
}

func TestTriageCommand_Execute(t *testing.T) {
	repo := &fakeRepo{
		sections: testSections(),
		clippings: []domain.Clipping{
			{Name: "raycast-screenshot.md", Preview: "Raycast command palette"},
		},
	}
	assistant := &fakeAssistant{
		available: true,
		suggestions: []domain.FilingSuggestion{
			{Section: "apps", Slug: "raycast", Title: "Raycast", Reasoning: "new launcher app"},
		},
	}

	cmd := NewTriageCommand(repo, assistant)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
	}
	if result.Suggestions[0].Section != "apps" {
		t.Errorf("expected suggestion for apps, got %s", result.Suggestions[0].Section)
	}

	// The prompt outline must describe the corpus sections and notes
	if !contains(assistant.gotOutline, "## apps") {
		t.Errorf("expected outline to list the apps section, got %q", assistant.gotOutline)
	}
	if !contains(assistant.gotOutline, "cursor: Cursor (status: needs-review)") {
		t.Errorf("expected outline to list cursor with status, got %q", assistant.gotOutline)
	}
}

func TestTriageCommand_EmptyInbox(t *testing.T) {
	repo := &fakeRepo{sections: testSections()}
	assistant := &fakeAssistant{available: false} // must not be consulted

	cmd := NewTriageCommand(repo, assistant)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions for empty inbox, got %d", len(result.Suggestions))
	}
}

func TestTriageCommand_AssistantUnavailable(t *testing.T) {
	repo := &fakeRepo{
		sections:  testSections(),
		clippings: []domain.Clipping{{Name: "clip.md"}},
	}
	assistant := &fakeAssistant{available: false}

	cmd := NewTriageCommand(repo, assistant)
	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, application.ErrAssistantUnavailable) {
		t.Errorf("expected ErrAssistantUnavailable, got %v", err)
	}
}

func TestAskCommand_Execute(t *testing.T) {
	repo := &fakeRepo{sections: testSections()}
	assistant := &fakeAssistant{available: true, answer: "Alfred uses hotkey-first capture."}

	cmd := NewAskCommand(repo, assistant, "How does Alfred handle capture?")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Answer == "" {
		t.Error("expected an answer")
	}
	if !contains(assistant.gotOutline, "## patterns") {
		t.Errorf("expected outline to include patterns section, got %q", assistant.gotOutline)
	}
}

func TestAskCommand_Validate(t *testing.T) {
	cmd := NewAskCommand(&fakeRepo{}, &fakeAssistant{available: true}, "   ")
	if _, err := cmd.Execute(context.Background()); err == nil {
		t.Error("expected validation error for blank question")
	}
}
