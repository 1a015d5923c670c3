package filesystem

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/markdown"
	"fieldnotes/internal/ports"
)

const (
	inboxDir       = "inbox"
	archiveSection = "archive"
)

// Repository implements ports.CorpusRepository over a notes directory.
// The directory layout is the contract: one level of section directories,
// each holding flat .md files named after their slug.
type Repository struct {
	root string
}

var _ ports.CorpusRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(root string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	return &Repository{root: root}
}

// Root returns the absolute corpus root path
func (r *Repository) Root() string {
	return r.root
}

// sectionNames returns the section directories, sorted. inbox/ holds raw
// clippings, not notes, so it is not a section.
func (r *Repository) sectionNames() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || entry.Name() == inboxDir {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Sections returns all sections with their notes loaded
func (r *Repository) Sections() ([]domain.Section, error) {
	names, err := r.sectionNames()
	if err != nil {
		return nil, err
	}

	var sections []domain.Section
	for _, name := range names {
		notes, err := r.List(name)
		if err != nil {
			return nil, err
		}
		sections = append(sections, domain.Section{
			Name:  name,
			Path:  filepath.Join(r.root, name),
			Notes: notes,
		})
	}

	domain.SortSections(sections)
	return sections, nil
}

// List returns all notes in a section, sorted by slug. An empty section
// name lists the whole corpus.
func (r *Repository) List(section string) ([]domain.Note, error) {
	if section == "" {
		return r.All()
	}

	entries, err := os.ReadDir(filepath.Join(r.root, section))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("section %s: %w", section, application.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read section %s: %w", section, err)
	}

	var notes []domain.Note
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		note, err := r.noteFromFile(section, entry.Name())
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}

	domain.SortNotes(notes)
	return notes, nil
}

// All returns every note in the corpus, archive included
func (r *Repository) All() ([]domain.Note, error) {
	names, err := r.sectionNames()
	if err != nil {
		return nil, err
	}

	var notes []domain.Note
	for _, section := range names {
		sectionNotes, err := r.List(section)
		if err != nil {
			return nil, err
		}
		notes = append(notes, sectionNotes...)
	}

	domain.SortNotes(notes)
	return notes, nil
}

// Get returns the note with the given slug
func (r *Repository) Get(slug string) (*domain.Note, error) {
	section, _, err := r.locate(slug)
	if err != nil {
		return nil, err
	}
	return r.noteFromFile(section, domain.NoteFileName(slug))
}

// ReadBody returns the raw file content of a note
func (r *Repository) ReadBody(slug string) ([]byte, error) {
	_, path, err := r.locate(slug)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// AbsPath returns the absolute path of a note file
func (r *Repository) AbsPath(slug string) (string, error) {
	_, path, err := r.locate(slug)
	return path, err
}

// Create scaffolds a new note in a section. The slug is derived from the
// title and must be unique across the whole corpus, archive included.
func (r *Repository) Create(section, title, app string) (*domain.Note, error) {
	slug := domain.Slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("title %q yields an empty slug", title)
	}

	if _, _, err := r.locate(slug); err == nil {
		return nil, fmt.Errorf("note %s already exists", slug)
	}

	dir := filepath.Join(r.root, section)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create section %s: %w", section, err)
	}

	path := filepath.Join(dir, domain.NoteFileName(slug))
	if err := os.WriteFile(path, []byte(domain.NoteTemplate(title, app)), 0644); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return r.noteFromFile(section, domain.NoteFileName(slug))
}

// Rename renames a note and rewrites every inbound reference to it:
// wikilinks ([[slug]], [[slug#h]], [[slug|label]]) and relative links
// ((slug.md), (../apps/slug.md#h)) in all other notes.
func (r *Repository) Rename(slug, newSlug string) (*domain.Note, error) {
	section, oldPath, err := r.locate(slug)
	if err != nil {
		return nil, err
	}
	if _, _, err := r.locate(newSlug); err == nil {
		return nil, fmt.Errorf("note %s already exists", newSlug)
	}

	newPath := filepath.Join(r.root, section, domain.NoteFileName(newSlug))
	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, fmt.Errorf("failed to rename note: %w", err)
	}

	if err := r.rewriteReferences(slug, newSlug); err != nil {
		return nil, fmt.Errorf("renamed %s but failed to rewrite references: %w", slug, err)
	}

	return r.noteFromFile(section, domain.NoteFileName(newSlug))
}

// rewriteReferences rewrites inbound links in every note after a rename
func (r *Repository) rewriteReferences(slug, newSlug string) error {
	wiki := regexp.MustCompile(`\[\[` + regexp.QuoteMeta(slug) + `([#|\]])`)
	relative := regexp.MustCompile(`(\(|/)` + regexp.QuoteMeta(slug) + `\.md`)

	names, err := r.sectionNames()
	if err != nil {
		return err
	}

	for _, section := range names {
		entries, err := os.ReadDir(filepath.Join(r.root, section))
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			path := filepath.Join(r.root, section, entry.Name())
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			updated := wiki.ReplaceAll(content, []byte("[["+newSlug+"$1"))
			updated = relative.ReplaceAll(updated, []byte("${1}"+newSlug+".md"))
			if bytes.Equal(updated, content) {
				continue
			}
			if err := os.WriteFile(path, updated, 0644); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetStatus updates the status field in a note's frontmatter
func (r *Repository) SetStatus(slug string, status domain.Status) (*domain.Note, error) {
	section, path, err := r.locate(slug)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	updated, err := setFrontmatterField(content, "status", status.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update status of %s: %w", slug, err)
	}
	if err := os.WriteFile(path, updated, 0644); err != nil {
		return nil, err
	}

	return r.noteFromFile(section, domain.NoteFileName(slug))
}

// Archive moves a note into archive/ and marks its status archived
func (r *Repository) Archive(slug string) (*domain.Note, error) {
	section, oldPath, err := r.locate(slug)
	if err != nil {
		return nil, err
	}
	if section == archiveSection {
		return nil, fmt.Errorf("note %s: %w", slug, application.ErrAlreadyArchived)
	}

	dir := filepath.Join(r.root, archiveSection)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	newPath := filepath.Join(dir, domain.NoteFileName(slug))
	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, fmt.Errorf("failed to archive note: %w", err)
	}

	return r.SetStatus(slug, domain.StatusArchived)
}

// Unarchive moves an archived note back into a section. The note comes
// back as needs-review: archived content is stale until someone rereads it.
func (r *Repository) Unarchive(slug, section string) (*domain.Note, error) {
	current, oldPath, err := r.locate(slug)
	if err != nil {
		return nil, err
	}
	if current != archiveSection {
		return nil, fmt.Errorf("note %s is not archived: %w", slug, application.ErrInvalidOperation)
	}

	dir := filepath.Join(r.root, section)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create section %s: %w", section, err)
	}

	newPath := filepath.Join(dir, domain.NoteFileName(slug))
	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, fmt.Errorf("failed to unarchive note: %w", err)
	}

	return r.SetStatus(slug, domain.StatusNeedsReview)
}

// Delete removes a note file
func (r *Repository) Delete(slug string) error {
	_, path, err := r.locate(slug)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Search matches the query against slugs, titles and note content.
// Content matches report the first matching line.
func (r *Repository) Search(query string) ([]domain.SearchResult, error) {
	query = strings.ToLower(query)
	var results []domain.SearchResult

	names, err := r.sectionNames()
	if err != nil {
		return nil, err
	}

	for _, section := range names {
		entries, err := os.ReadDir(filepath.Join(r.root, section))
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			slug := domain.SlugFromFilename(entry.Name())
			path := filepath.Join(r.root, section, entry.Name())
			content, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			doc := markdown.Parse(content)
			title := noteTitle(doc, slug)

			result := domain.SearchResult{
				Slug:    slug,
				Title:   title,
				Path:    filepath.Join(section, entry.Name()),
				Section: section,
			}

			if strings.Contains(strings.ToLower(slug), query) ||
				strings.Contains(strings.ToLower(title), query) {
				result.MatchedText = title
				results = append(results, result)
				continue
			}

			if line, text := firstMatch(content, query); line > 0 {
				result.MatchedText = text
				result.Line = line
				results = append(results, result)
			}
		}
	}

	return results, nil
}

// firstMatch returns the 1-based line number and text of the first line
// containing the query, or 0.
func firstMatch(content []byte, query string) (int, string) {
	for i, line := range strings.Split(string(content), "\n") {
		if strings.Contains(strings.ToLower(line), query) {
			return i + 1, strings.TrimSpace(line)
		}
	}
	return 0, ""
}

// Tree builds the corpus tree for navigation: sections as branches,
// notes as leaves.
func (r *Repository) Tree() (*domain.TreeNode, error) {
	root := &domain.TreeNode{
		Name:       "Notes",
		Path:       r.root,
		IsExpanded: true,
	}

	sections, err := r.Sections()
	if err != nil {
		return nil, err
	}

	for _, section := range sections {
		sectionNode := &domain.TreeNode{
			Name:   section.Name,
			Path:   section.Path,
			Parent: root,
		}
		for i := range section.Notes {
			note := &section.Notes[i]
			sectionNode.Children = append(sectionNode.Children, &domain.TreeNode{
				Slug:   note.Slug,
				Name:   note.Title,
				Path:   filepath.Join(r.root, note.Path),
				Status: note.Status,
				Parent: sectionNode,
			})
		}
		root.Children = append(root.Children, sectionNode)
	}

	return root, nil
}

// Inbox returns the raw clippings awaiting triage
func (r *Repository) Inbox() ([]domain.Clipping, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, inboxDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}

	var clippings []domain.Clipping
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		clippings = append(clippings, domain.Clipping{
			Name:    entry.Name(),
			Path:    filepath.Join(inboxDir, entry.Name()),
			Preview: preview(filepath.Join(r.root, inboxDir, entry.Name())),
			Size:    info.Size(),
			Mtime:   info.ModTime(),
		})
	}
	return clippings, nil
}

// preview reads the first bytes of a clipping for triage prompts
func preview(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	const max = 240
	text := strings.Join(strings.Fields(string(content)), " ")
	if len(text) > max {
		text = text[:max]
	}
	return text
}

// locate finds the section and absolute path of a note by slug
func (r *Repository) locate(slug string) (string, string, error) {
	names, err := r.sectionNames()
	if err != nil {
		return "", "", err
	}

	for _, section := range names {
		path := filepath.Join(r.root, section, domain.NoteFileName(slug))
		if _, err := os.Stat(path); err == nil {
			return section, path, nil
		}
	}
	return "", "", fmt.Errorf("note %s: %w", slug, application.ErrNotFound)
}

// noteFromFile builds a domain.Note from a file on disk
func (r *Repository) noteFromFile(section, filename string) (*domain.Note, error) {
	path := filepath.Join(r.root, section, filename)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat note: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}

	doc := markdown.Parse(content)
	slug := domain.SlugFromFilename(filename)

	status, _ := domain.ParseStatus(doc.Frontmatter.Status)
	updated, _ := time.Parse("2006-01-02", doc.Frontmatter.Updated)

	return &domain.Note{
		Slug:    slug,
		Title:   noteTitle(doc, slug),
		Path:    filepath.Join(section, filename),
		Section: section,
		App:     doc.Frontmatter.App,
		Status:  status,
		Updated: updated,
		Tags:    doc.Frontmatter.Tags,
		Words:   doc.Words,
		Mtime:   info.ModTime(),
	}, nil
}

// noteTitle prefers the frontmatter title, then the H1, then the slug
func noteTitle(doc *markdown.Document, slug string) string {
	if doc.Frontmatter.Title != "" {
		return doc.Frontmatter.Title
	}
	if h1 := doc.Outline.H1(); h1 != "" {
		return h1
	}
	return slug
}

// setFrontmatterField replaces (or inserts) one field inside the YAML
// fence without disturbing the rest of the file.
func setFrontmatterField(content []byte, field, value string) ([]byte, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, fmt.Errorf("note has no frontmatter")
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, fmt.Errorf("frontmatter fence is never closed")
	}

	replaced := false
	for i := 1; i < closing; i++ {
		if strings.HasPrefix(lines[i], field+":") {
			lines[i] = fmt.Sprintf("%s: %s", field, value)
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines[:closing], append([]string{fmt.Sprintf("%s: %s", field, value)}, lines[closing:]...)...)
	}

	return []byte(strings.Join(lines, "\n")), nil
}
