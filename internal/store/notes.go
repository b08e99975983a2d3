package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const noteTimeLayout = "2006-01-02 15:04"

type Note struct {
	ID        string    `yaml:"id" json:"id"`
	Title     string    `yaml:"title" json:"title"`
	Body      string    `yaml:"body" json:"body"`
	Tags      []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
}

func NewNote(title, body string) *Note {
	now := timeNow()
	return &Note{
		ID:        "nt_" + newULID(),
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddTags merges tags into the note. Leading #, @ and + are stripped and
// duplicates are dropped case-insensitively. It returns how many were new.
func (n *Note) AddTags(tags ...string) int {
	before := len(n.Tags)
	merged := append(append([]string{}, n.Tags...), NormalizeTags(tags)...)
	n.Tags = dedupeStrings(merged)
	added := len(n.Tags) - before
	if added > 0 {
		n.UpdatedAt = timeNow()
	}
	return added
}

// RemoveTags drops the named tags and returns how many were removed.
func (n *Note) RemoveTags(tags ...string) int {
	drop := NormalizeTags(tags)
	var kept []string
	for _, t := range n.Tags {
		if !containsString(drop, t) {
			kept = append(kept, t)
		}
	}
	removed := len(n.Tags) - len(kept)
	if removed > 0 {
		n.Tags = kept
		n.UpdatedAt = timeNow()
	}
	return removed
}

func (n *Note) HasTag(tag string) bool {
	tag = cleanTag(tag)
	return tag != "" && containsString(n.Tags, tag)
}

func (n Note) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s", n.Title, n.CreatedAt.UTC().Format(noteTimeLayout), n.Body)
	if len(n.Tags) > 0 {
		b.WriteString(" [")
		b.WriteString(formatTags(n.Tags))
		b.WriteString("]")
	}
	return b.String()
}

func (n *Note) RenderHuman() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", n.Title))
	b.WriteString(fmt.Sprintf("Created: %s\n", n.CreatedAt.UTC().Format(noteTimeLayout)))
	if !n.UpdatedAt.Equal(n.CreatedAt) {
		b.WriteString(fmt.Sprintf("Updated: %s\n", n.UpdatedAt.UTC().Format(noteTimeLayout)))
	}
	if len(n.Tags) > 0 {
		b.WriteString(fmt.Sprintf("Tags: %s\n", formatTags(n.Tags)))
	}
	b.WriteString("\n")
	b.WriteString(n.Body)
	return b.String()
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}

// NormalizeTags cleans each tag, drops the empty ones and removes duplicates.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = cleanTag(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return dedupeStrings(out)
}

func cleanTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	tag = strings.TrimLeft(tag, "#@+")
	return strings.TrimSpace(tag)
}

// NoteBook holds notes keyed by exact title.
type NoteBook struct {
	notes map[string]*Note
}

func NewNoteBook() *NoteBook {
	return &NoteBook{notes: map[string]*Note{}}
}

func newNoteBookFrom(notes []Note) (*NoteBook, error) {
	nb := NewNoteBook()
	for i := range notes {
		n := notes[i]
		n.Title = strings.TrimSpace(n.Title)
		if n.Title == "" {
			return nil, fmt.Errorf("%w: note #%d has no title", ErrInvalid, i+1)
		}
		if n.ID == "" {
			n.ID = "nt_" + newULID()
		}
		if n.UpdatedAt.IsZero() {
			n.UpdatedAt = n.CreatedAt
		}
		n.Tags = NormalizeTags(n.Tags)
		if !nb.Add(&n) {
			return nil, fmt.Errorf("%w: duplicate note %q", ErrInvalid, n.Title)
		}
	}
	return nb, nil
}

func (nb *NoteBook) Len() int {
	return len(nb.notes)
}

// Find returns the live note titled title, or nil.
func (nb *NoteBook) Find(title string) *Note {
	return nb.notes[title]
}

// Add stores n unless a note with the same title exists.
func (nb *NoteBook) Add(n *Note) bool {
	if n == nil || nb.notes[n.Title] != nil {
		return false
	}
	nb.notes[n.Title] = n
	return true
}

func (nb *NoteBook) Remove(title string) bool {
	if nb.notes[title] == nil {
		return false
	}
	delete(nb.notes, title)
	return true
}

// Rename moves a note to a new title. It fails when old is missing or
// newTitle is already taken.
func (nb *NoteBook) Rename(old, newTitle string) bool {
	n := nb.notes[old]
	if n == nil || nb.notes[newTitle] != nil {
		return false
	}
	delete(nb.notes, old)
	n.Title = newTitle
	n.UpdatedAt = timeNow()
	nb.notes[newTitle] = n
	return true
}

func (nb *NoteBook) UpdateBody(title, body string) bool {
	n := nb.notes[title]
	if n == nil {
		return false
	}
	n.Body = strings.TrimSpace(body)
	n.UpdatedAt = timeNow()
	return true
}

// SearchByKeyword matches term against titles and bodies, case-insensitively.
func (nb *NoteBook) SearchByKeyword(term string) []Note {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return nb.filter(func(n *Note) bool {
		return containsFold(n.Title, term) || containsFold(n.Body, term)
	})
}

func (nb *NoteBook) SearchByTag(tag string) []Note {
	return nb.filter(func(n *Note) bool { return n.HasTag(tag) })
}

// All returns copies of every note, oldest first.
func (nb *NoteBook) All() []Note {
	return nb.filter(func(*Note) bool { return true })
}

func (nb *NoteBook) filter(keep func(*Note) bool) []Note {
	var out []Note
	for _, n := range nb.notes {
		if keep(n) {
			c := *n
			c.Tags = append([]string(nil), n.Tags...)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
