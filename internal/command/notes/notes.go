// Package notes implements the notebook commands. Titles are single
// tokens; bodies take every remaining token.
package notes

import (
	"strings"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/store"
)

// Commands returns every note command in registration order.
func Commands(nb store.Notes) []command.Command {
	return []command.Command{
		NewAdd(nb),
		NewRename(nb),
		NewUpdate(nb),
		NewDelete(nb),
		NewGet(nb),
		NewAddTags(nb),
		NewDeleteTags(nb),
		NewSearch(nb),
		NewAll(nb),
	}
}

func requireNote(nb store.Notes, title string) error {
	if nb.Find(title) == nil {
		return command.Invalid("Note with the title %s not found.", title)
	}
	return nil
}

func listNotes(notes []store.Note) command.Event {
	if len(notes) == 0 {
		return command.Print("No notes found.")
	}
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = n.String()
	}
	return command.Print(strings.Join(lines, "\n"))
}

type Add struct {
	command.Info
	nb store.Notes
}

func NewAdd(nb store.Notes) *Add {
	return &Add{
		Info: command.Info{Keyword: "add-note", Args: "<title> <body...>", Help: "Add a note."},
		nb:   nb,
	}
}

func (c *Add) Validate(args []string) error {
	if err := command.Arity(args, -1, "title and body", "body"); err != nil {
		return err
	}
	if c.nb.Find(args[0]) != nil {
		return command.Invalid("Note with the title %s already exists.", args[0])
	}
	return nil
}

func (c *Add) Act(args []string) command.Event {
	c.nb.Add(store.NewNote(args[0], command.Join(args[1:])))
	return command.Printf("Note %q added.", args[0])
}

type Rename struct {
	command.Info
	nb store.Notes
}

func NewRename(nb store.Notes) *Rename {
	return &Rename{
		Info: command.Info{Keyword: "note-rename", Args: "<old title> <new title>", Help: "Rename a note."},
		nb:   nb,
	}
}

func (c *Rename) Validate(args []string) error {
	if err := command.Arity(args, 2, "old and new title", "new title"); err != nil {
		return err
	}
	if err := requireNote(c.nb, args[0]); err != nil {
		return err
	}
	if c.nb.Find(args[1]) != nil {
		return command.Invalid("Note with the title %s already exists.", args[1])
	}
	return nil
}

func (c *Rename) Act(args []string) command.Event {
	c.nb.Rename(args[0], args[1])
	return command.Printf("Note %q renamed to %q.", args[0], args[1])
}

// Update replaces a note's body.
type Update struct {
	command.Info
	nb store.Notes
}

func NewUpdate(nb store.Notes) *Update {
	return &Update{
		Info: command.Info{Keyword: "note-update", Args: "<title> <body...>", Help: "Replace a note's body."},
		nb:   nb,
	}
}

func (c *Update) Validate(args []string) error {
	if err := command.Arity(args, -1, "title and new body", "new body"); err != nil {
		return err
	}
	return requireNote(c.nb, args[0])
}

func (c *Update) Act(args []string) command.Event {
	c.nb.UpdateBody(args[0], command.Join(args[1:]))
	return command.Printf("Note %q updated.", args[0])
}

type Delete struct {
	command.Info
	nb store.Notes
}

func NewDelete(nb store.Notes) *Delete {
	return &Delete{
		Info: command.Info{Keyword: "note-delete", Args: "<title>", Help: "Delete a note."},
		nb:   nb,
	}
}

func (c *Delete) Validate(args []string) error {
	if err := command.Arity(args, 1, "title"); err != nil {
		return err
	}
	return requireNote(c.nb, args[0])
}

func (c *Delete) Act(args []string) command.Event {
	c.nb.Remove(args[0])
	return command.Printf("Note %q deleted.", args[0])
}

// Get shows one note. A missing title is reported as output, not an error.
type Get struct {
	command.Info
	nb store.Notes
}

func NewGet(nb store.Notes) *Get {
	return &Get{
		Info: command.Info{Keyword: "get-note", Args: "<title>", Help: "Show a note."},
		nb:   nb,
	}
}

func (c *Get) Validate(args []string) error {
	return command.Arity(args, 1, "title")
}

func (c *Get) Act(args []string) command.Event {
	n := c.nb.Find(args[0])
	if n == nil {
		return command.Printf("Note not found: %s.", args[0])
	}
	return command.Print(n.RenderHuman())
}

type AddTags struct {
	command.Info
	nb store.Notes
}

func NewAddTags(nb store.Notes) *AddTags {
	return &AddTags{
		Info: command.Info{Keyword: "add-tags", Args: "<title> <tag...>", Help: "Tag a note."},
		nb:   nb,
	}
}

func (c *AddTags) Validate(args []string) error {
	return validateTags(c.nb, args)
}

func (c *AddTags) Act(args []string) command.Event {
	c.nb.Find(args[0]).AddTags(args[1:]...)
	return command.Printf("Tags added to the note %q.", args[0])
}

type DeleteTags struct {
	command.Info
	nb store.Notes
}

func NewDeleteTags(nb store.Notes) *DeleteTags {
	return &DeleteTags{
		Info: command.Info{Keyword: "delete-tags", Args: "<title> <tag...>", Help: "Remove tags from a note."},
		nb:   nb,
	}
}

func (c *DeleteTags) Validate(args []string) error {
	return validateTags(c.nb, args)
}

func (c *DeleteTags) Act(args []string) command.Event {
	c.nb.Find(args[0]).RemoveTags(args[1:]...)
	return command.Printf("Tags removed from the note %q.", args[0])
}

func validateTags(nb store.Notes, args []string) error {
	if err := command.Arity(args, -1, "title and tags", "tags"); err != nil {
		return err
	}
	if nb.Find(args[0]) == nil {
		return command.Invalid("Note with the title %s does not exist.", args[0])
	}
	if len(store.NormalizeTags(args[1:])) == 0 {
		return command.Invalid("No valid tags given.")
	}
	return nil
}

// Search finds notes by keyword (title or body) or by a single tag.
type Search struct {
	command.Info
	nb store.Notes
}

func NewSearch(nb store.Notes) *Search {
	return &Search{
		Info: command.Info{Keyword: "note-search", Args: "<keyword|tag> <term>", Help: "Find notes by keyword or tag."},
		nb:   nb,
	}
}

func (c *Search) Validate(args []string) error {
	if err := command.Arity(args, -1, "type and search term", "search term"); err != nil {
		return err
	}
	switch strings.ToLower(args[0]) {
	case "keyword":
		return nil
	case "tag":
		if len(args) > 2 {
			return command.TooMany()
		}
		return nil
	default:
		return command.Invalid("First argument must be 'tag' or 'keyword'.")
	}
}

func (c *Search) Act(args []string) command.Event {
	if strings.ToLower(args[0]) == "tag" {
		return listNotes(c.nb.SearchByTag(args[1]))
	}
	return listNotes(c.nb.SearchByKeyword(command.Join(args[1:])))
}

type All struct {
	command.Info
	nb store.Notes
}

func NewAll(nb store.Notes) *All {
	return &All{
		Info: command.Info{Keyword: "all-notes", Help: "Show every note."},
		nb:   nb,
	}
}

func (c *All) Validate(args []string) error {
	return command.Arity(args, 0)
}

func (c *All) Act([]string) command.Event {
	return listNotes(c.nb.All())
}
