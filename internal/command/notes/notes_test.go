package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/command/general"
	"github.com/amirbrooks/assistant/internal/store"
)

func newDispatcher() (*command.Dispatcher, *store.NoteBook) {
	nb := store.NewNoteBook()
	return command.NewDispatcher(zap.NewNop(), general.Fallback(), Commands(nb)...), nb
}

func expectPrint(t *testing.T, d *command.Dispatcher, line, want string) {
	t.Helper()
	ev := d.Dispatch(line)
	require.Equal(t, command.KindPrint, ev.Kind, "line %q: %q", line, ev.Message)
	assert.Equal(t, want, ev.Message, "line %q", line)
}

func expectError(t *testing.T, d *command.Dispatcher, line, want string) {
	t.Helper()
	ev := d.Dispatch(line)
	require.Equal(t, command.KindError, ev.Kind, "line %q: %q", line, ev.Message)
	assert.Equal(t, want, ev.Message, "line %q", line)
}

func TestNoteLifecycle(t *testing.T) {
	d, nb := newDispatcher()

	expectPrint(t, d, "add-note Groceries milk and  eggs", `Note "Groceries" added.`)
	assert.Equal(t, "milk and eggs", nb.Find("Groceries").Body)

	expectPrint(t, d, "note-update Groceries bread", `Note "Groceries" updated.`)
	assert.Equal(t, "bread", nb.Find("Groceries").Body)

	expectPrint(t, d, "note-rename Groceries Shopping", `Note "Groceries" renamed to "Shopping".`)
	expectPrint(t, d, "get-note Groceries", "Note not found: Groceries.")

	ev := d.Dispatch("get-note Shopping")
	require.Equal(t, command.KindPrint, ev.Kind)
	assert.True(t, strings.HasPrefix(ev.Message, "Shopping\n"), ev.Message)
	assert.True(t, strings.HasSuffix(ev.Message, "\nbread"), ev.Message)

	expectPrint(t, d, "note-delete Shopping", `Note "Shopping" deleted.`)
	expectError(t, d, "note-delete Shopping", "Invalid arguments: Note with the title Shopping not found.")
	expectPrint(t, d, "all-notes", "No notes found.")
}

func TestNoteArityMessages(t *testing.T) {
	d, _ := newDispatcher()
	d.Dispatch("add-note Plan write it down")
	d.Dispatch("add-note Other x")

	for _, tc := range []struct{ line, want string }{
		{"add-note", "Missing arguments: title and body"},
		{"add-note Plan", "Missing arguments: body"},
		{"add-note Plan again", "Invalid arguments: Note with the title Plan already exists."},
		{"note-rename", "Missing arguments: old and new title"},
		{"note-rename Plan", "Missing arguments: new title"},
		{"note-rename Plan New Extra", "Invalid arguments: too many arguments"},
		{"note-rename Missing New", "Invalid arguments: Note with the title Missing not found."},
		{"note-rename Plan Other", "Invalid arguments: Note with the title Other already exists."},
		{"note-update", "Missing arguments: title and new body"},
		{"note-update Plan", "Missing arguments: new body"},
		{"note-update Missing body", "Invalid arguments: Note with the title Missing not found."},
		{"note-delete", "Missing arguments: title"},
		{"note-delete Plan Other", "Invalid arguments: too many arguments"},
		{"get-note", "Missing arguments: title"},
		{"add-tags", "Missing arguments: title and tags"},
		{"add-tags Plan", "Missing arguments: tags"},
		{"add-tags Missing x", "Invalid arguments: Note with the title Missing does not exist."},
		{"delete-tags Plan", "Missing arguments: tags"},
		{"add-tags Plan # @", "Invalid arguments: No valid tags given."},
		{"delete-tags Plan +", "Invalid arguments: No valid tags given."},
		{"note-search", "Missing arguments: type and search term"},
		{"note-search tag", "Missing arguments: search term"},
		{"note-search title Plan", "Invalid arguments: First argument must be 'tag' or 'keyword'."},
		{"note-search tag a b", "Invalid arguments: too many arguments"},
		{"all-notes now", "Invalid arguments: too many arguments"},
	} {
		expectError(t, d, tc.line, tc.want)
	}
}

func TestNoteTagsAndSearch(t *testing.T) {
	d, nb := newDispatcher()
	d.Dispatch("add-note Plan write it down")
	d.Dispatch("add-note Trip pack the bags")

	expectPrint(t, d, "add-tags Plan #work urgent", `Tags added to the note "Plan".`)
	assert.Equal(t, []string{"urgent", "work"}, nb.Find("Plan").Tags)

	ev := d.Dispatch("note-search tag WORK")
	require.Equal(t, command.KindPrint, ev.Kind)
	assert.Contains(t, ev.Message, "Plan (")
	assert.NotContains(t, ev.Message, "Trip")

	ev = d.Dispatch("note-search keyword the bags")
	require.Equal(t, command.KindPrint, ev.Kind)
	assert.Contains(t, ev.Message, "Trip (")
	assert.NotContains(t, ev.Message, "Plan")

	expectPrint(t, d, "note-search keyword nothing-here", "No notes found.")

	expectPrint(t, d, "delete-tags Plan urgent", `Tags removed from the note "Plan".`)
	assert.Equal(t, []string{"work"}, nb.Find("Plan").Tags)

	ev = d.Dispatch("all-notes")
	require.Equal(t, command.KindPrint, ev.Kind)
	lines := strings.Split(ev.Message, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Plan ("), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "write it down [#work]"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Trip ("), lines[1])
}
