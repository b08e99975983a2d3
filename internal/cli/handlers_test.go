package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/command/general"
	"github.com/amirbrooks/assistant/internal/logging"
	"github.com/amirbrooks/assistant/internal/store"
)

func TestNewDispatcherKeywordsAreExclusive(t *testing.T) {
	d := NewDispatcher(logging.Nop(), store.NewAddressBook(), store.NewNoteBook(), HandlerOptions{BirthdayDays: 7})
	chain := d.Commands()
	require.Len(t, chain, 25)

	keywords := []string{"close"}
	for _, c := range chain {
		keywords = append(keywords, c.Name())
	}
	for _, kw := range keywords {
		tokens := command.Tokenize(kw)
		matched := 0
		for _, c := range chain {
			if c.Select(tokens) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "keyword %q", kw)
	}
}

func TestNewDispatcherOrder(t *testing.T) {
	d := NewDispatcher(logging.Nop(), store.NewAddressBook(), store.NewNoteBook(), HandlerOptions{BirthdayDays: 7})
	var names []string
	for _, c := range d.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"exit", "hello", "help"}, names[:3])
	assert.Equal(t, "add", names[3])
	assert.Equal(t, "all-notes", names[len(names)-1])
}

func TestHelpListsEveryCommand(t *testing.T) {
	d := NewDispatcher(logging.Nop(), store.NewAddressBook(), store.NewNoteBook(), HandlerOptions{BirthdayDays: 7})
	ev := d.Dispatch("help")
	require.Equal(t, command.KindPrint, ev.Kind)
	for _, c := range d.Commands() {
		assert.Contains(t, ev.Message, c.Name())
	}
}

func TestUnknownInputFallsBack(t *testing.T) {
	d := NewDispatcher(logging.Nop(), store.NewAddressBook(), store.NewNoteBook(), HandlerOptions{BirthdayDays: 7})
	for _, line := range []string{"", "exit now", "hello there", "remove x"} {
		ev := d.Dispatch(line)
		assert.Equal(t, command.Print(general.InvalidMessage), ev, "line %q", line)
	}
}

func TestKeywordsIgnoreCase(t *testing.T) {
	d := NewDispatcher(logging.Nop(), store.NewAddressBook(), store.NewNoteBook(), HandlerOptions{BirthdayDays: 7})
	assert.Equal(t, command.Print("How can I help you?"), d.Dispatch("HeLLo"))
	assert.Equal(t, command.KindTerminate, d.Dispatch("  CLOSE ").Kind)
}
