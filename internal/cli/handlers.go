package cli

import (
	"time"

	"go.uber.org/zap"

	"github.com/amirbrooks/assistant/internal/command"
	"github.com/amirbrooks/assistant/internal/command/contacts"
	"github.com/amirbrooks/assistant/internal/command/general"
	"github.com/amirbrooks/assistant/internal/command/notes"
	"github.com/amirbrooks/assistant/internal/store"
)

type HandlerOptions struct {
	Today        func() time.Time
	BirthdayDays int
}

// NewDispatcher wires the command chain. Order matters: the first command
// whose Select accepts a line owns it, so exit/close and hello (which only
// match a bare keyword) come first, then help, contacts and notes. No two
// keywords overlap, so the remaining order only affects help output.
// Unrecognized input falls through to the "Invalid command." fallback.
func NewDispatcher(log *zap.Logger, book store.Contacts, nb store.Notes, opts HandlerOptions) *command.Dispatcher {
	var d *command.Dispatcher
	chain := []command.Command{
		general.Exit(),
		general.Hello(),
		general.Help(func() []command.Command { return d.Commands() }),
	}
	chain = append(chain, contacts.Commands(book, contacts.Options{
		Today:        opts.Today,
		BirthdayDays: opts.BirthdayDays,
	})...)
	chain = append(chain, notes.Commands(nb)...)
	d = command.NewDispatcher(log, general.Fallback(), chain...)
	return d
}
