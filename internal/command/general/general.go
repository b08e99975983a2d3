// Package general holds the commands that touch no storage: greeting,
// help, leaving the session and the catch-all for unrecognized input.
package general

import (
	"fmt"
	"strings"

	"github.com/amirbrooks/assistant/internal/command"
)

const (
	GoodbyeMessage = "Goodbye 🙌!"
	ExitReason     = "User exited the program."
	InvalidMessage = "Invalid command."
)

// Exit ends the session. Only a bare `exit` or `close` selects it.
func Exit() command.Command {
	return &command.Func{
		Info:     command.Info{Keyword: "exit", Help: "Save data and leave (also: close)."},
		SelectFn: command.Alone("exit", "close"),
		ActFn: func([]string) command.Event {
			return command.Terminate(GoodbyeMessage, ExitReason)
		},
	}
}

func Hello() command.Command {
	return &command.Func{
		Info:     command.Info{Keyword: "hello", Help: "Say hello."},
		SelectFn: command.Alone("hello"),
		ActFn: func([]string) command.Event {
			return command.Print("How can I help you?")
		},
	}
}

// Help lists every describable command returned by list, in order.
// list is called on each use so help reflects the final chain.
func Help(list func() []command.Command) command.Command {
	return &command.Func{
		Info: command.Info{Keyword: "help", Help: "Show this list."},
		ActFn: func([]string) command.Event {
			return command.Print(renderHelp(list()))
		},
	}
}

func renderHelp(cmds []command.Command) string {
	type row struct{ usage, summary string }
	var rows []row
	width := 0
	for _, c := range cmds {
		d, ok := c.(command.Describer)
		if !ok {
			continue
		}
		r := row{usage: d.Usage(), summary: d.Summary()}
		if len(r.usage) > width {
			width = len(r.usage)
		}
		rows = append(rows, r)
	}
	var b strings.Builder
	b.WriteString("Supported commands:")
	for _, r := range rows {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %-*s  %s", width, r.usage, r.summary)
	}
	return b.String()
}

// Fallback accepts any line and reports it as an invalid command.
func Fallback() command.Command {
	return &command.Func{
		Info:     command.Info{Keyword: "invalid"},
		SelectFn: func(command.Tokens) bool { return true },
		ActFn: func([]string) command.Event {
			return command.Print(InvalidMessage)
		},
	}
}
