package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// spy records how often each stage ran.
type spy struct {
	Info
	validateErr error
	validated   int
	acted       int
	panicMsg    string
}

func (s *spy) Validate(args []string) error {
	s.validated++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.validateErr
}

func (s *spy) Act(args []string) Event {
	s.acted++
	return Printf("%s %d", s.Keyword, len(args))
}

func newFallback() *Func {
	return &Func{
		SelectFn: func(Tokens) bool { return true },
		ActFn:    func([]string) Event { return Print("Invalid command.") },
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	first := &spy{Info: Info{Keyword: "add"}}
	second := &spy{Info: Info{Keyword: "add"}}
	d := NewDispatcher(zap.NewNop(), newFallback(), first, second)

	ev := d.Dispatch("ADD alice 0501234567")
	assert.Equal(t, Print("add 2"), ev)
	assert.Equal(t, 1, first.acted)
	assert.Equal(t, 0, second.validated, "a later command must never see a claimed line")
	assert.Equal(t, 0, second.acted)
}

func TestResolveValidateBeforeAct(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantActs int
		wantKind Kind
		wantMsg  string
	}{
		{"valid", nil, 1, KindPrint, "add 1"},
		{"missing", Missing("name"), 0, KindError, "Missing arguments: name"},
		{"invalid", Invalid("Invalid phone number: %s", "12"), 0, KindError, "Invalid arguments: Invalid phone number: 12"},
		{"untyped", errors.New("boom"), 0, KindError, "Unknown error: boom"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &spy{Info: Info{Keyword: "add"}, validateErr: tc.err}
			d := NewDispatcher(nil, newFallback(), s)
			ev := d.Dispatch("add x")
			assert.Equal(t, 1, s.validated)
			assert.Equal(t, tc.wantActs, s.acted)
			assert.Equal(t, tc.wantKind, ev.Kind)
			assert.Equal(t, tc.wantMsg, ev.Message)
		})
	}
}

func TestResolveRecoversValidationPanic(t *testing.T) {
	s := &spy{Info: Info{Keyword: "boom"}, panicMsg: "index out of range"}
	d := NewDispatcher(zap.NewNop(), newFallback(), s)

	var ev Event
	require.NotPanics(t, func() { ev = d.Dispatch("boom") })
	assert.Equal(t, KindError, ev.Kind)
	assert.Equal(t, "Unknown error: index out of range", ev.Message)
	assert.Equal(t, 0, s.acted)
}

func TestResolveActPanicPropagates(t *testing.T) {
	c := &Func{
		Info:  Info{Keyword: "crash"},
		ActFn: func([]string) Event { panic("act failed") },
	}
	d := NewDispatcher(zap.NewNop(), newFallback(), c)
	assert.PanicsWithValue(t, "act failed", func() { d.Dispatch("crash") })
}

func TestResolveFallbackTotality(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), newFallback(),
		&spy{Info: Info{Keyword: "add"}},
		&Func{Info: Info{Keyword: "exit"}, SelectFn: Alone("exit", "close")},
	)
	for _, line := range []string{"", "   ", "frobnicate", "exit now", "addx", "\t"} {
		t.Run(line, func(t *testing.T) {
			assert.Equal(t, Print("Invalid command."), d.Dispatch(line))
		})
	}
}

func TestResolveExclusiveSelection(t *testing.T) {
	cmds := []Command{
		&spy{Info: Info{Keyword: "add"}},
		&spy{Info: Info{Keyword: "add-note"}},
		&spy{Info: Info{Keyword: "all"}},
		&spy{Info: Info{Keyword: "all-notes"}},
	}
	for _, line := range []string{"add a", "add-note t b", "all", "all-notes", "nope"} {
		toks := Tokenize(line)
		owners := 0
		for _, c := range cmds {
			if c.Select(toks) {
				owners++
			}
		}
		assert.LessOrEqual(t, owners, 1, "line %q selected by %d commands", line, owners)
	}
}

func TestValidationIsIdempotent(t *testing.T) {
	s := &spy{Info: Info{Keyword: "add"}, validateErr: Missing("name")}
	d := NewDispatcher(zap.NewNop(), newFallback(), s)
	first := d.Dispatch("add")
	second := d.Dispatch("add")
	assert.Equal(t, first, second)
	assert.Equal(t, 2, s.validated)
	assert.Equal(t, 0, s.acted)
}

func TestCommandsKeepsRegistrationOrder(t *testing.T) {
	a := &spy{Info: Info{Keyword: "a"}}
	b := &spy{Info: Info{Keyword: "b"}}
	d := NewDispatcher(zap.NewNop(), newFallback(), a, b)
	cmds := d.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "a", cmds[0].Name())
	assert.Equal(t, "b", cmds[1].Name())
}

func TestNewDispatcherRequiresFallback(t *testing.T) {
	assert.Panics(t, func() { NewDispatcher(zap.NewNop(), nil) })
}
