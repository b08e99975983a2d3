// Package command resolves one line of user input into exactly one Event.
//
// A Command owns a line when Select accepts its tokens. The owner then
// validates the arguments (everything after the name) and, only if they
// are valid, acts on them. Act is the single place storage changes.
package command

// Command is the select/validate/act contract every handler implements.
// Commands are built once around their storage and hold no per-line state.
type Command interface {
	// Name is the keyword the command answers to, used by help.
	Name() string
	// Select reports whether the command owns the line. It must be false
	// for empty input and must not panic.
	Select(t Tokens) bool
	// Validate checks arguments without side effects. It returns nil or a
	// *MissingArgumentsError / *InvalidArgumentsError; anything else is
	// reported as an *UnknownError.
	Validate(args []string) error
	// Act performs the command on arguments that passed Validate.
	Act(args []string) Event
}

// Describer is implemented by commands listed in help.
type Describer interface {
	Usage() string
	Summary() string
}

// Info supplies Name, Usage, Summary and a keyword Select to commands that
// embed it.
type Info struct {
	Keyword string
	// Args is the argument synopsis shown after the keyword in help.
	Args string
	Help string
}

func (i Info) Name() string { return i.Keyword }

func (i Info) Select(t Tokens) bool {
	return i.Keyword != "" && t.Name() == i.Keyword
}

func (i Info) Usage() string {
	if i.Args == "" {
		return i.Keyword
	}
	return i.Keyword + " " + i.Args
}

func (i Info) Summary() string { return i.Help }

// Func adapts plain functions to Command. A nil SelectFn selects by
// keyword, a nil ValidateFn accepts everything.
type Func struct {
	Info
	SelectFn   func(Tokens) bool
	ValidateFn func(args []string) error
	ActFn      func(args []string) Event
}

func (f *Func) Select(t Tokens) bool {
	if f.SelectFn != nil {
		return f.SelectFn(t)
	}
	return f.Info.Select(t)
}

func (f *Func) Validate(args []string) error {
	if f.ValidateFn == nil {
		return nil
	}
	return f.ValidateFn(args)
}

func (f *Func) Act(args []string) Event {
	if f.ActFn == nil {
		return Continue()
	}
	return f.ActFn(args)
}

// Alone selects a line that is exactly one of the given keywords with no
// arguments.
func Alone(keywords ...string) func(Tokens) bool {
	return func(t Tokens) bool {
		if len(t) != 1 {
			return false
		}
		for _, k := range keywords {
			if t[0] == k {
				return true
			}
		}
		return false
	}
}

var (
	_ Command   = (*Func)(nil)
	_ Describer = Info{}
)
