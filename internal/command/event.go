package command

import "fmt"

// Kind classifies the outcome of resolving one input line.
type Kind int

const (
	KindContinue Kind = iota
	KindPrint
	KindError
	KindTerminate
)

func (k Kind) String() string {
	switch k {
	case KindContinue:
		return "continue"
	case KindPrint:
		return "print"
	case KindError:
		return "error"
	case KindTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is the single outcome of a resolved line. Message is the text to
// show for Print, Error and Terminate. Reason is set only on Terminate.
type Event struct {
	Kind    Kind
	Message string
	Reason  string
}

func Continue() Event {
	return Event{Kind: KindContinue}
}

func Print(msg string) Event {
	return Event{Kind: KindPrint, Message: msg}
}

func Printf(format string, args ...any) Event {
	return Print(fmt.Sprintf(format, args...))
}

// Fail turns err into an Error event carrying err's message.
func Fail(err error) Event {
	if err == nil {
		return Event{Kind: KindError}
	}
	return Event{Kind: KindError, Message: err.Error()}
}

func Terminate(msg, reason string) Event {
	return Event{Kind: KindTerminate, Message: msg, Reason: reason}
}
