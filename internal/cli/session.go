package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/amirbrooks/assistant/internal/command"
)

const Prompt = "Enter command: "

// maxLine bounds one input line.
const maxLine = 1 << 20

// Session is the read-dispatch-render loop. It keeps no business state;
// everything it knows about a line comes back in the Event.
type Session struct {
	d      *command.Dispatcher
	in     *bufio.Scanner
	out    io.Writer
	render *Renderer
}

func NewSession(d *command.Dispatcher, in io.Reader, out io.Writer, render *Renderer) *Session {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Session{d: d, in: sc, out: out, render: render}
}

// Run loops until a Terminate event or end of input.
func (s *Session) Run() error {
	for {
		fmt.Fprint(s.out, s.render.Prompt(Prompt))
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		ev := s.d.Dispatch(s.in.Text())
		switch ev.Kind {
		case command.KindPrint:
			fmt.Fprintln(s.out, s.render.Print(ev.Message))
		case command.KindError:
			fmt.Fprintln(s.out, s.render.Error("Error occurred: "+ev.Message))
		case command.KindTerminate:
			if ev.Message != "" {
				fmt.Fprintln(s.out, s.render.Terminate(ev.Message))
			}
			return nil
		}
	}
}
