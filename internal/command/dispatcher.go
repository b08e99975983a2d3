package command

import (
	"fmt"

	"go.uber.org/zap"
)

// Dispatcher resolves lines against an ordered chain of commands. The first
// command that selects a line owns it; when none does, the fallback runs.
// Registration order is therefore significant.
type Dispatcher struct {
	log      *zap.Logger
	chain    []Command
	fallback Command
}

// NewDispatcher builds a dispatcher over cmds in priority order. fallback
// must select and accept every line.
func NewDispatcher(log *zap.Logger, fallback Command, cmds ...Command) *Dispatcher {
	if fallback == nil {
		panic("command: nil fallback")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		log:      log,
		chain:    append([]Command(nil), cmds...),
		fallback: fallback,
	}
}

// Commands returns the chain in registration order, without the fallback.
func (d *Dispatcher) Commands() []Command {
	return append([]Command(nil), d.chain...)
}

func (d *Dispatcher) Dispatch(line string) Event {
	return d.Resolve(Tokenize(line))
}

// Resolve folds the chain into exactly one Event. A nil accumulator means
// no command has claimed the line yet.
func (d *Dispatcher) Resolve(t Tokens) Event {
	var acc *Event
	for _, c := range d.chain {
		acc = d.step(acc, c, t)
	}
	if acc == nil {
		ev := d.run(d.fallback, t)
		acc = &ev
	}
	d.log.Debug("resolved",
		zap.String("command", t.Name()),
		zap.Stringer("outcome", acc.Kind),
	)
	return *acc
}

func (d *Dispatcher) step(acc *Event, c Command, t Tokens) *Event {
	if acc != nil || !c.Select(t) {
		return acc
	}
	ev := d.run(c, t)
	return &ev
}

func (d *Dispatcher) run(c Command, t Tokens) Event {
	args := t.Args()
	if err := d.validate(c, args); err != nil {
		d.log.Debug("validation failed",
			zap.String("command", c.Name()),
			zap.Error(err),
		)
		return Fail(err)
	}
	return c.Act(args)
}

// validate is the one place a validation panic is recovered.
func (d *Dispatcher) validate(c Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("validation panicked",
				zap.String("command", c.Name()),
				zap.Any("panic", r),
			)
			err = &UnknownError{Err: fmt.Errorf("%v", r)}
		}
	}()
	return Classify(c.Validate(args))
}
