package command

import "strings"

// Tokens is one input line split on whitespace. Only the command name is
// lower-cased; arguments keep their case.
type Tokens []string

func Tokenize(line string) Tokens {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		fields[0] = strings.ToLower(fields[0])
	}
	return Tokens(fields)
}

// Name is the first token, or "" for an empty line.
func (t Tokens) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Args is every token after the name.
func (t Tokens) Args() []string {
	if len(t) < 2 {
		return nil
	}
	return []string(t[1:])
}

// Join recombines free-text arguments with single spaces.
func Join(args []string) string {
	return strings.Join(args, " ")
}
