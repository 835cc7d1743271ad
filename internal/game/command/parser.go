package command

import "strings"

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is Args joined by single spaces, so multi-word zone names
	// survive irregular spacing.
	RawArgs string
}

// Parse splits a console line into a command and its arguments on any run
// of whitespace.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty
// and Args is nil.
func Parse(line string) ParseResult {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(words[0])}
	if len(words) > 1 {
		res.Args = words[1:]
		res.RawArgs = strings.Join(res.Args, " ")
	}
	return res
}
