// Package telnet provides a line-oriented Telnet server with ANSI color
// support for the loot game console.
package telnet

import (
	"fmt"
	"strconv"
	"strings"
)

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red          = "\033[31m"
	Green        = "\033[32m"
	Yellow       = "\033[33m"
	Cyan         = "\033[36m"
	BrightBlack  = "\033[90m"
	BrightYellow = "\033[93m"
	BrightWhite  = "\033[97m"
)

// Hex returns the 24-bit foreground escape for a "#RRGGBB" color. Malformed
// input yields an empty string so text renders uncolored.
func Hex(color string) string {
	s, ok := strings.CutPrefix(color, "#")
	if !ok || len(s) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

// Colorize wraps text with the given ANSI color code and a reset suffix.
// An empty color returns text unchanged.
//
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI removes all ANSI escape sequences from a string.
// This is useful for measuring the printable width of styled text.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			// Skip past the 'm' terminator
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// PadRight pads s with spaces to width printable columns, ignoring escapes.
func PadRight(s string, width int) string {
	n := len([]rune(StripANSI(s)))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
