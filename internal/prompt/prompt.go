// Package prompt provides line-based interactive prompts. All prompts state
// their default and accept a bare return as that default.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter asks the operator questions. The acquisition flow depends only on
// this interface so it can be driven by canned answers in tests.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer, def on blank input.
	Confirm(question string, def bool) bool

	// Input asks for a free-form line, returning def on blank input.
	Input(question, def string) string

	// Select asks the operator to pick one of options by number, returning
	// the chosen index, def on blank or unparseable input.
	Select(title string, options []string, def int) int
}

// Stdio is the terminal-backed Prompter.
type Stdio struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// New creates a Prompter reading from stdin and writing to stdout.
func New() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout}
}

func (s *Stdio) readLine() string {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}

	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	return strings.TrimSpace(line)
}

func (s *Stdio) Confirm(question string, def bool) bool {
	hint := "[Y/n]"
	if !def {
		hint = "[y/N]"
	}

	_, _ = fmt.Fprintf(s.Out, "%s %s: ", question, hint)

	switch strings.ToLower(s.readLine()) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (s *Stdio) Input(question, def string) string {
	if def != "" {
		_, _ = fmt.Fprintf(s.Out, "%s [default: %s]: ", question, def)
	} else {
		_, _ = fmt.Fprintf(s.Out, "%s: ", question)
	}

	if answer := s.readLine(); answer != "" {
		return answer
	}

	return def
}

func (s *Stdio) Select(title string, options []string, def int) int {
	_, _ = fmt.Fprintf(s.Out, "%s\n", title)

	for i, opt := range options {
		marker := " "
		if i == def {
			marker = "*"
		}

		_, _ = fmt.Fprintf(s.Out, " %s %d) %s\n", marker, i+1, opt)
	}

	_, _ = fmt.Fprintf(s.Out, "Choice [default: %d]: ", def+1)

	answer := s.readLine()
	if answer == "" {
		return def
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return def
	}

	return n - 1
}
