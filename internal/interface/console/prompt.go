package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads operator input line by line. All input goes through it,
// so tests can drive the shell with a scripted reader.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadLine prints the prompt and reads one line, trimmed of whitespace.
// Returns io.EOF when the input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			// Last line without a trailing newline still counts.
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadFloat prints the prompt and parses one line as a number.
func (p *Prompter) ReadFloat(prompt string) (float64, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", line)
	}
	return value, nil
}

// Confirm prints the prompt and reads a yes/no answer. Only an explicit
// "y" or "yes" confirms; anything else declines.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
