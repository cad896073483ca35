package merge

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the operator whether an existing destination may be
// overwritten. Abstracted so tests can stub the prompt without a terminal.
type Confirmer interface {
	// Confirm returns true when the operator approves the overwrite
	Confirm(sourcePath, destPath string) (bool, error)
}

// TerminalConfirmer prompts on the controlling terminal. The prompt blocks
// the whole run until the operator answers.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalConfirmer creates a confirmer reading answers from in and
// writing prompts to out
func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prompts for an overwrite decision. Only an explicit yes answer
// approves; anything else, including a read failure, declines.
func (c *TerminalConfirmer) Confirm(sourcePath, destPath string) (bool, error) {
	fmt.Fprintf(c.out, "overwrite %s with %s? [y/N] ", destPath, sourcePath)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
