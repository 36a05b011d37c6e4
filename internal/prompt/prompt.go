// Package prompt asks the operator for a yes/no decision.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer decides whether a destructive step may proceed.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// StdinConfirmer asks on out and reads the answer from in. Only "y" (any
// case, surrounding space ignored) confirms.
type StdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinConfirmer creates a confirmer over the given streams.
func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	return &StdinConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm implements Confirmer. End of input counts as "no".
func (c *StdinConfirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s (y/N): ", question)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}

// AlwaysConfirm confirms without asking.
type AlwaysConfirm struct{}

// Confirm implements Confirmer.
func (AlwaysConfirm) Confirm(string) (bool, error) { return true, nil }
