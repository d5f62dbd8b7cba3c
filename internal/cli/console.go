// Package cli holds the terminal output and confirmation prompts used by
// rsvpctl.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DropTablesPhrase must be typed exactly to confirm a schema drop.
const DropTablesPhrase = "DROP ALL TABLES"

// Console writes styled messages and reads answers from the operator.
type Console struct {
	out io.Writer
	in  *bufio.Reader

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	dim     lipgloss.Style
}

// NewConsole builds a Console. Colour is chosen by the renderer for out, so
// redirected output stays plain text.
func NewConsole(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		in:      bufio.NewReader(in),
		success: r.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#D4A017")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		notice:  r.NewStyle().Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (c *Console) Success(format string, args ...any) { c.line(c.success, format, args...) }
func (c *Console) Warning(format string, args ...any) { c.line(c.warning, format, args...) }
func (c *Console) Error(format string, args ...any)   { c.line(c.failure, format, args...) }
func (c *Console) Notice(format string, args ...any)  { c.line(c.notice, format, args...) }
func (c *Console) Info(format string, args ...any)    { c.line(c.dim, format, args...) }

func (c *Console) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf(format, args...))) //nolint:errcheck
}

// Prompt prints question and returns the answer with the line ending
// removed. End of input with no answer is returned as io.EOF.
func (c *Console) Prompt(question string) (string, error) {
	fmt.Fprint(c.out, c.notice.Render(question)+" ") //nolint:errcheck
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ConfirmYes asks question and reports whether the operator answered "yes"
// in any letter case.
func (c *Console) ConfirmYes(question string) (bool, error) {
	answer, err := c.Prompt(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

// ConfirmPhrase asks question and reports whether the operator typed phrase
// exactly, case and surrounding spaces included.
func (c *Console) ConfirmPhrase(question, phrase string) (bool, error) {
	answer, err := c.Prompt(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return answer == phrase, nil
}
