// Package cli is a line-based console: prompts and events go out as styled
// text, answers come back one line at a time.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samdwyer/otherside/internal/game"
	"github.com/samdwyer/otherside/internal/narrate"
)

// maxLine bounds one answer. Longer lines are discarded and rejected.
const maxLine = 4096

// Console reads answers from In and writes narration to Out.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	narrator *narrate.Narrator
	styles   map[narrate.Tone]lipgloss.Style
	prompt   lipgloss.Style
	plain    bool
	echo     bool
}

// Option configures a Console.
type Option func(*Console)

// WithPlain disables styling.
func WithPlain() Option {
	return func(c *Console) { c.plain = true }
}

// WithEcho writes each answer after its question, for scripted input.
func WithEcho() Option {
	return func(c *Console) { c.echo = true }
}

// New creates a console over in and out.
func New(in io.Reader, out io.Writer, n *narrate.Narrator, opts ...Option) *Console {
	r := lipgloss.NewRenderer(out)
	c := &Console{
		in:       bufio.NewReaderSize(in, maxLine),
		out:      out,
		narrator: n,
		styles: map[narrate.Tone]lipgloss.Style{
			narrate.ToneNormal: r.NewStyle().Foreground(lipgloss.Color("252")),
			narrate.ToneTitle:  r.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
			narrate.ToneInfo:   r.NewStyle().Foreground(lipgloss.Color("117")),
			narrate.ToneGood:   r.NewStyle().Foreground(lipgloss.Color("34")),
			narrate.ToneBad:    r.NewStyle().Foreground(lipgloss.Color("196")),
			narrate.ToneWarn:   r.NewStyle().Foreground(lipgloss.Color("214")),
			narrate.ToneDim:    r.NewStyle().Foreground(lipgloss.Color("243")),
		},
		prompt: r.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Welcome prints the opening banner.
func (c *Console) Welcome() {
	c.lines(c.narrator.Welcome())
	c.blank()
}

// ReadInt shows p and reads a number. Text that is not a number is an
// invalid input error; the caller asks again.
func (c *Console) ReadInt(ctx context.Context, p game.Prompt) (int, error) {
	raw, err := c.read(ctx, p)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, game.Wrap(game.CodeInvalidInput, fmt.Sprintf("%q is not a number", raw), err)
	}
	return n, nil
}

// ReadLine shows p and reads a line of text.
func (c *Console) ReadLine(ctx context.Context, p game.Prompt) (string, error) {
	return c.read(ctx, p)
}

// Report prints the narration of e.
func (c *Console) Report(e game.Event) {
	lines := c.narrator.Event(e)
	if len(lines) > 0 && lines[0].Tone == narrate.ToneTitle {
		c.blank()
	}
	c.lines(lines)
}

var _ game.Console = (*Console)(nil)

func (c *Console) read(ctx context.Context, p game.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines, question := c.narrator.Prompt(p)
	c.lines(lines)
	fmt.Fprint(c.out, c.render(c.prompt, question)+" ")

	raw, err := c.readLine()
	if err != nil {
		fmt.Fprintln(c.out)
		return "", err
	}
	text := strings.TrimSpace(raw)
	if c.echo {
		fmt.Fprintln(c.out, text)
	}
	return text, nil
}

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; io.EOF only comes once nothing is left.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadSlice('\n')
	switch {
	case err == nil:
		return string(bytes.TrimRight(line, "\r\n")), nil
	case errors.Is(err, bufio.ErrBufferFull):
		if err := c.discardLine(); err != nil && err != io.EOF {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", game.Wrap(game.CodeInvalidInput, fmt.Sprintf("answer is longer than %d bytes", maxLine), nil)
	case err == io.EOF && len(line) > 0:
		return string(bytes.TrimRight(line, "\r")), nil
	case err == io.EOF:
		return "", io.EOF
	default:
		return "", fmt.Errorf("read input: %w", err)
	}
}

// discardLine skips the rest of an overlong line.
func (c *Console) discardLine() error {
	for {
		_, err := c.in.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func (c *Console) lines(lines []narrate.Line) {
	for _, l := range lines {
		fmt.Fprintln(c.out, c.render(c.styles[l.Tone], l.Text))
	}
}

func (c *Console) blank() {
	fmt.Fprintln(c.out)
}

func (c *Console) render(s lipgloss.Style, text string) string {
	if c.plain {
		return text
	}
	return s.Render(text)
}
