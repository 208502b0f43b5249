package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/game"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/narrate"
	"github.com/samdwyer/otherside/internal/world"
)

const (
	maxLog   = 500
	maxInput = 24
)

// Source exposes the state drawn around the log. *game.Session satisfies it.
type Source interface {
	Graph() *world.Graph
	Roster() *entity.Roster
	Round() int
}

// Console is a game.Console on a tcell screen. Escape or Ctrl-C ends input
// with io.EOF.
type Console struct {
	screen   *Screen
	renderer *Renderer
	narrator *narrate.Narrator
	src      Source
	log      []narrate.Line
}

// NewConsole creates a console drawing on screen.
func NewConsole(screen *Screen, cat *gamedata.Catalog, n *narrate.Narrator, src Source) *Console {
	return &Console{
		screen:   screen,
		renderer: NewRenderer(screen, cat),
		narrator: n,
		src:      src,
	}
}

var _ game.Console = (*Console)(nil)

// Welcome puts the opening banner in the log.
func (c *Console) Welcome() {
	c.append(c.narrator.Welcome())
	c.render(nil, nil, "", "")
}

// ReadInt shows p and reads a number.
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

// Report adds the narration of e to the log and redraws.
func (c *Console) Report(e game.Event) {
	c.append(c.narrator.Event(e))
	c.render(nil, nil, "", "")
}

// Log returns the lines logged so far.
func (c *Console) Log() []narrate.Line {
	return c.log
}

func (c *Console) append(lines []narrate.Line) {
	c.log = append(c.log, lines...)
	if over := len(c.log) - maxLog; over > 0 {
		c.log = c.log[over:]
	}
}

func (c *Console) render(fight *combat.Snapshot, prompt []narrate.Line, question, input string) {
	c.renderer.Render(Frame{
		Graph:    c.src.Graph(),
		Roster:   c.src.Roster(),
		Round:    c.src.Round(),
		Combat:   fight,
		Log:      c.log,
		Prompt:   prompt,
		Question: question,
		Input:    input,
	})
}

// read edits a line until Enter. Cancelling ctx wakes the event loop.
func (c *Console) read(ctx context.Context, p game.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stop := context.AfterFunc(ctx, c.screen.Interrupt)
	defer stop()

	prompt, question := c.narrator.Prompt(p)
	var input []rune
	for {
		c.render(p.Combat, prompt, question, string(input))

		switch ev := c.screen.PollEvent().(type) {
		case nil:
			return "", io.EOF
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return "", err
			}
		case *tcell.EventResize:
			c.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", io.EOF
			case tcell.KeyEnter:
				return strings.TrimSpace(string(input)), nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyRune:
				if len(input) < maxInput {
					input = append(input, ev.Rune())
				}
			}
		}
	}
}
