package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/narrate"
	"github.com/samdwyer/otherside/internal/world"
)

// Layout rows.
const (
	rowTitle      = 0
	rowOverworld  = 2
	rowUnderworld = 3
	rowStatus     = 5
	rowCombat     = rowStatus + entity.MaxPlayers
	rowLog        = rowCombat + 1
	stripIndent   = 12
)

// Frame is everything drawn in one pass.
type Frame struct {
	Graph  *world.Graph
	Roster *entity.Roster
	Round  int
	Combat *combat.Snapshot

	Log      []narrate.Line
	Prompt   []narrate.Line
	Question string
	Input    string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	cat    *gamedata.Catalog
	tones  map[narrate.Tone]tcell.Style
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, cat *gamedata.Catalog) *Renderer {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return &Renderer{
		screen: screen,
		cat:    cat,
		tones: map[narrate.Tone]tcell.Style{
			narrate.ToneNormal: base.Foreground(tcell.ColorWhite),
			narrate.ToneTitle:  base.Foreground(tcell.ColorFuchsia).Bold(true),
			narrate.ToneInfo:   base.Foreground(tcell.ColorLightSkyBlue),
			narrate.ToneGood:   base.Foreground(tcell.ColorGreen),
			narrate.ToneBad:    base.Foreground(tcell.ColorRed),
			narrate.ToneWarn:   base.Foreground(tcell.ColorOrange),
			narrate.ToneDim:    base.Foreground(tcell.ColorGray),
		},
	}
}

// Render draws f.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()

	title := " OTHERSIDE"
	if f.Round > 0 {
		title += fmt.Sprintf("  round %d", f.Round)
	}
	bar := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite).Bold(true)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, rowTitle, ' ', bar)
	}
	r.screen.DrawText(0, rowTitle, title, bar)

	if f.Graph != nil {
		r.renderStrip(f.Graph, f.Roster, world.Overworld, rowOverworld)
		r.renderStrip(f.Graph, f.Roster, world.Underworld, rowUnderworld)
	}
	if f.Roster != nil {
		r.renderStatus(f.Graph, f.Roster)
	}
	if f.Combat != nil {
		r.renderCombat(*f.Combat)
	}

	// The prompt and input sit at the bottom; the log fills what is left.
	bottom := h - 2 - len(f.Prompt)
	r.renderLog(f.Log, rowLog, bottom)
	for i, l := range f.Prompt {
		r.screen.DrawText(0, bottom+i, l.Text, r.tones[l.Tone])
	}
	if f.Question != "" {
		r.screen.DrawText(0, h-2, f.Question, r.tones[narrate.ToneTitle])
		x := r.screen.DrawText(0, h-1, "> "+f.Input, r.tones[narrate.ToneGood])
		r.screen.SetContent(x, h-1, '_', r.tones[narrate.ToneDim])
	}

	r.screen.Show()
}

func (r *Renderer) renderStrip(g *world.Graph, roster *entity.Roster, realm world.Realm, y int) {
	label := r.tones[narrate.ToneDim]
	r.screen.DrawText(0, y, realm.String(), label)

	here := r.occupants(g, roster, realm)
	w, _ := r.screen.Size()
	for i, z := range g.Zones(realm) {
		x := stripIndent + i
		if x >= w {
			break
		}
		ch, style := r.zoneCell(z)
		if slot, ok := here[i+1]; ok {
			ch = rune('1' + slot)
			style = style.Reverse(true).Bold(true)
		}
		r.screen.SetContent(x, y, ch, style)
	}
}

// occupants maps 1-based positions in realm to the lowest slot standing there.
func (r *Renderer) occupants(g *world.Graph, roster *entity.Roster, realm world.Realm) map[int]int {
	out := make(map[int]int)
	if roster == nil {
		return out
	}
	for _, slot := range roster.Living() {
		pos := roster.Get(slot).Position()
		if !pos.Placed() || pos.Realm != realm {
			continue
		}
		idx := g.Index(pos)
		if _, taken := out[idx]; !taken && idx > 0 {
			out[idx] = slot
		}
	}
	return out
}

// zoneCell picks the glyph for a zone: the enemy if one is there, otherwise
// the archetype. Overworld zones holding an item are underlined.
func (r *Renderer) zoneCell(z world.Zone) (rune, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	ch := '.'
	if def := r.cat.Zone(z.Kind.ID()); def != nil {
		ch = def.GlyphRune()
		style = style.Foreground(def.TCellColor())
	}
	if z.HasEnemy() {
		if def := r.cat.Enemy(z.Enemy.ID()); def != nil {
			ch = def.GlyphRune()
			style = style.Foreground(def.TCellColor()).Bold(true)
		}
	}
	if z.Item != world.ItemNone {
		style = style.Underline(true)
	}
	return ch, style
}

func (r *Renderer) renderStatus(g *world.Graph, roster *entity.Roster) {
	y := rowStatus
	for slot := 0; slot < entity.MaxPlayers; slot++ {
		p := roster.Get(slot)
		if p == nil {
			continue
		}
		where := "not placed"
		if pos := p.Position(); pos.Placed() && g != nil {
			where = fmt.Sprintf("%s %d", pos.Realm, g.Index(pos))
		}
		text := fmt.Sprintf("%d %-14s HP %3d/%-3d ATK %2d DEF %2d LCK %2d  [%s]  %s",
			slot+1, p.Name, p.HP, p.MaxHP, p.Attack, p.Defense, p.Luck, r.pack(p), where)
		tone := narrate.ToneNormal
		if p.HP*4 <= p.MaxHP {
			tone = narrate.ToneBad
		}
		r.screen.DrawText(0, y, text, r.tones[tone])
		y++
	}
}

// pack shows one glyph per slot, '-' for an empty one.
func (r *Renderer) pack(p *entity.Player) string {
	out := make([]rune, len(p.Pack))
	for i, item := range p.Pack {
		out[i] = '-'
		if item == world.ItemNone {
			continue
		}
		if def := r.cat.Item(item.ID()); def != nil {
			out[i] = def.GlyphRune()
		}
	}
	return string(out)
}

// renderCombat draws the foe in its own colour beside both health bars.
func (r *Renderer) renderCombat(s combat.Snapshot) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.SetContent(0, rowCombat, s.EnemyGlyph, base.Foreground(s.EnemyColor).Bold(true))
	text := fmt.Sprintf(" %s HP %d/%d  vs  %s HP %d/%d  round %d",
		s.Enemy, s.EnemyHP, s.EnemyMax, s.Fighter, s.HP, s.MaxHP, s.Round)
	r.screen.DrawText(1, rowCombat, text, r.tones[narrate.ToneWarn])
}

func (r *Renderer) renderLog(log []narrate.Line, top, bottom int) {
	rows := bottom - top
	if rows <= 0 {
		return
	}
	if len(log) > rows {
		log = log[len(log)-rows:]
	}
	for i, l := range log {
		r.screen.DrawText(0, top+i, l.Text, r.tones[l.Tone])
	}
}
