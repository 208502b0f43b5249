// Package narrate turns game events and prompts into lines of text. It is
// the only place flavor text lives; consoles decide how lines look.
package narrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/game"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

// Tone tells a console how to present a line.
type Tone int

const (
	ToneNormal Tone = iota
	ToneTitle
	ToneInfo
	ToneGood
	ToneBad
	ToneWarn
	ToneDim
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneNormal:
		return "normal"
	case ToneTitle:
		return "title"
	case ToneInfo:
		return "info"
	case ToneGood:
		return "good"
	case ToneBad:
		return "bad"
	case ToneWarn:
		return "warn"
	case ToneDim:
		return "dim"
	default:
		return "unknown"
	}
}

// Line is one line of output.
type Line struct {
	Text string
	Tone Tone
}

func line(t Tone, format string, args ...any) Line {
	return Line{Text: fmt.Sprintf(format, args...), Tone: t}
}

// Narrator describes events using the catalog's names and descriptions.
type Narrator struct {
	cat *gamedata.Catalog
}

// New creates a narrator.
func New(cat *gamedata.Catalog) *Narrator {
	return &Narrator{cat: cat}
}

// Welcome is the banner shown when the program starts.
func (n *Narrator) Welcome() []Line {
	return []Line{
		line(ToneTitle, "OTHERSIDE"),
		line(ToneNormal, "In a quiet town famous for waffles and for bicycles that keep"),
		line(ToneNormal, "going missing, strange portals have begun to open."),
		line(ToneNormal, "Are you ready to explore the Overworld and the Underworld beneath it?"),
	}
}

// Event describes e.
func (n *Narrator) Event(e game.Event) []Line {
	switch e.Kind {
	case game.EventInvalidInput:
		return []Line{line(ToneWarn, "Invalid input: %s.", message(e.Err))}
	case game.EventRejected:
		return []Line{line(ToneWarn, "%s", Reason(e.Err))}

	case game.EventSetupStart:
		return []Line{
			line(ToneTitle, "GAME SETUP"),
			line(ToneNormal, "Seat the players, then build a map of at least %d zones with exactly one %s.",
				e.Count, n.enemyName(world.EnemyBoss)),
		}
	case game.EventPlayerJoined:
		return []Line{
			line(ToneGood, "%s joins the party%s.", e.Player.Name, n.buildSuffix(e.Player.Build)),
			line(ToneNormal, "  %s", stats(e.Player)),
		}
	case game.EventMapGenerated:
		return []Line{line(ToneGood, "Map generated: %d zones in each world.", e.Count)}
	case game.EventZoneInserted:
		return []Line{line(ToneGood, "%s inserted at position %d. The map now has %d zones.",
			n.kindName(e.Pair.Overworld.Kind), e.Position, e.Count)}
	case game.EventZoneDeleted:
		return []Line{line(ToneGood, "Zone %d deleted. The map now has %d zones.", e.Position, e.Count)}
	case game.EventMapView:
		return n.mapView(e)
	case game.EventZoneView:
		return []Line{
			line(ToneTitle, "ZONE %d", e.Position),
			line(ToneNormal, "  Overworld:  %s", n.zoneSummary(e.Pair.Overworld)),
			line(ToneNormal, "  Underworld: %s", n.zoneSummary(e.Pair.Underworld)),
		}
	case game.EventMapInvalid:
		return []Line{
			line(ToneBad, "The map cannot be closed yet."),
			line(ToneWarn, "%s", message(e.Err)),
		}
	case game.EventMapClosed:
		return []Line{
			line(ToneGood, "Map closed with %d zones.", e.Count),
			line(ToneTitle, "SETUP COMPLETE"),
			line(ToneNormal, "Return to the main menu and choose Play."),
		}

	case game.EventAdventureStart:
		return []Line{
			line(ToneTitle, "THE ADVENTURE BEGINS"),
			line(ToneNormal, "Portals hum across town. The path stretches toward the Underworld."),
			line(ToneNormal, "Only by defeating the %s will the town be saved.", n.enemyName(world.EnemyBoss)),
			line(ToneDim, "Everyone starts in the first Overworld zone: %s.", names(e.Lineup)),
		}
	case game.EventRoundStart:
		return []Line{
			line(ToneTitle, "ROUND %d", e.Round),
			line(ToneDim, "Order: %s", names(e.Lineup)),
		}
	case game.EventTurnStart:
		return []Line{line(ToneTitle, "%s, it is your turn", e.Player.Name)}
	case game.EventMoved:
		return []Line{line(ToneInfo, "%s moves from zone %d to zone %d of the %s.",
			e.Player.Name, e.Position, e.Player.Position, e.Player.Realm)}
	case game.EventHazard:
		return []Line{
			line(ToneWarn, "Enemy sighted: %s!", n.enemyName(e.Zone.Enemy)),
			line(ToneNormal, "Your turn ends. You will face it next turn."),
		}
	case game.EventCrossed:
		return n.crossed(e)
	case game.EventEscapeFailed:
		return []Line{
			line(ToneBad, "Escape roll %d against luck %d: the portal refuses to open.", e.Crossing.Roll, e.Player.Luck),
			line(ToneNormal, "You are still in the Underworld with the enemy."),
		}
	case game.EventPlayerInfo:
		return playerInfo(e.Player)
	case game.EventZoneInfo:
		return n.zoneInfo(e)
	case game.EventItemTaken:
		return []Line{line(ToneGood, "Picked up: %s. It goes in pack slot %d.", n.itemName(e.Item), e.Slot+1)}
	case game.EventItemUsed:
		return []Line{line(ToneGood, "%s uses %s. %s", e.Player.Name, n.itemName(e.Item), bonus(e.ItemDef))}
	case game.EventCombat:
		if e.Combat == nil {
			return nil
		}
		return n.Combat(*e.Combat)
	case game.EventEliminated:
		return []Line{
			line(ToneBad, "%s has fallen in battle.", e.Player.Name),
			line(ToneDim, "%d %s left.", e.Count, plural(e.Count, "player", "players")),
		}
	case game.EventPassed:
		return []Line{line(ToneDim, "%s passes.", e.Player.Name)}

	case game.EventVictory:
		return []Line{
			line(ToneTitle, "FINAL VICTORY"),
			line(ToneGood, "With the %s defeated the portals begin to close.", n.enemyName(world.EnemyBoss)),
			line(ToneGood, "%s has saved the town!", e.Player.Name),
		}
	case game.EventGameOver:
		return []Line{
			line(ToneTitle, "GAME OVER"),
			line(ToneBad, "Every player has fallen. The %s still haunts the town.", n.enemyName(world.EnemyBoss)),
			line(ToneNormal, "Maybe next time..."),
		}
	case game.EventCredits:
		return credits(e.Scores)
	case game.EventFarewell:
		return []Line{
			line(ToneTitle, "GOODBYE"),
			line(ToneNormal, "Thanks for playing Otherside."),
		}
	default:
		return []Line{line(ToneDim, "(%s)", e.Kind)}
	}
}

// Reason explains why an action was refused.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrMustFight):
		return "You cannot pass! An enemy is here and you must fight it."
	case errors.Is(err, game.ErrAlreadyMoved):
		return "You already moved this turn. Only one movement per turn."
	case errors.Is(err, game.ErrJustArrived):
		return "You just arrived. You will face the enemy next turn."
	case errors.Is(err, game.ErrNoEnemy):
		return "There is nothing here to fight."
	case errors.Is(err, game.ErrNothingHere):
		return "You look around carefully but find nothing useful."
	case errors.Is(err, game.ErrUnderworldBare):
		return "There is nothing to pick up in the Underworld. Only darkness and danger."
	case errors.Is(err, game.ErrEnemyGuards):
		return "Too dangerous to rummage around with an enemy here. Defeat it first."
	case errors.Is(err, game.ErrNotConfigured):
		return "Set up a game from the main menu first."
	case errors.Is(err, world.ErrBlocked):
		return "An enemy blocks the way. Defeat it before moving."
	case errors.Is(err, world.ErrEndOfPath):
		return "There is no zone in that direction."
	case errors.Is(err, world.ErrEmptyMap):
		return "The map is empty."
	case errors.Is(err, entity.ErrPackFull):
		return "Your pack is full. Use something to make room."
	case errors.Is(err, combat.ErrNotEnoughHP):
		return "Not enough HP for a power attack."
	case errors.Is(err, combat.ErrNoItems):
		return "Your pack is empty."
	case errors.Is(err, entity.ErrEmptySlot):
		return "That pack slot is empty."
	case errors.Is(err, world.ErrCapacity):
		return "The map cannot hold any more zones."
	default:
		return message(err) + "."
	}
}

// =============================================================================
// Combat
// =============================================================================

// Combat describes one step of a fight.
func (n *Narrator) Combat(e combat.Event) []Line {
	switch e.Kind {
	case combat.EventEncounter:
		lines := []Line{line(ToneWarn, "%s faces %s (%d HP).", e.Fighter, e.Enemy, e.EnemyMax)}
		if def := n.cat.Enemy(e.Tier.ID()); def != nil && def.Description != "" {
			lines = append(lines, line(ToneNormal, "%s", def.Description))
		}
		return lines
	case combat.EventStrike:
		lines := []Line{}
		if e.Cost > 0 {
			lines = append(lines, line(ToneDim, "%s pays %d HP to power up.", e.Fighter, e.Cost))
		}
		return append(lines,
			line(ToneInfo, "%s: roll %d against %d, %d damage.", e.Action, e.AttackRoll, e.DefenseRoll, e.Damage),
			line(ToneNormal, "%s has %d/%d HP.", e.Enemy, e.EnemyHP, e.EnemyMax),
		)
	case combat.EventDefend:
		return []Line{line(ToneInfo, "%s braces for the next blow.", e.Fighter)}
	case combat.EventCounter:
		guard := ""
		if e.Defending {
			guard = " against a raised guard"
		}
		return []Line{
			line(ToneWarn, "%s strikes back%s: roll %d against %d, %d damage.", e.Enemy, guard, e.AttackRoll, e.DefenseRoll, e.Damage),
			line(ToneNormal, "%s has %d HP.", e.Fighter, e.FighterHP),
		}
	case combat.EventItemUsed:
		name := "an item"
		if e.Item != nil {
			name = e.Item.Name
		}
		return []Line{line(ToneGood, "%s uses %s mid-fight. %s", e.Fighter, name, bonus(e.Item))}
	case combat.EventRejected:
		return []Line{line(ToneWarn, "%s", Reason(e.Err))}
	case combat.EventEnemyCleared:
		return []Line{line(ToneGood, "%s is defeated and leaves the zone.", e.Enemy)}
	case combat.EventEnemyLingers:
		return []Line{line(ToneInfo, "%s is defeated but lingers in the zone. It will be back at full strength.", e.Enemy)}
	case combat.EventBossDefeated:
		return []Line{line(ToneGood, "The %s collapses!", e.Enemy)}
	case combat.EventPlayerDefeated:
		return []Line{line(ToneBad, "%s falls to %s.", e.Fighter, e.Enemy)}
	default:
		return nil
	}
}

// =============================================================================
// Prompts
// =============================================================================

// Prompt returns the lines shown before asking p and the question itself.
func (n *Narrator) Prompt(p game.Prompt) ([]Line, string) {
	var lines []Line
	switch p.Kind {
	case game.PromptMainMenu:
		lines = append(lines, line(ToneTitle, "MAIN MENU"))
	case game.PromptMapMenu:
		lines = append(lines, line(ToneTitle, "MAP EDITOR"))
	case game.PromptTurnAction:
		lines = append(lines, line(ToneDim, "Actions for %s:", p.Player))
	case game.PromptBuild:
		lines = append(lines, line(ToneDim, "Choose a build for %s:", p.Player))
	case game.PromptCombatAction:
		if c := p.Combat; c != nil {
			lines = append(lines, line(ToneInfo, "%s %d/%d HP vs %s %d/%d HP",
				c.Fighter, c.HP, c.MaxHP, c.Enemy, c.EnemyHP, c.EnemyMax))
		}
	case game.PromptZoneKind:
		lines = append(lines, line(ToneDim, "Zone archetypes:"))
	}

	for _, o := range p.Options {
		label := o.Label
		if p.Kind == game.PromptZoneKind {
			label = n.kindName(world.Kind(o.Value))
		}
		if o.Disabled {
			lines = append(lines, line(ToneDim, "  %d) %s (unavailable)", o.Value, label))
			continue
		}
		lines = append(lines, line(ToneNormal, "  %d) %s", o.Value, label))
	}
	if p.Kind == game.PromptBuild {
		for i, b := range n.cat.Builds.All() {
			if i < len(lines)-1 {
				lines[i+1].Text += " - " + b.Description
			}
		}
	}

	return lines, question(p)
}

func question(p game.Prompt) string {
	span := fmt.Sprintf("(%d-%d)", p.Min, p.Max)
	switch p.Kind {
	case game.PromptPlayerCount:
		return "How many players? " + span
	case game.PromptPlayerName:
		return fmt.Sprintf("Name for %s (blank keeps it):", p.Player)
	case game.PromptPosition:
		return "Position " + span + ":"
	case game.PromptZoneKind:
		return "Archetype " + span + ":"
	case game.PromptEnemy:
		return "Enemy " + span + ":"
	case game.PromptItem:
		return "Item " + span + ":"
	case game.PromptRealm:
		return "Which world? " + span
	case game.PromptPackSlot:
		return "Pack slot " + span + ":"
	case game.PromptCombatAction:
		return "Your move " + span + ":"
	default:
		return "Choose " + span + ":"
	}
}

// =============================================================================
// Helpers
// =============================================================================

func (n *Narrator) mapView(e game.Event) []Line {
	lines := []Line{line(ToneTitle, "%s (%d zones)", strings.ToUpper(e.Realm.String()), len(e.Zones))}
	for i, z := range e.Zones {
		lines = append(lines, line(ToneNormal, "%3d. %s", i+1, n.zoneSummary(z)))
	}
	return lines
}

func (n *Narrator) zoneSummary(z world.Zone) string {
	s := fmt.Sprintf("%-16s enemy: %-12s", n.kindName(z.Kind), n.enemyName(z.Enemy))
	if z.Realm == world.Overworld {
		s += " item: " + n.itemName(z.Item)
	}
	return strings.TrimRight(s, " ")
}

func (n *Narrator) zoneInfo(e game.Event) []Line {
	z := e.Zone
	lines := []Line{line(ToneTitle, "%s, zone %d: %s", e.Realm, e.Position, n.kindName(z.Kind))}
	if def := n.cat.Zone(z.Kind.ID()); def != nil {
		desc := def.Description
		if e.Realm == world.Underworld && def.Underworld != "" {
			desc = def.Underworld
		}
		lines = append(lines, line(ToneDim, "%s", desc))
	}
	if z.HasEnemy() {
		lines = append(lines, line(ToneWarn, "Enemy: %s", n.enemyName(z.Enemy)))
	} else {
		lines = append(lines, line(ToneNormal, "No enemies in sight."))
	}
	if e.Realm == world.Overworld {
		lines = append(lines, line(ToneNormal, "Item: %s", n.itemName(z.Item)))
	}
	return lines
}

func (n *Narrator) crossed(e game.Event) []Line {
	lines := []Line{}
	if e.Crossing.Rolled {
		lines = append(lines, line(ToneGood, "Escape roll %d against luck %d: the portal opens!", e.Crossing.Roll, e.Player.Luck))
	}
	if e.Crossing.To.Realm == world.Underworld {
		lines = append(lines, line(ToneInfo, "%s steps through the portal into the Underworld. The air turns cold.", e.Player.Name))
	} else {
		lines = append(lines, line(ToneInfo, "%s climbs back into the Overworld.", e.Player.Name))
	}
	return lines
}

func playerInfo(p game.PlayerView) []Line {
	lines := []Line{
		line(ToneTitle, "%s", p.Name),
		line(ToneNormal, "World: %s, zone %d", p.Realm, p.Position),
		line(ToneNormal, "%s", stats(p)),
	}
	for i, it := range p.Pack {
		lines = append(lines, line(ToneDim, "  Slot %d: %s", i+1, it))
	}
	return lines
}

func stats(p game.PlayerView) string {
	return fmt.Sprintf("Attack %d | Defense %d | Luck %d | HP %d/%d", p.Attack, p.Defense, p.Luck, p.HP, p.MaxHP)
}

func credits(s game.Scores) []Line {
	lines := []Line{
		line(ToneTitle, "CREDITS"),
		line(ToneNormal, "Otherside, a two-world adventure."),
		line(ToneNormal, "Games played: %d", s.Played),
		line(ToneNormal, "Recent winners:"),
	}
	if len(s.Winners) == 0 {
		return append(lines, line(ToneDim, "  nobody yet"))
	}
	for i, w := range s.Winners {
		lines = append(lines, line(ToneGood, "  %d. %s", i+1, w.Name))
	}
	return lines
}

func bonus(def *gamedata.ItemDef) string {
	if def == nil {
		return ""
	}
	var parts []string
	for _, b := range []struct {
		n    int
		stat string
	}{{def.Attack, "attack"}, {def.Defense, "defense"}, {def.Luck, "luck"}} {
		if b.n != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", b.n, b.stat))
		}
	}
	if len(parts) == 0 {
		return def.Description
	}
	return strings.Join(parts, ", ") + "."
}

func names(views []game.PlayerView) string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Name
	}
	return strings.Join(out, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (n *Narrator) buildSuffix(id string) string {
	if def := n.cat.Build(id); def != nil {
		return " as " + def.Name
	}
	return ""
}

func (n *Narrator) kindName(k world.Kind) string {
	if def := n.cat.Zone(k.ID()); def != nil {
		return def.Name
	}
	return k.String()
}

func (n *Narrator) enemyName(e world.Enemy) string {
	if e == world.EnemyNone {
		return "none"
	}
	if def := n.cat.Enemy(e.ID()); def != nil {
		return def.Name
	}
	return e.String()
}

func (n *Narrator) itemName(i world.Item) string {
	if def := n.cat.Item(i.ID()); def != nil {
		return def.Name
	}
	return i.String()
}
