package game

import (
	"context"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/world"
)

// consoleController lets the player at a console drive a fight.
type consoleController struct {
	s    *Session
	con  Console
	slot int
}

// ChooseAction asks for one of the four combat actions.
func (c *consoleController) ChooseAction(ctx context.Context, snap combat.Snapshot) (combat.Action, error) {
	n, err := ask(ctx, c.con, combatPrompt(snap))
	if err != nil {
		return 0, err
	}
	return ParseCombatAction(n)
}

// ChooseItem asks which pack slot to use.
func (c *consoleController) ChooseItem(ctx context.Context, snap combat.Snapshot) (int, error) {
	p := c.s.roster.Get(c.slot)
	if p == nil {
		return 0, invalidOperation("use item", combat.ErrNoItems)
	}
	pr := packPrompt(p)
	pr.Combat = &snap
	n, err := ask(ctx, c.con, pr)
	if err != nil {
		return 0, err
	}
	return ParsePackSlot(n)
}

// Observe forwards a combat step to the console.
func (c *consoleController) Observe(e combat.Event) {
	c.con.Report(Event{
		Kind:   EventCombat,
		Round:  c.s.round,
		Player: c.s.view(c.slot),
		Realm:  c.zoneRealm(),
		Combat: &e,
	})
}

func (c *consoleController) zoneRealm() world.Realm {
	if p := c.s.roster.Get(c.slot); p != nil {
		return p.Position().Realm
	}
	return world.Overworld
}

func combatPrompt(snap combat.Snapshot) Prompt {
	p := Prompt{Kind: PromptCombatAction, Min: 1, Max: 4, Player: snap.Fighter, Combat: &snap}
	for _, a := range []combat.Action{combat.ActionAttack, combat.ActionPowerAttack, combat.ActionDefend, combat.ActionUseItem} {
		p.Options = append(p.Options, Option{Value: int(a) + 1, Label: a.String()})
	}
	return p
}

var _ combat.Controller = (*consoleController)(nil)
