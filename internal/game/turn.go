package game

import (
	"context"
	"errors"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/world"
)

// Turn is the state of one player's turn.
type Turn struct {
	slot   int
	player *entity.Player

	enemyAtStart bool // The zone was occupied when the turn began
	moved        bool // The one movement has been used
	hazard       bool // Moved into an occupied zone
	won          bool // Beat a non-boss enemy this turn
	ended        bool
	actions      int
}

// Slot returns the roster slot of the acting player.
func (t *Turn) Slot() int { return t.slot }

// Moved reports whether the movement for this turn is spent.
func (t *Turn) Moved() bool { return t.moved }

// Ended reports whether the turn is over.
func (t *Turn) Ended() bool { return t.ended }

// BeginTurn starts the turn of the player in slot.
func (s *Session) BeginTurn(slot int) (*Turn, error) {
	p := s.roster.Get(slot)
	if p == nil {
		return nil, invalidOperation("begin turn", entity.ErrInvalidSlot)
	}
	return &Turn{
		slot:         slot,
		player:       p,
		enemyAtStart: s.graph.HasEnemy(p),
	}, nil
}

// Act performs one action of a turn. A refused action returns an *Error
// and leaves the turn open; console failures are returned as they are.
func (s *Session) Act(ctx context.Context, con Console, t *Turn, a TurnAction) error {
	if t.ended {
		return invalidOperation("act", errors.New("turn is over"))
	}
	t.actions++

	switch a {
	case ActionAdvance, ActionRetreat:
		return s.step(con, t, a == ActionAdvance)
	case ActionCrossWorld:
		return s.cross(con, t)
	case ActionFight:
		return s.fight(ctx, con, t)
	case ActionInfo:
		con.Report(Event{Kind: EventPlayerInfo, Player: s.view(t.slot)})
		return nil
	case ActionViewZone:
		s.reportZone(con, t)
		return nil
	case ActionPickUp:
		return s.pickUp(con, t)
	case ActionUseItem:
		return s.useItem(ctx, con, t)
	case ActionPass:
		return s.pass(con, t)
	default:
		return invalidInput("unknown action")
	}
}

func (s *Session) step(con Console, t *Turn, forward bool) error {
	if t.moved {
		return invalidOperation("move", ErrAlreadyMoved)
	}
	p := t.player
	from := s.graph.Index(p.Position())

	var err error
	if forward {
		err = s.graph.Advance(p)
	} else {
		err = s.graph.Retreat(p)
	}
	if err != nil {
		return Classify("move", err)
	}

	t.moved = true
	con.Report(Event{Kind: EventMoved, Player: s.view(t.slot), Position: from})
	s.arrive(con, t)
	return nil
}

func (s *Session) cross(con Console, t *Turn) error {
	if t.moved {
		return invalidOperation("cross", ErrAlreadyMoved)
	}
	p := t.player
	// CrossWorld itself never checks for enemies. The turn rules refuse the
	// way down past one; the way up stays open as an escape.
	if p.Position().Realm == world.Overworld && s.graph.HasEnemy(p) {
		return invalidOperation("cross", world.ErrBlocked)
	}

	c, err := s.graph.CrossWorld(p)
	switch {
	case errors.Is(err, world.ErrEscapeFailed):
		t.moved = true
		con.Report(Event{Kind: EventEscapeFailed, Player: s.view(t.slot), Crossing: c})
		return nil
	case err != nil:
		return Classify("cross", err)
	}

	t.moved = true
	con.Report(Event{Kind: EventCrossed, Player: s.view(t.slot), Crossing: c})
	s.arrive(con, t)
	return nil
}

// arrive ends the turn when the player walked into an occupied zone.
func (s *Session) arrive(con Console, t *Turn) {
	if !s.graph.HasEnemy(t.player) {
		return
	}
	t.hazard = true
	t.ended = true
	z, _ := s.graph.Zone(t.player.Position())
	con.Report(Event{Kind: EventHazard, Player: s.view(t.slot), Zone: z, Realm: z.Realm})
}

func (s *Session) fight(ctx context.Context, con Console, t *Turn) error {
	if t.hazard {
		return invalidOperation("fight", ErrJustArrived)
	}
	p := t.player
	if !s.graph.HasEnemy(p) {
		return invalidOperation("fight", ErrNoEnemy)
	}

	ctl := &consoleController{s: s, con: con, slot: t.slot}
	res, err := s.engine.Resolve(ctx, p, s.graph.Site(p.Position()), ctl)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case combat.Victory:
		t.won = true
	case combat.BossVictory:
		s.win(con, t)
	case combat.Defeat:
		s.eliminate(con, t)
	}
	return nil
}

func (s *Session) reportZone(con Console, t *Turn) {
	pos := t.player.Position()
	z, _ := s.graph.Zone(pos)
	con.Report(Event{
		Kind:     EventZoneInfo,
		Player:   s.view(t.slot),
		Zone:     z,
		Realm:    pos.Realm,
		Position: s.graph.Index(pos),
	})
}

func (s *Session) pickUp(con Console, t *Turn) error {
	p := t.player
	pos := p.Position()
	if pos.Realm == world.Underworld {
		return invalidOperation("pick up", ErrUnderworldBare)
	}
	if s.graph.HasEnemy(p) {
		return invalidOperation("pick up", ErrEnemyGuards)
	}
	z, ok := s.graph.Zone(pos)
	if !ok {
		return Classify("pick up", world.ErrNotPlaced)
	}
	if z.Item == world.ItemNone {
		return invalidOperation("pick up", ErrNothingHere)
	}
	if p.PackFull() {
		return Classify("pick up", entity.ErrPackFull)
	}

	item, err := s.graph.TakeItem(pos)
	if err != nil {
		return Classify("pick up", err)
	}
	slot, err := p.PickUp(item)
	if err != nil {
		return Classify("pick up", err)
	}
	con.Report(Event{Kind: EventItemTaken, Player: s.view(t.slot), Item: item, Slot: slot})
	return nil
}

func (s *Session) useItem(ctx context.Context, con Console, t *Turn) error {
	p := t.player
	if !p.HasItems() {
		return invalidOperation("use item", combat.ErrNoItems)
	}
	n, err := ask(ctx, con, packPrompt(p))
	if err != nil {
		return err
	}
	slot, _ := ParsePackSlot(n)
	item := p.Pack[slot]
	def, err := p.Use(slot, s.catalog)
	if err != nil {
		return Classify("use item", err)
	}
	con.Report(Event{Kind: EventItemUsed, Player: s.view(t.slot), Item: item, ItemDef: def, Slot: slot})
	return nil
}

func (s *Session) pass(con Console, t *Turn) error {
	if t.enemyAtStart && !t.won && s.graph.HasEnemy(t.player) {
		return invalidOperation("pass", ErrMustFight)
	}
	t.ended = true
	con.Report(Event{Kind: EventPassed, Player: s.view(t.slot)})
	return nil
}

func (s *Session) win(con Console, t *Turn) {
	t.ended = true
	s.state = StateWon
	s.scores.RecordWin(t.player.Name, s.id)
	con.Report(Event{Kind: EventVictory, Session: s.id, Round: s.round, Player: s.view(t.slot), Scores: s.scores.Scores()})
}

// eliminate removes a fallen player. Their slot stays empty for the rest
// of the game.
func (s *Session) eliminate(con Console, t *Turn) {
	fallen := s.view(t.slot)
	s.roster.Remove(t.slot)
	t.ended = true
	con.Report(Event{Kind: EventEliminated, Round: s.round, Player: fallen, Count: s.roster.Count()})
}

func packPrompt(p *entity.Player) Prompt {
	pr := Prompt{Kind: PromptPackSlot, Min: 1, Max: entity.PackSize, Player: p.Name}
	for i, it := range p.Pack {
		pr.Options = append(pr.Options, Option{
			Value:    i + 1,
			Label:    it.String(),
			Disabled: it == world.ItemNone,
		})
	}
	return pr
}

func turnPrompt(name string) Prompt {
	p := menuPrompt(PromptTurnAction,
		"Advance",
		"Retreat",
		"Cross to the other world",
		"Fight",
		"Show your stats",
		"Look around",
		"Pick up the item",
		"Use an item",
		"Pass",
	)
	p.Player = name
	return p
}
