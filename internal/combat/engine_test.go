package combat

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/otherside/internal/dice/dicetest"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

var errScriptDone = errors.New("script exhausted")

type fakeSite struct {
	enemy   world.Enemy
	cleared bool
}

func (s *fakeSite) Enemy() world.Enemy { return s.enemy }
func (s *fakeSite) ClearEnemy() {
	s.enemy = world.EnemyNone
	s.cleared = true
}

// scriptedController plays a fixed list of actions and item slots.
type scriptedController struct {
	actions   []Action
	items     []int
	events    []Event
	snaps     []Snapshot
	itemCalls int
}

func (c *scriptedController) ChooseAction(ctx context.Context, s Snapshot) (Action, error) {
	c.snaps = append(c.snaps, s)
	if len(c.actions) == 0 {
		return 0, errScriptDone
	}
	a := c.actions[0]
	c.actions = c.actions[1:]
	return a, nil
}

func (c *scriptedController) ChooseItem(ctx context.Context, s Snapshot) (int, error) {
	c.itemCalls++
	if len(c.items) == 0 {
		return 0, errScriptDone
	}
	slot := c.items[0]
	c.items = c.items[1:]
	return slot, nil
}

func (c *scriptedController) Observe(e Event) { c.events = append(c.events, e) }

func (c *scriptedController) kinds() []EventKind {
	out := make([]EventKind, len(c.events))
	for i, e := range c.events {
		out[i] = e.Kind
	}
	return out
}

func (c *scriptedController) find(kind EventKind) (Event, bool) {
	for _, e := range c.events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

func equalKinds(a, b []EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestEngine(rolls ...int) (*Engine, *dicetest.Sequence) {
	rng := dicetest.NewSequence(rolls...)
	return NewEngine(rng, gamedata.MustLoadCatalog()), rng
}

func TestResolveNoEnemy(t *testing.T) {
	eng, rng := newTestEngine()
	ctl := &scriptedController{}
	p := entity.NewPlayer("Mike", 10, 10, 10)

	res, err := eng.Resolve(context.Background(), p, &fakeSite{}, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != NoEnemy {
		t.Errorf("Outcome = %v, want NoEnemy", res.Outcome)
	}
	if len(ctl.events) != 0 || rng.Calls != 0 {
		t.Errorf("empty zone produced %d events and %d rolls", len(ctl.events), rng.Calls)
	}
}

func TestVictoryClearsOrLingers(t *testing.T) {
	tests := []struct {
		name        string
		clearRoll   int
		wantCleared bool
		wantLast    EventKind
	}{
		{"cleared", 10, true, EventEnemyCleared},
		{"lingers", 80, false, EventEnemyLingers},
		{"boundary lingers", 50, false, EventEnemyLingers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// (30+20) - (3+1) = 46 kills the 20 HP weak enemy outright.
			eng, rng := newTestEngine(20, 1, tt.clearRoll)
			ctl := &scriptedController{actions: []Action{ActionAttack}}
			site := &fakeSite{enemy: world.EnemyWeak}
			p := entity.NewPlayer("Dustin", 30, 10, 10)

			res, err := eng.Resolve(context.Background(), p, site, ctl)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if res.Outcome != Victory || res.Cleared != tt.wantCleared || res.Rounds != 1 {
				t.Errorf("Result = %+v", res)
			}
			if site.cleared != tt.wantCleared {
				t.Errorf("site cleared = %v, want %v", site.cleared, tt.wantCleared)
			}
			want := []EventKind{EventEncounter, EventStrike, tt.wantLast}
			if got := ctl.kinds(); !equalKinds(got, want) {
				t.Errorf("events = %v, want %v", got, want)
			}
			strike, _ := ctl.find(EventStrike)
			if strike.Damage != 20 || strike.EnemyHP != 0 {
				t.Errorf("strike = %+v", strike)
			}
			if p.HP != entity.StartingHP {
				t.Errorf("player took damage after a killing blow: HP %d", p.HP)
			}
			if rng.Remaining() != 0 {
				t.Errorf("%d rolls unused", rng.Remaining())
			}
		})
	}
}

func TestBossVictory(t *testing.T) {
	eng, rng := newTestEngine(20, 1)
	ctl := &scriptedController{actions: []Action{ActionAttack}}
	site := &fakeSite{enemy: world.EnemyBoss}
	p := entity.NewPlayer("Eleven", 60, 10, 10)

	res, err := eng.Resolve(context.Background(), p, site, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != BossVictory || res.Enemy != "Demotorzone" {
		t.Errorf("Result = %+v, want BossVictory against Demotorzone", res)
	}
	if _, ok := ctl.find(EventBossDefeated); !ok {
		t.Error("no boss defeated event")
	}
	if rng.Calls != 2 {
		t.Errorf("boss victory drew %d values, want 2", rng.Calls)
	}
}

func TestCounterDefeatsPlayer(t *testing.T) {
	// Attack misses: (1+1) - (5+20). Counter: (8+20) - (1+1) = 26.
	eng, _ := newTestEngine(1, 20, 20, 1)
	ctl := &scriptedController{actions: []Action{ActionAttack}}
	site := &fakeSite{enemy: world.EnemyMedium}
	p := entity.NewPlayer("Bob", 1, 1, 1)
	p.HP = 5

	res, err := eng.Resolve(context.Background(), p, site, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != Defeat || res.Rounds != 1 {
		t.Errorf("Result = %+v, want Defeat in round 1", res)
	}
	if p.IsAlive() {
		t.Error("player survived a lethal counter")
	}
	want := []EventKind{EventEncounter, EventStrike, EventCounter, EventPlayerDefeated}
	if got := ctl.kinds(); !equalKinds(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if site.cleared {
		t.Error("defeat cleared the enemy")
	}
}

func TestPowerAttackNeedsHP(t *testing.T) {
	eng, rng := newTestEngine(20, 1, 0)
	ctl := &scriptedController{actions: []Action{ActionPowerAttack, ActionAttack}}
	site := &fakeSite{enemy: world.EnemyWeak}
	p := entity.NewPlayer("Will", 10, 10, 10)
	p.HP = 3

	res, err := eng.Resolve(context.Background(), p, site, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != Victory {
		t.Errorf("Outcome = %v, want Victory", res.Outcome)
	}
	rej, ok := ctl.find(EventRejected)
	if !ok || !errors.Is(rej.Err, ErrNotEnoughHP) || rej.Phase != PhasePlayerTurn {
		t.Errorf("rejection = %+v, %v", rej, ok)
	}
	if p.HP != 3 {
		t.Errorf("HP = %d, rejected power attack must not cost HP", p.HP)
	}
	if rng.Calls != 3 {
		t.Errorf("drew %d values, want 3", rng.Calls)
	}
}

func TestPowerAttackPaysAndScales(t *testing.T) {
	eng, _ := newTestEngine(
		10, 1, // power: (16+10) - (5+1) = 20
		1, 20, // counter misses
		20, 1, // attack: (11+20) - (5+1) = 25 finishes the 35 HP enemy
		99, // lingers
	)
	ctl := &scriptedController{actions: []Action{ActionPowerAttack, ActionAttack}}
	site := &fakeSite{enemy: world.EnemyMedium}
	p := entity.NewPlayer("Lucas", 11, 10, 10)

	res, err := eng.Resolve(context.Background(), p, site, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != Victory || res.Rounds != 2 || res.Cleared {
		t.Errorf("Result = %+v", res)
	}
	strike, _ := ctl.find(EventStrike)
	if strike.Cost != 3 || strike.Damage != 20 || strike.Action != ActionPowerAttack {
		t.Errorf("power strike = %+v", strike)
	}
	if p.HP != entity.StartingHP-3 {
		t.Errorf("HP = %d, want %d", p.HP, entity.StartingHP-3)
	}
}

func TestDefendBonusLastsOneCounter(t *testing.T) {
	eng, _ := newTestEngine(
		20, 1, // counter vs defend: (5+20) - (10+5+1) = 9
		1, 20, // attack misses
		20, 1, // counter: (5+20) - (10+1) = 14
	)
	ctl := &scriptedController{actions: []Action{ActionDefend, ActionAttack}}
	site := &fakeSite{enemy: world.EnemyWeak}
	p := entity.NewPlayer("Nancy", 1, 10, 10)

	_, err := eng.Resolve(context.Background(), p, site, ctl)
	if !errors.Is(err, errScriptDone) {
		t.Fatalf("Resolve() error = %v, want the controller error", err)
	}

	var counters []Event
	for _, e := range ctl.events {
		if e.Kind == EventCounter {
			counters = append(counters, e)
		}
	}
	if len(counters) != 2 {
		t.Fatalf("got %d counters, want 2", len(counters))
	}
	if counters[0].Damage != 9 || !counters[0].Defending {
		t.Errorf("first counter = %+v, want 9 damage while defending", counters[0])
	}
	if counters[1].Damage != 14 || counters[1].Defending {
		t.Errorf("second counter = %+v, want 14 damage without bonus", counters[1])
	}
	if p.Defense != 10 {
		t.Errorf("Defense = %d, defend must not change the stat", p.Defense)
	}
	if p.HP != entity.StartingHP-23 {
		t.Errorf("HP = %d, want %d", p.HP, entity.StartingHP-23)
	}
}

func TestUseItemDoesNotConsumeTurn(t *testing.T) {
	eng, rng := newTestEngine(10, 1, 0)
	ctl := &scriptedController{
		actions: []Action{ActionUseItem, ActionAttack},
		items:   []int{0},
	}
	site := &fakeSite{enemy: world.EnemyWeak}
	p := entity.NewPlayer("Steve", 10, 10, 10)
	_, _ = p.PickUp(world.ItemHellfireShirt)

	res, err := eng.Resolve(context.Background(), p, site, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != Victory {
		t.Errorf("Outcome = %v, want Victory", res.Outcome)
	}
	used, ok := ctl.find(EventItemUsed)
	if !ok || used.Item == nil || used.Item.ID != "hellfire_shirt" {
		t.Errorf("item event = %+v, %v", used, ok)
	}
	if p.Attack != 15 {
		t.Errorf("Attack = %d, want 15", p.Attack)
	}
	if _, countered := ctl.find(EventCounter); countered {
		t.Error("enemy countered after an item use")
	}
	if rng.Calls != 3 {
		t.Errorf("drew %d values, want 3", rng.Calls)
	}
}

func TestUseItemRejections(t *testing.T) {
	t.Run("empty pack", func(t *testing.T) {
		eng, _ := newTestEngine(20, 1, 0)
		ctl := &scriptedController{actions: []Action{ActionUseItem, ActionAttack}}
		p := entity.NewPlayer("Max", 30, 10, 10)

		if _, err := eng.Resolve(context.Background(), p, &fakeSite{enemy: world.EnemyWeak}, ctl); err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		rej, ok := ctl.find(EventRejected)
		if !ok || !errors.Is(rej.Err, ErrNoItems) {
			t.Errorf("rejection = %+v", rej)
		}
		if ctl.itemCalls != 0 {
			t.Error("asked for a slot with an empty pack")
		}
	})

	t.Run("empty slot", func(t *testing.T) {
		eng, _ := newTestEngine(20, 1, 0)
		ctl := &scriptedController{
			actions: []Action{ActionUseItem, ActionAttack},
			items:   []int{2},
		}
		p := entity.NewPlayer("Max", 30, 10, 10)
		_, _ = p.PickUp(world.ItemCompass)

		if _, err := eng.Resolve(context.Background(), p, &fakeSite{enemy: world.EnemyWeak}, ctl); err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		rej, ok := ctl.find(EventRejected)
		if !ok || !errors.Is(rej.Err, entity.ErrEmptySlot) {
			t.Errorf("rejection = %+v", rej)
		}
		if p.Pack[0] != world.ItemCompass {
			t.Error("rejected use consumed another slot")
		}
	})
}

func TestResolveUnknownTier(t *testing.T) {
	eng, _ := newTestEngine()
	_, err := eng.Resolve(context.Background(), entity.NewPlayer("x", 1, 1, 1), &fakeSite{enemy: world.Enemy(9)}, &scriptedController{})
	if !errors.Is(err, ErrUnknownEnemy) {
		t.Errorf("Resolve() error = %v, want ErrUnknownEnemy", err)
	}
}

func TestActionTurnUseFollowsCatalog(t *testing.T) {
	cat := gamedata.MustLoadCatalog()
	cat.Action(ActionDefend.ID()).ConsumesTurn = false
	cat.Action(ActionAttack.ID()).PowerPercent = 200

	// (10*2 + 10) - (3+1) = 26 kills the 20 HP weak enemy.
	rng := dicetest.NewSequence(10, 1, 10)
	eng := NewEngine(rng, cat)
	ctl := &scriptedController{actions: []Action{ActionDefend, ActionAttack}}
	p := entity.NewPlayer("Eleven", 10, 10, 10)

	res, err := eng.Resolve(context.Background(), p, &fakeSite{enemy: world.EnemyWeak}, ctl)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Outcome != Victory || res.Rounds != 1 {
		t.Errorf("Result = %+v, want Victory in round 1", res)
	}
	want := []EventKind{EventEncounter, EventDefend, EventStrike, EventEnemyCleared}
	if got := ctl.kinds(); !equalKinds(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if strike, _ := ctl.find(EventStrike); strike.Damage != 20 {
		t.Errorf("strike damage = %d, want 20 (capped at enemy HP)", strike.Damage)
	}
}

func TestSnapshotShowsEnemyGlyph(t *testing.T) {
	eng, _ := newTestEngine()
	ctl := &scriptedController{}
	p := entity.NewPlayer("Max", 10, 10, 10)

	if _, err := eng.Resolve(context.Background(), p, &fakeSite{enemy: world.EnemyMedium}, ctl); !errors.Is(err, errScriptDone) {
		t.Fatalf("Resolve() error = %v, want script exhausted", err)
	}
	if len(ctl.snaps) != 1 {
		t.Fatalf("ChooseAction called %d times, want 1", len(ctl.snaps))
	}
	def := gamedata.MustLoadCatalog().Enemy(world.EnemyMedium.ID())
	snap := ctl.snaps[0]
	if snap.EnemyGlyph != def.GlyphRune() || snap.EnemyColor != def.TCellColor() {
		t.Errorf("Snapshot glyph = %q %v, want %q %v", snap.EnemyGlyph, snap.EnemyColor, def.GlyphRune(), def.TCellColor())
	}
	if snap.EnemyHP != def.HP || snap.Tier != world.EnemyMedium {
		t.Errorf("Snapshot = %+v", snap)
	}
}
