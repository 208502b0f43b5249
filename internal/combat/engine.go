package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/telemetry"
	"github.com/samdwyer/otherside/internal/world"
)

// Controller supplies the player's choices and receives every event.
type Controller interface {
	ChooseAction(ctx context.Context, s Snapshot) (Action, error)
	// ChooseItem returns a 0-based pack slot.
	ChooseItem(ctx context.Context, s Snapshot) (int, error)
	Observe(e Event)
}

// Result summarizes a finished encounter.
type Result struct {
	Outcome Outcome
	Rounds  int
	Enemy   string
	Cleared bool // The enemy left its zone
}

// Engine resolves encounters.
type Engine struct {
	rng     dice.Roller
	catalog *gamedata.Catalog
	rules   Rules
	actions map[Action]gamedata.ActionDef
}

// NewEngine creates an engine using the catalog's enemy stats and action rules.
func NewEngine(rng dice.Roller, cat *gamedata.Catalog) *Engine {
	return &Engine{
		rng:     rng,
		catalog: cat,
		rules:   RulesFromCatalog(cat),
		actions: ActionsFromCatalog(cat),
	}
}

// Rules returns the combat numbers in use.
func (e *Engine) Rules() Rules { return e.rules }

// encounter is the mutable state of one fight.
type encounter struct {
	fighter Fighter
	foe     *entity.Enemy
	ctl     Controller
	phase   Phase
	round   int
	bonus   int
}

func (enc *encounter) event(kind EventKind) Event {
	return Event{
		Kind:      kind,
		Phase:     enc.phase,
		Round:     enc.round,
		Fighter:   enc.fighter.GetName(),
		Enemy:     enc.foe.Name,
		Tier:      enc.foe.Tier,
		FighterHP: enc.fighter.GetHP(),
		EnemyHP:   enc.foe.HP,
		EnemyMax:  enc.foe.MaxHP,
	}
}

func (enc *encounter) snapshot(r Rules) Snapshot {
	return Snapshot{
		Round:      enc.round,
		Fighter:    enc.fighter.GetName(),
		HP:         enc.fighter.GetHP(),
		MaxHP:      enc.fighter.GetMaxHP(),
		Attack:     enc.fighter.GetAttack(),
		Defense:    enc.fighter.GetDefense(),
		HasItems:   enc.fighter.HasItems(),
		Enemy:      enc.foe.Name,
		Tier:       enc.foe.Tier,
		EnemyGlyph: enc.foe.Symbol,
		EnemyColor: enc.foe.Color(),
		EnemyHP:    enc.foe.HP,
		EnemyMax:   enc.foe.MaxHP,
		Rules:      r,
	}
}

// Resolve runs one encounter against the enemy at site until it ends in
// Victory, BossVictory or Defeat. It returns NoEnemy without asking the
// controller anything when the site is empty. A controller error aborts the
// encounter and is returned.
func (e *Engine) Resolve(ctx context.Context, f Fighter, site Site, ctl Controller) (Result, error) {
	ctx, span := telemetry.Tracer("combat").Start(ctx, "combat.resolve")
	defer span.End()

	tier := site.Enemy()
	if tier == world.EnemyNone {
		span.SetAttributes(attribute.String("combat.outcome", NoEnemy.String()))
		return Result{Outcome: NoEnemy}, nil
	}
	def := e.catalog.Enemy(tier.ID())
	if def == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownEnemy, tier.ID())
	}

	enc := &encounter{
		fighter: f,
		foe:     entity.NewEnemy(tier, def),
		ctl:     ctl,
		phase:   PhaseResolveStart,
		round:   1,
	}
	span.SetAttributes(
		attribute.String("combat.fighter", f.GetName()),
		attribute.String("combat.enemy", def.ID),
	)
	ctl.Observe(enc.event(EventEncounter))

	res, err := e.loop(ctx, enc, site)
	if err != nil {
		span.RecordError(err)
		return res, err
	}
	span.SetAttributes(
		attribute.String("combat.outcome", res.Outcome.String()),
		attribute.Int("combat.rounds", res.Rounds),
		attribute.Bool("combat.enemy_cleared", res.Cleared),
	)
	return res, nil
}

func (e *Engine) loop(ctx context.Context, enc *encounter, site Site) (Result, error) {
	res := Result{Enemy: enc.foe.Name}

	for {
		enc.phase = PhasePlayerTurn
		act, err := enc.ctl.ChooseAction(ctx, enc.snapshot(e.rules))
		if err != nil {
			return res, fmt.Errorf("choose combat action: %w", err)
		}

		consumed, err := e.playerAction(ctx, enc, act)
		if err != nil {
			return res, err
		}
		if !consumed {
			continue
		}
		res.Rounds = enc.round

		if !enc.foe.IsAlive() {
			enc.phase = PhaseEnemyDefeated
			enc.bonus = 0
			return e.enemyDefeated(enc, site, res), nil
		}

		enc.phase = PhaseEnemyTurn
		e.counter(enc)
		if !enc.fighter.IsAlive() {
			enc.phase = PhasePlayerDefeated
			enc.ctl.Observe(enc.event(EventPlayerDefeated))
			res.Outcome = Defeat
			return res, nil
		}
		enc.round++
	}
}

// playerAction performs act and reports whether it used up the turn. The
// action's definition decides whether it strikes and whether the enemy gets
// to counter afterwards.
func (e *Engine) playerAction(ctx context.Context, enc *encounter, act Action) (bool, error) {
	def, ok := e.actions[act]
	if !ok {
		e.reject(enc, act, fmt.Errorf("%w: %d", ErrInvalidAction, act))
		return false, nil
	}

	var done bool
	var err error
	switch {
	case act == ActionUseItem:
		done, err = e.useItem(ctx, enc, act)
	case def.Strikes():
		done = e.strike(enc, act, def)
	default:
		done = e.brace(enc, act, def)
	}
	if err != nil || !done {
		return false, err
	}
	return def.ConsumesTurn, nil
}

func (e *Engine) strike(enc *encounter, act Action, def gamedata.ActionDef) bool {
	if def.HPCost > 0 && !enc.fighter.SpendHP(def.HPCost) {
		e.reject(enc, act, fmt.Errorf("%w: need more than %d", ErrNotEnoughHP, def.HPCost))
		return false
	}
	attack := Scale(enc.fighter.GetAttack(), def.PowerPercent)
	atkRoll := dice.RollD20(e.rng)
	defRoll := dice.RollD20(e.rng)
	dealt := enc.foe.TakeDamage(Damage(attack, atkRoll, enc.foe.GetDefense(), defRoll))

	ev := enc.event(EventStrike)
	ev.Action, ev.AttackRoll, ev.DefenseRoll, ev.Damage, ev.Cost = act, atkRoll, defRoll, dealt, def.HPCost
	enc.ctl.Observe(ev)
	return true
}

// brace raises the defense bonus until the next counter.
func (e *Engine) brace(enc *encounter, act Action, def gamedata.ActionDef) bool {
	enc.bonus = def.DefenseBonus
	ev := enc.event(EventDefend)
	ev.Action = act
	enc.ctl.Observe(ev)
	return true
}

func (e *Engine) useItem(ctx context.Context, enc *encounter, act Action) (bool, error) {
	if !enc.fighter.HasItems() {
		e.reject(enc, act, ErrNoItems)
		return false, nil
	}
	slot, err := enc.ctl.ChooseItem(ctx, enc.snapshot(e.rules))
	if err != nil {
		return false, fmt.Errorf("choose item: %w", err)
	}
	item, err := enc.fighter.Use(slot, e.catalog)
	if err != nil {
		e.reject(enc, act, err)
		return false, nil
	}
	ev := enc.event(EventItemUsed)
	ev.Action, ev.Item = act, item
	enc.ctl.Observe(ev)
	return true, nil
}

func (e *Engine) reject(enc *encounter, act Action, err error) {
	ev := enc.event(EventRejected)
	ev.Action, ev.Err = act, err
	enc.ctl.Observe(ev)
}

// counter resolves the enemy's attack, then drops any defend bonus.
func (e *Engine) counter(enc *encounter) {
	atkRoll := dice.RollD20(e.rng)
	defRoll := dice.RollD20(e.rng)
	defense := enc.fighter.GetDefense() + enc.bonus
	dealt := enc.fighter.TakeDamage(Damage(enc.foe.GetAttack(), atkRoll, defense, defRoll))

	ev := enc.event(EventCounter)
	ev.AttackRoll, ev.DefenseRoll, ev.Damage = atkRoll, defRoll, dealt
	ev.Defending = enc.bonus > 0
	enc.ctl.Observe(ev)
	enc.bonus = 0
}

func (e *Engine) enemyDefeated(enc *encounter, site Site, res Result) Result {
	if enc.foe.IsBoss() {
		site.ClearEnemy()
		enc.ctl.Observe(enc.event(EventBossDefeated))
		res.Outcome = BossVictory
		res.Cleared = true
		return res
	}

	res.Outcome = Victory
	if dice.Chance(e.rng, enc.foe.ClearChance()) {
		site.ClearEnemy()
		res.Cleared = true
		enc.ctl.Observe(enc.event(EventEnemyCleared))
	} else {
		enc.ctl.Observe(enc.event(EventEnemyLingers))
	}
	return res
}

var (
	_ Fighter   = (*entity.Player)(nil)
	_ Combatant = (*entity.Enemy)(nil)
)
