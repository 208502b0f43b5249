package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

// Session owns the map and the players of one game.
type Session struct {
	id      string
	cfg     Config
	rng     dice.Roller
	catalog *gamedata.Catalog
	weights world.Weights
	graph   *world.Graph
	roster  entity.Roster
	engine  *combat.Engine
	scores  *Scoreboard
	state   State
	round   int
}

// NewSession creates an idle session. The scoreboard outlives sessions and
// may be shared between them.
func NewSession(cfg Config, rng dice.Roller, cat *gamedata.Catalog, scores *Scoreboard) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := SpawnWeights(cat)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = NewScoreboard()
	}
	s := &Session{
		cfg:     cfg,
		rng:     rng,
		catalog: cat,
		weights: w,
		engine:  combat.NewEngine(rng, cat),
		scores:  scores,
	}
	s.Reset()
	return s, nil
}

// Reset discards the map and the players and starts a new session id.
func (s *Session) Reset() {
	s.id = uuid.NewString()
	s.graph = world.NewGraph(s.rng, s.cfg.graphOptions(s.weights)...)
	s.roster.Reset()
	s.state = StateIdle
	s.round = 0
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Configured reports whether Play may start.
func (s *Session) Configured() bool { return s.state == StateConfigured }

// Round returns the current round number, 0 before play.
func (s *Session) Round() int { return s.round }

// Graph returns the map.
func (s *Session) Graph() *world.Graph { return s.graph }

// Roster returns the player slots.
func (s *Session) Roster() *entity.Roster { return &s.roster }

// Catalog returns the game data in use.
func (s *Session) Catalog() *gamedata.Catalog { return s.catalog }

// Scoreboard returns the shared scoreboard.
func (s *Session) Scoreboard() *Scoreboard { return s.scores }

// AddPlayer rolls a new player, applies the build and seats them. An empty
// buildID keeps the rolled stats.
func (s *Session) AddPlayer(name, buildID string) (int, error) {
	var def *gamedata.BuildDef
	if buildID != "" {
		def = s.catalog.Build(buildID)
		if def == nil {
			return -1, Wrap(CodeInvalidInput, "choose build", fmt.Errorf("%w: %s", ErrUnknownBuild, buildID))
		}
		if def.Unique && s.roster.HasBuild(def.ID) {
			return -1, invalidOperation("choose build", fmt.Errorf("%w: %s", ErrUniqueBuild, def.Name))
		}
	}
	p := entity.RollPlayer(name, s.rng)
	p.ApplyBuild(def)
	slot, err := s.roster.Add(p)
	if err != nil {
		return -1, Classify("add player", err)
	}
	return slot, nil
}

// CloseMap validates and freezes the map. With at least one player seated
// the session becomes configured.
func (s *Session) CloseMap(ctx context.Context) error {
	if err := s.graph.Close(ctx); err != nil {
		return Classify("close map", err)
	}
	if s.roster.Count() > 0 {
		s.state = StateConfigured
	}
	return nil
}

// teardown drops the map and the players once a game is over.
func (s *Session) teardown() {
	s.graph = world.NewGraph(s.rng, s.cfg.graphOptions(s.weights)...)
	s.roster.Reset()
}

// view copies the player in slot for display.
func (s *Session) view(slot int) PlayerView {
	p := s.roster.Get(slot)
	if p == nil {
		return PlayerView{Slot: slot}
	}
	return viewOf(slot, p, s.graph)
}

func viewOf(slot int, p *entity.Player, g *world.Graph) PlayerView {
	pos := p.Position()
	return PlayerView{
		Slot:     slot,
		Name:     p.Name,
		Build:    p.Build,
		Realm:    pos.Realm,
		Position: g.Index(pos),
		Attack:   p.Attack,
		Defense:  p.Defense,
		Luck:     p.Luck,
		HP:       p.HP,
		MaxHP:    p.MaxHP,
		Pack:     p.Pack,
	}
}

func (s *Session) lineup(slots []int) []PlayerView {
	out := make([]PlayerView, 0, len(slots))
	for _, i := range slots {
		out = append(out, s.view(i))
	}
	return out
}

// SpawnWeights converts the catalog spawn tables into map weights.
func SpawnWeights(cat *gamedata.Catalog) (world.Weights, error) {
	var w world.Weights
	for _, table := range []struct {
		entries []gamedata.SpawnEntry
		dst     *[]world.EnemyWeight
	}{
		{cat.Spawns.Overworld, &w.Overworld},
		{cat.Spawns.Underworld, &w.Underworld},
	} {
		for _, e := range table.entries {
			tier, ok := world.ParseEnemy(e.Enemy)
			if !ok {
				return world.Weights{}, fmt.Errorf("spawn table: %w: %s", world.ErrInvalidEnemy, e.Enemy)
			}
			*table.dst = append(*table.dst, world.EnemyWeight{Enemy: tier, Weight: e.Weight})
		}
	}

	w.Items = append(w.Items, world.ItemWeight{Item: world.ItemNone, Weight: cat.ItemNoneWeight})
	for _, def := range cat.Items.All() {
		item, ok := world.ParseItem(def.ID)
		if !ok {
			return world.Weights{}, fmt.Errorf("item table: %w: %s", world.ErrInvalidItem, def.ID)
		}
		w.Items = append(w.Items, world.ItemWeight{Item: item, Weight: def.SpawnWeight})
	}
	return w, nil
}
