package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/telemetry"
	"github.com/samdwyer/otherside/internal/world"
)

// Setup resets the session, seats the players and runs the map editor
// until the map is closed.
func (s *Session) Setup(ctx context.Context, con Console) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "session.setup")
	defer span.End()

	s.Reset()
	span.SetAttributes(attribute.String("session.id", s.id))
	con.Report(Event{Kind: EventSetupStart, Session: s.id, Count: s.graph.Minimum()})

	n, err := ask(ctx, con, Prompt{Kind: PromptPlayerCount, Min: 1, Max: entity.MaxPlayers})
	if err != nil {
		return err
	}
	for seat := 1; seat <= n; seat++ {
		if err := s.seatPlayer(ctx, con, seat); err != nil {
			return err
		}
	}

	if err := s.editMap(ctx, con); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.Int("session.players", s.roster.Count()),
		attribute.Int("map.zones", s.graph.Len()),
	)
	return nil
}

func (s *Session) seatPlayer(ctx context.Context, con Console, seat int) error {
	raw, err := con.ReadLine(ctx, Prompt{Kind: PromptPlayerName, Player: entity.NormalizeName("", seat)})
	if err != nil {
		return err
	}
	name := entity.NormalizeName(raw, seat)

	for {
		p := s.buildPrompt(name)
		choice, err := ask(ctx, con, p)
		if err != nil {
			return err
		}
		build := s.catalog.Builds.All()[choice-1]
		slot, err := s.AddPlayer(name, build.ID)
		if err != nil {
			if CodeOf(err) == "" {
				return err
			}
			con.Report(Event{Kind: EventRejected, Err: err})
			continue
		}
		con.Report(Event{Kind: EventPlayerJoined, Session: s.id, Player: s.view(slot)})
		return nil
	}
}

func (s *Session) buildPrompt(name string) Prompt {
	builds := s.catalog.Builds.All()
	p := Prompt{Kind: PromptBuild, Min: 1, Max: len(builds), Player: name}
	for i, b := range builds {
		p.Options = append(p.Options, Option{
			Value:    i + 1,
			Label:    b.Name,
			Disabled: b.Unique && s.roster.HasBuild(b.ID),
		})
	}
	return p
}

// =============================================================================
// Map editor
// =============================================================================

func (s *Session) editMap(ctx context.Context, con Console) error {
	menu := menuPrompt(PromptMapMenu,
		fmt.Sprintf("Generate a random map (%d zones)", s.graph.Minimum()),
		"Insert a zone",
		"Delete a zone",
		"View the map",
		"View a zone",
		"Close the map",
	)

	for !s.graph.Closed() {
		n, err := ask(ctx, con, menu)
		if err != nil {
			return err
		}
		choice, _ := ParseMapChoice(n)

		switch choice {
		case MapGenerate:
			err = s.generate(ctx, con)
		case MapInsert:
			err = s.insertZone(ctx, con)
		case MapDelete:
			err = s.deleteZone(ctx, con)
		case MapView:
			err = s.viewMap(ctx, con)
		case MapViewZone:
			err = s.viewZone(ctx, con)
		case MapClose:
			err = s.closeMap(ctx, con)
		}
		if err != nil {
			if CodeOf(err) == "" {
				return err
			}
			con.Report(Event{Kind: EventRejected, Err: err})
		}
	}
	return nil
}

func (s *Session) generate(ctx context.Context, con Console) error {
	if err := s.graph.Generate(ctx, s.graph.Minimum()); err != nil {
		return Classify("generate map", err)
	}
	con.Report(Event{Kind: EventMapGenerated, Count: s.graph.Len()})
	return nil
}

func (s *Session) insertZone(ctx context.Context, con Console) error {
	pos, err := ask(ctx, con, Prompt{Kind: PromptPosition, Min: 1, Max: s.graph.Len() + 1})
	if err != nil {
		return err
	}

	kinds := Prompt{Kind: PromptZoneKind, Min: 0, Max: world.KindCount - 1}
	for k := world.Kind(0); k < world.KindCount; k++ {
		kinds.Options = append(kinds.Options, Option{Value: int(k), Label: k.String()})
	}
	kn, err := ask(ctx, con, kinds)
	if err != nil {
		return err
	}

	enemies := Prompt{Kind: PromptEnemy, Min: int(world.EnemyNone), Max: int(world.EnemyMedium)}
	for e := world.EnemyNone; e <= world.EnemyMedium; e++ {
		enemies.Options = append(enemies.Options, Option{Value: int(e), Label: s.enemyName(e)})
	}
	en, err := ask(ctx, con, enemies)
	if err != nil {
		return err
	}

	items := Prompt{Kind: PromptItem, Min: int(world.ItemNone), Max: world.ItemKinds}
	for i := world.ItemNone; i <= world.ItemKinds; i++ {
		items.Options = append(items.Options, Option{Value: int(i), Label: i.String()})
	}
	in, err := ask(ctx, con, items)
	if err != nil {
		return err
	}

	kind, _ := ParseKind(kn)
	enemy, _ := ParseEnemy(en)
	item, _ := ParseItem(in)
	if err := s.graph.InsertAt(pos, kind, enemy, item); err != nil {
		return Classify("insert zone", err)
	}
	pair, _ := s.graph.ZoneAt(pos)
	con.Report(Event{Kind: EventZoneInserted, Position: pos, Pair: pair, Count: s.graph.Len()})
	return nil
}

func (s *Session) deleteZone(ctx context.Context, con Console) error {
	if s.graph.Len() == 0 {
		return invalidOperation("delete zone", world.ErrEmptyMap)
	}
	pos, err := ask(ctx, con, Prompt{Kind: PromptPosition, Min: 1, Max: s.graph.Len()})
	if err != nil {
		return err
	}
	if err := s.graph.DeleteAt(pos); err != nil {
		return Classify("delete zone", err)
	}
	con.Report(Event{Kind: EventZoneDeleted, Position: pos, Count: s.graph.Len()})
	return nil
}

func (s *Session) viewMap(ctx context.Context, con Console) error {
	if s.graph.Len() == 0 {
		return invalidOperation("view map", world.ErrEmptyMap)
	}
	n, err := ask(ctx, con, menuPrompt(PromptRealm, world.Overworld.String(), world.Underworld.String()))
	if err != nil {
		return err
	}
	realm, _ := ParseRealm(n)
	con.Report(Event{Kind: EventMapView, Realm: realm, Zones: s.graph.Zones(realm), Count: s.graph.Len()})
	return nil
}

func (s *Session) viewZone(ctx context.Context, con Console) error {
	if s.graph.Len() == 0 {
		return invalidOperation("view zone", world.ErrEmptyMap)
	}
	pos, err := ask(ctx, con, Prompt{Kind: PromptPosition, Min: 1, Max: s.graph.Len()})
	if err != nil {
		return err
	}
	pair, err := s.graph.ZoneAt(pos)
	if err != nil {
		return Classify("view zone", err)
	}
	con.Report(Event{Kind: EventZoneView, Position: pos, Pair: pair})
	return nil
}

func (s *Session) closeMap(ctx context.Context, con Console) error {
	err := s.CloseMap(ctx)
	var verr *world.ValidationError
	switch {
	case err == nil:
		con.Report(Event{Kind: EventMapClosed, Session: s.id, Count: s.graph.Len(), Lineup: s.lineup(s.roster.Living())})
		return nil
	case errors.As(err, &verr):
		con.Report(Event{Kind: EventMapInvalid, Count: verr.Zones, Err: err})
		return nil
	default:
		return err
	}
}

func (s *Session) enemyName(e world.Enemy) string {
	if e == world.EnemyNone {
		return "None"
	}
	if def := s.catalog.Enemy(e.ID()); def != nil {
		return def.Name
	}
	return e.String()
}
