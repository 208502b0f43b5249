package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/telemetry"
)

// Play runs rounds until the boss falls or every player is dead, then tears
// the session down. The session must be configured.
func (s *Session) Play(ctx context.Context, con Console) error {
	if !s.Configured() {
		return invalidOperation("play", ErrNotConfigured)
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.play")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Int("session.players", s.roster.Count()),
		attribute.Int("map.zones", s.graph.Len()),
	)

	for _, i := range s.roster.Living() {
		if err := s.graph.Place(s.roster.Get(i)); err != nil {
			return Classify("place players", err)
		}
	}
	s.state = StatePlaying
	s.round = 0
	con.Report(Event{Kind: EventAdventureStart, Session: s.id, Lineup: s.lineup(s.roster.Living())})

	for s.state == StatePlaying {
		if s.roster.Count() == 0 {
			s.state = StateLost
			s.scores.RecordLoss()
			con.Report(Event{Kind: EventGameOver, Session: s.id, Round: s.round, Scores: s.scores.Scores()})
			break
		}
		if err := s.playRound(ctx, con); err != nil {
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(
		attribute.String("session.result", s.state.String()),
		attribute.Int("session.rounds", s.round),
	)
	s.teardown()
	return nil
}

// RoundOrder returns the living slots in a fresh uniform random order.
func (s *Session) RoundOrder() []int {
	order := s.roster.Living()
	dice.Shuffle(s.rng, order)
	return order
}

func (s *Session) playRound(ctx context.Context, con Console) error {
	s.round++
	ctx, span := telemetry.Tracer("game").Start(ctx, "round")
	defer span.End()

	order := s.RoundOrder()
	span.SetAttributes(
		attribute.Int("round.number", s.round),
		attribute.Int("round.players", len(order)),
	)
	con.Report(Event{Kind: EventRoundStart, Round: s.round, Lineup: s.lineup(order)})

	for _, slot := range order {
		// Players who fell earlier in the round keep their place in the
		// frozen order but are skipped.
		if s.roster.Get(slot) == nil {
			continue
		}
		if err := s.playTurn(ctx, con, slot); err != nil {
			return err
		}
		if s.state != StatePlaying || s.roster.Count() == 0 {
			return nil
		}
	}
	return nil
}

func (s *Session) playTurn(ctx context.Context, con Console, slot int) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "turn")
	defer span.End()

	t, err := s.BeginTurn(slot)
	if err != nil {
		return err
	}
	con.Report(Event{Kind: EventTurnStart, Round: s.round, Player: s.view(slot)})
	s.reportZone(con, t)

	prompt := turnPrompt(t.player.Name)
	for !t.ended {
		n, err := ask(ctx, con, prompt)
		if err != nil {
			span.RecordError(err)
			return err
		}
		action, _ := ParseTurnAction(n)
		if err := s.Act(ctx, con, t, action); err != nil {
			if CodeOf(err) == "" {
				span.RecordError(err)
				return err
			}
			con.Report(Event{Kind: EventRejected, Player: s.view(slot), Err: err})
		}
	}

	span.SetAttributes(
		attribute.String("turn.player", t.player.Name),
		attribute.Int("turn.actions", t.actions),
		attribute.Bool("turn.moved", t.moved),
		attribute.Bool("turn.hazard", t.hazard),
		attribute.Bool("turn.player_alive", s.roster.Get(slot) != nil),
	)
	return nil
}
