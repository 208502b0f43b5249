package game

import (
	"context"
	"errors"
	"io"
)

// Menu runs the main menu until the player quits or input runs out.
func Menu(ctx context.Context, s *Session, con Console) error {
	menu := menuPrompt(PromptMainMenu, "Set up a game", "Play", "Quit", "Credits")

	for {
		n, err := ask(ctx, con, menu)
		if errors.Is(err, io.EOF) {
			con.Report(Event{Kind: EventFarewell, Scores: s.scores.Scores()})
			return nil
		}
		if err != nil {
			return err
		}
		choice, _ := ParseMenuChoice(n)

		switch choice {
		case MenuSetup:
			err = s.Setup(ctx, con)
		case MenuPlay:
			err = s.Play(ctx, con)
		case MenuQuit:
			s.Reset()
			con.Report(Event{Kind: EventFarewell, Scores: s.scores.Scores()})
			return nil
		case MenuCredits:
			con.Report(Event{Kind: EventCredits, Scores: s.scores.Scores()})
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			con.Report(Event{Kind: EventFarewell, Scores: s.scores.Scores()})
			return nil
		case CodeOf(err) != "":
			con.Report(Event{Kind: EventRejected, Err: err})
		default:
			return err
		}
	}
}
