package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/game"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/narrate"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	n := narrate.New(gamedata.MustLoadCatalog())
	return New(strings.NewReader(input), &out, n, WithPlain()), &out
}

func TestReadInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     int
		wantCode game.Code
		wantEOF  bool
	}{
		{"number", "3\n", 3, "", false},
		{"padded", "  12  \n", 12, "", false},
		{"text", "three\n", 0, game.CodeInvalidInput, false},
		{"empty", "\n", 0, game.CodeInvalidInput, false},
		{"no newline", "7", 7, "", false},
		{"crlf", "2\r\n", 2, "", false},
		{"eof", "", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConsole(tt.input)
			got, err := c.ReadInt(context.Background(), game.Prompt{Kind: game.PromptPlayerCount, Min: 1, Max: 4})
			if tt.wantEOF {
				if err != io.EOF {
					t.Errorf("ReadInt() error = %v, want io.EOF", err)
				}
				return
			}
			if game.CodeOf(err) != tt.wantCode {
				t.Errorf("ReadInt() error = %v, want code %q", err, tt.wantCode)
			}
			if got != tt.want {
				t.Errorf("ReadInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadIntLongLine(t *testing.T) {
	c, _ := newTestConsole(strings.Repeat("9", 70000) + "\n2\n")
	p := game.Prompt{Kind: game.PromptPlayerCount, Min: 1, Max: 4}

	if _, err := c.ReadInt(context.Background(), p); game.CodeOf(err) != game.CodeInvalidInput {
		t.Fatalf("ReadInt() error = %v, want code %q", err, game.CodeInvalidInput)
	}
	got, err := c.ReadInt(context.Background(), p)
	if err != nil || got != 2 {
		t.Errorf("ReadInt() after a long line = %d, %v, want 2", got, err)
	}
	if _, err := c.ReadInt(context.Background(), p); err != io.EOF {
		t.Errorf("ReadInt() at end = %v, want io.EOF", err)
	}
}

func TestMenuSurvivesLongLine(t *testing.T) {
	c, out := newTestConsole(strings.Repeat("x", maxLine*3) + "\n3\n")
	s, err := game.NewSession(game.DefaultConfig(), dice.New(1), gamedata.MustLoadCatalog(), nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if err := game.Menu(context.Background(), s, c); err != nil {
		t.Fatalf("Menu() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Invalid input: answer is longer than", "GOODBYE"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestReadIntShowsPrompt(t *testing.T) {
	c, out := newTestConsole("1\n")
	p := game.Prompt{Kind: game.PromptRealm, Min: 1, Max: 2, Options: []game.Option{
		{Value: 1, Label: "Overworld"},
		{Value: 2, Label: "Underworld"},
	}}
	if _, err := c.ReadInt(context.Background(), p); err != nil {
		t.Fatalf("ReadInt() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"1) Overworld", "2) Underworld", "Which world? (1-2)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestReadLineHonorsContext(t *testing.T) {
	c, _ := newTestConsole("Ada\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ReadLine(ctx, game.Prompt{Kind: game.PromptPlayerName}); err != context.Canceled {
		t.Errorf("ReadLine() error = %v, want context.Canceled", err)
	}
}

func TestEcho(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("Ada\n"), &out, narrate.New(gamedata.MustLoadCatalog()), WithPlain(), WithEcho())
	got, err := c.ReadLine(context.Background(), game.Prompt{Kind: game.PromptPlayerName, Player: "Player 1"})
	if err != nil || got != "Ada" {
		t.Fatalf("ReadLine() = %q, %v", got, err)
	}
	if !strings.HasSuffix(out.String(), "Ada\n") {
		t.Errorf("output %q does not echo the answer", out.String())
	}
}

func TestMenuOverConsole(t *testing.T) {
	c, out := newTestConsole("4\nfive\n3\n")
	s, err := game.NewSession(game.DefaultConfig(), dice.New(1), gamedata.MustLoadCatalog(), nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if err := game.Menu(context.Background(), s, c); err != nil {
		t.Fatalf("Menu() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"MAIN MENU", "CREDITS", "Games played: 0", `"five" is not a number`, "GOODBYE"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}
