package game

// RecentWinners is how many winners the scoreboard remembers.
const RecentWinners = 3

// Winner is one recorded victory.
type Winner struct {
	Name    string
	Session string
}

// Scores is a copy of the scoreboard for display.
type Scores struct {
	Winners []Winner // Most recent first
	Played  int
}

// Scoreboard keeps the last few winners and the number of finished games
// for the life of the process.
type Scoreboard struct {
	winners []Winner
	played  int
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// RecordWin counts a game and pushes its winner, dropping the oldest past
// RecentWinners.
func (b *Scoreboard) RecordWin(name, session string) {
	b.played++
	b.winners = append([]Winner{{Name: name, Session: session}}, b.winners...)
	if len(b.winners) > RecentWinners {
		b.winners = b.winners[:RecentWinners]
	}
}

// RecordLoss counts a game nobody won.
func (b *Scoreboard) RecordLoss() {
	b.played++
}

// Scores returns a copy of the current standings.
func (b *Scoreboard) Scores() Scores {
	return Scores{
		Winners: append([]Winner(nil), b.winners...),
		Played:  b.played,
	}
}
