package combat

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

// Action is a player's choice on their combat turn.
type Action int

const (
	ActionAttack Action = iota
	ActionPowerAttack
	ActionDefend
	ActionUseItem
)

// ID returns the catalog identifier of the action.
func (a Action) ID() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionPowerAttack:
		return "power_attack"
	case ActionDefend:
		return "defend"
	case ActionUseItem:
		return "use_item"
	default:
		return "unknown"
	}
}

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "Attack"
	case ActionPowerAttack:
		return "Power Attack"
	case ActionDefend:
		return "Defend"
	case ActionUseItem:
		return "Use Item"
	default:
		return "Unknown"
	}
}

// Outcome is how an encounter ended.
type Outcome int

const (
	NoEnemy Outcome = iota
	Victory
	BossVictory
	Defeat
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoEnemy:
		return "no_enemy"
	case Victory:
		return "victory"
	case BossVictory:
		return "boss_victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Phase is the state of the encounter state machine.
type Phase int

const (
	PhaseResolveStart Phase = iota
	PhasePlayerTurn
	PhaseEnemyTurn
	PhaseEnemyDefeated
	PhasePlayerDefeated
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseResolveStart:
		return "resolve_start"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseEnemyDefeated:
		return "enemy_defeated"
	case PhasePlayerDefeated:
		return "player_defeated"
	default:
		return "unknown"
	}
}

// EventKind classifies combat events.
type EventKind int

const (
	EventEncounter EventKind = iota
	EventStrike
	EventDefend
	EventCounter
	EventItemUsed
	EventRejected
	EventEnemyCleared
	EventEnemyLingers
	EventBossDefeated
	EventPlayerDefeated
)

// Event reports one step of an encounter.
type Event struct {
	Kind    EventKind
	Phase   Phase
	Round   int
	Fighter string
	Enemy   string
	Tier    world.Enemy
	Action  Action

	AttackRoll  int
	DefenseRoll int
	Damage      int
	Cost        int  // HP paid before a power attack
	Defending   bool // The counter met a raised defense

	FighterHP int
	EnemyHP   int
	EnemyMax  int

	Item *gamedata.ItemDef
	Err  error // Why an action was rejected
}

// Snapshot is what a controller sees when asked for a choice.
type Snapshot struct {
	Round     int
	Fighter   string
	HP, MaxHP int
	Attack    int
	Defense   int
	HasItems  bool

	Enemy      string
	Tier       world.Enemy
	EnemyGlyph rune
	EnemyColor tcell.Color
	EnemyHP    int
	EnemyMax   int
	Rules      Rules
}
