package world

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClosed          = errors.New("map is closed")
	ErrEmptyMap        = errors.New("map is empty")
	ErrInvalidCount    = errors.New("invalid zone count")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidKind     = errors.New("invalid zone kind")
	ErrInvalidEnemy    = errors.New("invalid enemy tier")
	ErrInvalidItem     = errors.New("invalid item")
	ErrCapacity        = errors.New("zone capacity exhausted")
	ErrCorrupt         = errors.New("map links are inconsistent")

	ErrTooFewZones = errors.New("too few zones")
	ErrBossCount   = errors.New("map must hold exactly one boss")

	ErrBlocked      = errors.New("blocked by enemy")
	ErrEndOfPath    = errors.New("end of path")
	ErrEscapeFailed = errors.New("escape failed")
	ErrNotPlaced    = errors.New("traveler is not on the map")
)

// ValidationError reports every condition that prevented a map from closing.
type ValidationError struct {
	Zones   int
	Bosses  int
	Minimum int
}

func (e *ValidationError) tooFew() bool    { return e.Zones < e.Minimum }
func (e *ValidationError) badBosses() bool { return e.Bosses != 1 }

func (e *ValidationError) Error() string {
	var parts []string
	if e.tooFew() {
		parts = append(parts, fmt.Sprintf("%d zones, need at least %d", e.Zones, e.Minimum))
	}
	if e.badBosses() {
		parts = append(parts, fmt.Sprintf("%d bosses, need exactly 1", e.Bosses))
	}
	return "cannot close map: " + strings.Join(parts, "; ")
}

// Unwrap exposes ErrTooFewZones and ErrBossCount for errors.Is.
func (e *ValidationError) Unwrap() []error {
	var errs []error
	if e.tooFew() {
		errs = append(errs, ErrTooFewZones)
	}
	if e.badBosses() {
		errs = append(errs, ErrBossCount)
	}
	return errs
}

func positionError(pos, max int) error {
	if max < 1 {
		return fmt.Errorf("%w: %d (map is empty)", ErrInvalidPosition, pos)
	}
	return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPosition, pos, max)
}
