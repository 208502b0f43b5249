package entity

import "errors"

// MaxPlayers is the number of player slots in a session.
const MaxPlayers = 4

// ErrRosterFull is returned when every slot is taken.
var ErrRosterFull = errors.New("roster is full")

// Roster holds up to MaxPlayers players. A slot is emptied when its player
// dies and is never refilled during a game.
type Roster struct {
	slots [MaxPlayers]*Player
}

// Add places p in the first empty slot and returns its index.
func (r *Roster) Add(p *Player) (int, error) {
	for i, s := range r.slots {
		if s == nil {
			r.slots[i] = p
			return i, nil
		}
	}
	return -1, ErrRosterFull
}

// Get returns the player in slot i, or nil.
func (r *Roster) Get(i int) *Player {
	if i < 0 || i >= MaxPlayers {
		return nil
	}
	return r.slots[i]
}

// Remove empties slot i and returns the player that was there.
func (r *Roster) Remove(i int) *Player {
	p := r.Get(i)
	if p != nil {
		r.slots[i] = nil
	}
	return p
}

// Living returns the indices of occupied slots holding a living player.
func (r *Roster) Living() []int {
	var out []int
	for i, p := range r.slots {
		if p != nil && p.IsAlive() {
			out = append(out, i)
		}
	}
	return out
}

// Count returns how many living players remain.
func (r *Roster) Count() int {
	return len(r.Living())
}

// HasBuild reports whether any player in the roster uses the build.
func (r *Roster) HasBuild(id string) bool {
	for _, p := range r.slots {
		if p != nil && p.Build == id {
			return true
		}
	}
	return false
}

// Reset empties every slot.
func (r *Roster) Reset() {
	r.slots = [MaxPlayers]*Player{}
}
