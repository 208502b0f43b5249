package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/samdwyer/otherside/internal/dice/dicetest"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

func TestRollPlayer(t *testing.T) {
	p := RollPlayer("Mike", dicetest.NewSequence(12, 7, 18))

	if p.Attack != 12 || p.Defense != 7 || p.Luck != 18 {
		t.Errorf("RollPlayer() stats = %d/%d/%d, want 12/7/18", p.Attack, p.Defense, p.Luck)
	}
	if p.HP != StartingHP || p.MaxHP != StartingHP {
		t.Errorf("HP = %d/%d, want %d/%d", p.HP, p.MaxHP, StartingHP, StartingHP)
	}
	if p.HasItems() {
		t.Error("new player has items")
	}
	if p.Position().Placed() {
		t.Error("new player is already placed")
	}
}

func TestNormalizeName(t *testing.T) {
	long := strings.Repeat("é", 60)
	tests := []struct {
		raw  string
		slot int
		want string
	}{
		{"  Dustin  ", 1, "Dustin"},
		{"", 2, "Player 2"},
		{"   ", 4, "Player 4"},
		{long, 1, strings.Repeat("é", MaxNameLength)},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.raw, tt.slot); got != tt.want {
			t.Errorf("NormalizeName(%q, %d) = %q, want %q", tt.raw, tt.slot, got, tt.want)
		}
	}
}

func TestApplyBuild(t *testing.T) {
	cat := gamedata.MustLoadCatalog()

	tests := []struct {
		build                 string
		attack, defense, luck int
		wantAtk, wantDef      int
		wantLuck              int
		wantName              string
	}{
		{"balanced", 10, 10, 10, 10, 10, 10, "Will"},
		{"offensive", 10, 10, 10, 13, 7, 10, "Will"},
		{"offensive", 10, 2, 10, 13, 1, 10, "Will"},
		{"defensive", 10, 10, 10, 7, 13, 10, "Will"},
		{"defensive", 3, 10, 10, 1, 13, 10, "Will"},
		{"eleven_point_five", 10, 10, 10, 14, 14, 3, "ElevenPointFive"},
		{"eleven_point_five", 10, 10, 5, 14, 14, 1, "ElevenPointFive"},
	}

	for _, tt := range tests {
		p := NewPlayer("Will", tt.attack, tt.defense, tt.luck)
		p.ApplyBuild(cat.Build(tt.build))
		if p.Attack != tt.wantAtk || p.Defense != tt.wantDef || p.Luck != tt.wantLuck {
			t.Errorf("%s on %d/%d/%d = %d/%d/%d, want %d/%d/%d", tt.build,
				tt.attack, tt.defense, tt.luck, p.Attack, p.Defense, p.Luck,
				tt.wantAtk, tt.wantDef, tt.wantLuck)
		}
		if p.Name != tt.wantName {
			t.Errorf("%s name = %q, want %q", tt.build, p.Name, tt.wantName)
		}
		if p.Build != tt.build {
			t.Errorf("Build = %q, want %q", p.Build, tt.build)
		}
	}
}

func TestPackPickUpAndFull(t *testing.T) {
	p := NewPlayer("Lucas", 5, 5, 5)

	for i, it := range []world.Item{world.ItemBicycle, world.ItemCompass, world.ItemMetalRiff} {
		slot, err := p.PickUp(it)
		if err != nil {
			t.Fatalf("PickUp(%v) error: %v", it, err)
		}
		if slot != i {
			t.Errorf("PickUp(%v) slot = %d, want %d", it, slot, i)
		}
	}
	if !p.PackFull() {
		t.Error("PackFull() = false with three items")
	}
	if _, err := p.PickUp(world.ItemHellfireShirt); !errors.Is(err, ErrPackFull) {
		t.Errorf("PickUp() into full pack error = %v, want ErrPackFull", err)
	}
	if _, err := NewPlayer("x", 1, 1, 1).PickUp(world.ItemNone); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("PickUp(none) error = %v, want ErrInvalidItem", err)
	}
}

func TestUseItemBonuses(t *testing.T) {
	cat := gamedata.MustLoadCatalog()

	tests := []struct {
		item                  world.Item
		attack, defense, luck int
	}{
		{world.ItemBicycle, 10, 10, 13},
		{world.ItemHellfireShirt, 15, 10, 10},
		{world.ItemCompass, 10, 10, 12},
		{world.ItemMetalRiff, 13, 13, 10},
	}

	for _, tt := range tests {
		p := NewPlayer("Max", 10, 10, 10)
		slot, _ := p.PickUp(tt.item)
		def, err := p.Use(slot, cat)
		if err != nil {
			t.Fatalf("Use(%v) error: %v", tt.item, err)
		}
		if def.ID != tt.item.ID() {
			t.Errorf("Use() returned %q, want %q", def.ID, tt.item.ID())
		}
		if p.Attack != tt.attack || p.Defense != tt.defense || p.Luck != tt.luck {
			t.Errorf("after %v stats = %d/%d/%d, want %d/%d/%d", tt.item,
				p.Attack, p.Defense, p.Luck, tt.attack, tt.defense, tt.luck)
		}
		if p.Pack[slot] != world.ItemNone {
			t.Errorf("slot %d not emptied", slot)
		}
	}
}

func TestUseItemErrors(t *testing.T) {
	cat := gamedata.MustLoadCatalog()
	p := NewPlayer("Eleven", 10, 10, 10)

	if _, err := p.Use(0, cat); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("Use(empty) error = %v, want ErrEmptySlot", err)
	}
	for _, slot := range []int{-1, PackSize} {
		if _, err := p.Use(slot, cat); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Use(%d) error = %v, want ErrInvalidSlot", slot, err)
		}
	}
}

func TestSpendHP(t *testing.T) {
	tests := []struct {
		hp, cost int
		ok       bool
		wantHP   int
	}{
		{80, 3, true, 77},
		{4, 3, true, 1},
		{3, 3, false, 3},
		{1, 3, false, 1},
	}

	for _, tt := range tests {
		p := NewPlayer("Nancy", 1, 1, 1)
		p.HP = tt.hp
		if got := p.SpendHP(tt.cost); got != tt.ok {
			t.Errorf("SpendHP(%d) at %d HP = %v, want %v", tt.cost, tt.hp, got, tt.ok)
		}
		if p.HP != tt.wantHP {
			t.Errorf("HP = %d, want %d", p.HP, tt.wantHP)
		}
	}
}

func TestTakeDamage(t *testing.T) {
	p := NewPlayer("Steve", 1, 1, 1)
	if got := p.TakeDamage(-5); got != 0 || p.HP != StartingHP {
		t.Errorf("TakeDamage(-5) = %d, HP %d", got, p.HP)
	}
	if got := p.TakeDamage(100); got != StartingHP || p.IsAlive() {
		t.Errorf("TakeDamage(100) = %d, alive %v", got, p.IsAlive())
	}
}

func TestNewEnemy(t *testing.T) {
	cat := gamedata.MustLoadCatalog()
	boss := NewEnemy(world.EnemyBoss, cat.Enemy("boss"))

	if boss.HP != 60 || boss.GetAttack() != 12 || boss.GetDefense() != 7 {
		t.Errorf("boss = %d HP %d/%d", boss.HP, boss.GetAttack(), boss.GetDefense())
	}
	if !boss.IsBoss() {
		t.Error("IsBoss() = false")
	}
	boss.TakeDamage(10)
	again := NewEnemy(world.EnemyBoss, cat.Enemy("boss"))
	if again.HP != again.MaxHP {
		t.Error("new encounter does not start at full HP")
	}

	weak := NewEnemy(world.EnemyWeak, cat.Enemy("weak"))
	if weak.IsBoss() || weak.ClearChance() != 50 || weak.GetName() != "Billi" {
		t.Errorf("weak enemy = %+v", weak)
	}
}

func TestRoster(t *testing.T) {
	var r Roster
	for i := 0; i < MaxPlayers; i++ {
		if _, err := r.Add(NewPlayer("p", 1, 1, 1)); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
	}
	if _, err := r.Add(NewPlayer("extra", 1, 1, 1)); !errors.Is(err, ErrRosterFull) {
		t.Errorf("Add() to full roster error = %v, want ErrRosterFull", err)
	}

	r.Get(2).Build = "eleven_point_five"
	if !r.HasBuild("eleven_point_five") {
		t.Error("HasBuild() = false")
	}

	if removed := r.Remove(1); removed == nil {
		t.Fatal("Remove(1) = nil")
	}
	r.Get(3).HP = 0

	living := r.Living()
	if len(living) != 2 || living[0] != 0 || living[1] != 2 {
		t.Errorf("Living() = %v, want [0 2]", living)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if r.Get(9) != nil || r.Remove(-1) != nil {
		t.Error("out-of-range slot returned a player")
	}

	r.Reset()
	if r.Count() != 0 {
		t.Errorf("Count() after Reset = %d", r.Count())
	}
}
