package gamedata

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
)

func TestCatalogEnemies(t *testing.T) {
	c := MustLoadCatalog()

	tests := []struct {
		id                   string
		name                 string
		hp, attack, defense int
	}{
		{"weak", "Billi", 20, 5, 3},
		{"medium", "Democane", 35, 8, 5},
		{"boss", "Demotorzone", 60, 12, 7},
	}
	if c.Enemies.Count() != len(tests) {
		t.Fatalf("Expected %d enemies, got %d", len(tests), c.Enemies.Count())
	}

	reg := c.Enemies
	for _, tt := range tests {
		e := reg.GetByID(tt.id)
		if e == nil {
			t.Errorf("Expected enemy %q not found", tt.id)
			continue
		}
		if e.Name != tt.name || e.HP != tt.hp || e.Attack != tt.attack || e.Defense != tt.defense {
			t.Errorf("enemy %q = %s %d/%d/%d, want %s %d/%d/%d",
				tt.id, e.Name, e.HP, e.Attack, e.Defense, tt.name, tt.hp, tt.attack, tt.defense)
		}
	}
	if !reg.GetByID("boss").Boss {
		t.Error("boss tier is not flagged as boss")
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}

	if c.Zones.Count() != 10 {
		t.Errorf("Zones.Count() = %d, want 10", c.Zones.Count())
	}
	if c.Items.Count() != 4 {
		t.Errorf("Items.Count() = %d, want 4", c.Items.Count())
	}
	if c.Builds.Count() != 4 {
		t.Errorf("Builds.Count() = %d, want 4", c.Builds.Count())
	}
	if c.ItemNoneWeight != 50 {
		t.Errorf("ItemNoneWeight = %d, want 50", c.ItemNoneWeight)
	}

	items := []struct {
		id                    string
		attack, defense, luck int
		weight                int
	}{
		{"bicycle", 0, 0, 3, 15},
		{"hellfire_shirt", 5, 0, 0, 15},
		{"compass", 0, 0, 2, 10},
		{"metal_riff", 3, 3, 0, 10},
	}
	for _, tt := range items {
		it := c.Item(tt.id)
		if it == nil {
			t.Errorf("Item(%q) = nil", tt.id)
			continue
		}
		if it.Attack != tt.attack || it.Defense != tt.defense || it.Luck != tt.luck || it.SpawnWeight != tt.weight {
			t.Errorf("Item(%q) = %+v", tt.id, *it)
		}
	}

	power := c.Action("power_attack")
	if power == nil || power.HPCost != 3 || power.PowerPercent != 150 || !power.ConsumesTurn {
		t.Errorf("Action(power_attack) = %+v", power)
	}
	if def := c.Action("defend"); def == nil || def.DefenseBonus != 5 || def.Strikes() {
		t.Errorf("Action(defend) = %+v", def)
	}
	if use := c.Action("use_item"); use == nil || use.ConsumesTurn {
		t.Errorf("Action(use_item) = %+v", use)
	}

	eleven := c.Build("eleven_point_five")
	if eleven == nil || !eleven.Unique || eleven.Rename == "" || eleven.Luck != -7 {
		t.Errorf("Build(eleven_point_five) = %+v", eleven)
	}
}

func TestSpawnTablesOrder(t *testing.T) {
	spawns := MustLoadCatalog().Spawns

	want := []SpawnEntry{{"none", 40}, {"medium", 30}, {"weak", 30}}
	if len(spawns.Overworld) != len(want) {
		t.Fatalf("overworld table has %d entries, want %d", len(spawns.Overworld), len(want))
	}
	for i, e := range want {
		if spawns.Overworld[i] != e {
			t.Errorf("overworld[%d] = %+v, want %+v", i, spawns.Overworld[i], e)
		}
	}
	for _, e := range spawns.Underworld {
		if e.Enemy == "boss" || e.Enemy == "weak" {
			t.Errorf("underworld table spawns %q", e.Enemy)
		}
	}
}

func validFS() fstest.MapFS {
	files := fstest.MapFS{}
	for _, name := range []string{"enemies.json", "items.json", "zones.json", "builds.json", "actions.json", "spawns.json"} {
		content, err := dataFS.ReadFile(name)
		if err != nil {
			panic(err)
		}
		files[name] = &fstest.MapFile{Data: content}
	}
	return files
}

func TestLoadCatalogFSErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "missing file",
			file:    "zones.json",
			wantErr: "zones.json",
		},
		{
			name:    "bad json",
			file:    "items.json",
			content: `{"items": [`,
			wantErr: "items.json",
		},
		{
			name:    "unknown field",
			file:    "builds.json",
			content: `{"builds": [{"id": "x", "speed": 3}]}`,
			wantErr: "speed",
		},
		{
			name:    "duplicate id",
			file:    "zones.json",
			content: `{"zones": [{"id": "cave"}, {"id": "cave"}]}`,
			wantErr: "duplicate",
		},
		{
			name:    "no boss",
			file:    "enemies.json",
			content: `{"enemies": [{"id": "weak", "hp": 20}, {"id": "medium", "hp": 35}]}`,
			wantErr: "bosses",
		},
		{
			name:    "renamed tier",
			file:    "enemies.json",
			content: `{"enemies": [{"id": "weak", "hp": 20}, {"id": "middle", "hp": 35}, {"id": "boss", "hp": 60, "boss": true}]}`,
			wantErr: `missing tier "medium"`,
		},
		{
			name:    "boss flag on a minor tier",
			file:    "enemies.json",
			content: `{"enemies": [{"id": "weak", "hp": 20, "boss": true}, {"id": "medium", "hp": 35}, {"id": "boss", "hp": 60}]}`,
			wantErr: "only the boss tier",
		},
		{
			name:    "missing archetype",
			file:    "zones.json",
			content: `{"zones": [{"id": "forest"}]}`,
			wantErr: `missing archetype "school"`,
		},
		{
			name:    "missing item",
			file:    "items.json",
			content: `{"noneWeight": 50, "items": [{"id": "bicycle"}]}`,
			wantErr: `missing item "compass"`,
		},
		{
			name:    "unknown spawn",
			file:    "spawns.json",
			content: `{"overworld": [{"enemy": "dragon", "weight": 1}], "underworld": [{"enemy": "none", "weight": 1}]}`,
			wantErr: "dragon",
		},
		{
			name:    "zero weights",
			file:    "spawns.json",
			content: `{"overworld": [{"enemy": "none", "weight": 0}], "underworld": [{"enemy": "none", "weight": 1}]}`,
			wantErr: "sum above zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := validFS()
			if tt.content == "" {
				delete(files, tt.file)
			} else {
				files[tt.file] = &fstest.MapFile{Data: []byte(tt.content)}
			}

			_, err := LoadCatalogFS(files)
			if err == nil {
				t.Fatal("LoadCatalogFS() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadCatalogFS() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  tcell.Color
		valid bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), true},
		{"00FF00", tcell.NewRGBColor(0, 255, 0), true},
		{"#0000ff", tcell.NewRGBColor(0, 0, 255), true},
		{"invalid", tcell.ColorDefault, false},
		{"#FFF", tcell.ColorDefault, false},
		{"#GG0000", tcell.ColorDefault, false},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
		if tt.valid && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDefGlyphsAndColors(t *testing.T) {
	def := EnemyDef{ID: "test", Glyph: "T", Color: "#FF0000"}
	if def.GlyphRune() != 'T' {
		t.Errorf("GlyphRune() = %c, want T", def.GlyphRune())
	}
	if def.TCellColor() != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("TCellColor() = %v", def.TCellColor())
	}

	blank := EnemyDef{Color: "nope"}
	if blank.GlyphRune() != '?' {
		t.Errorf("empty GlyphRune() = %c, want ?", blank.GlyphRune())
	}
	if blank.TCellColor() != tcell.ColorRed {
		t.Errorf("fallback TCellColor() = %v, want red", blank.TCellColor())
	}

	zone := ZoneDef{}
	if zone.GlyphRune() != '.' || zone.TCellColor() != tcell.ColorWhite {
		t.Error("ZoneDef fallbacks not applied")
	}
	item := ItemDef{Glyph: "Ω"}
	if item.GlyphRune() != 'Ω' {
		t.Errorf("multi-byte GlyphRune() = %c", item.GlyphRune())
	}
}
