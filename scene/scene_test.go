package scene_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/okto-dev/scriptling/engine"
	"github.com/okto-dev/scriptling/scene"
)

const demoScene = `{
  "name": "demo",
  "entities": [
    {
      "name": "player",
      "position": [0, 1, 0],
      "scripts": ["scripts/mover.wasm"],
      "tags": ["hero"]
    },
    {
      "name": "prop",
      "position": [3, 0, -2],
      "rotation": [0, 45, 0],
      "scale": [2, 2, 2]
    }
  ]
}`

func TestParseAndApply(t *testing.T) {
	s, err := scene.Parse(strings.NewReader(demoScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "demo" || len(s.Entities) != 2 {
		t.Fatalf("parsed %q with %d entities", s.Name, len(s.Entities))
	}

	w := engine.NewWorld()
	ids := s.Apply(w)
	if len(ids) != 2 {
		t.Fatalf("Apply returned %d ids", len(ids))
	}

	player, _ := w.Get(ids[0])
	if player.Name != "player" {
		t.Errorf("name = %q", player.Name)
	}
	if player.Transform.Position != (engine.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("position = %v", player.Transform.Position)
	}
	// Omitted scale defaults like Spawn does.
	if player.Transform.Scale != (engine.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("default scale = %v", player.Transform.Scale)
	}
	if len(player.Scripts) != 1 || player.Scripts[0].Path != "scripts/mover.wasm" {
		t.Errorf("scripts = %+v", player.Scripts)
	}
	if !player.HasTag("hero") {
		t.Errorf("tags = %v", player.Tags)
	}

	prop, _ := w.Get(ids[1])
	if prop.Transform.Scale != (engine.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("prop scale = %v", prop.Transform.Scale)
	}
	if prop.Transform.Rotation != (engine.Vec3{X: 0, Y: 45, Z: 0}) {
		t.Errorf("prop rotation = %v", prop.Transform.Rotation)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := scene.Parse(strings.NewReader(`{"entities":[{"name":"x","velocity":[1,0,0]}]}`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseRejectsUnnamedEntity(t *testing.T) {
	_, err := scene.Parse(strings.NewReader(`{"entities":[{"position":[1,2,3]}]}`))
	if err == nil {
		t.Fatal("expected error for unnamed entity")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	w := engine.NewWorld()
	w.Spawn("a", engine.At(1, 2, 3), engine.WithScript("s.wasm"), engine.WithTags("solid"))
	w.Spawn("b", engine.Scaled(4, 4, 4))

	snap := scene.Snapshot(w)

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := snap.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := scene.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	w2 := engine.NewWorld()
	ids := loaded.Apply(w2)
	if len(ids) != 2 {
		t.Fatalf("round trip produced %d entities", len(ids))
	}

	a, _ := w2.Get(ids[0])
	if a.Transform.Position != (engine.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("a position = %v", a.Transform.Position)
	}
	if len(a.Scripts) != 1 || a.Scripts[0].Path != "s.wasm" {
		t.Errorf("a scripts = %+v", a.Scripts)
	}
	b, _ := w2.Get(ids[1])
	if b.Transform.Scale != (engine.Vec3{X: 4, Y: 4, Z: 4}) {
		t.Errorf("b scale = %v", b.Transform.Scale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := scene.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
