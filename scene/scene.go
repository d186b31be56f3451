// Package scene loads authored scene manifests into a world.
//
// A manifest is a JSON document listing entities with their starting
// transforms, attached scripts, and tags:
//
//	{
//	  "name": "demo",
//	  "entities": [
//	    {
//	      "name": "player",
//	      "position": [0, 1, 0],
//	      "scripts": ["scripts/mover.wasm"],
//	      "tags": ["hero"]
//	    }
//	  ]
//	}
//
// Omitted transform fields default like spawned entities do: position
// and rotation to zero, scale to (1,1,1).
package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okto-dev/scriptling/bridge"
	"github.com/okto-dev/scriptling/engine"
)

// Scene is a parsed manifest.
type Scene struct {
	Name     string       `json:"name,omitempty"`
	Entities []EntitySpec `json:"entities"`
}

// EntitySpec describes one entity to spawn.
type EntitySpec struct {
	Name     string      `json:"name"`
	Position [3]float32  `json:"position,omitempty"`
	Rotation [3]float32  `json:"rotation,omitempty"`
	Scale    *[3]float32 `json:"scale,omitempty"`
	Scripts  []string    `json:"scripts,omitempty"`
	Tags     []string    `json:"tags,omitempty"`
}

// Parse reads a manifest from r.
func Parse(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i, e := range s.Entities {
		if e.Name == "" {
			return nil, fmt.Errorf("parse scene: entity %d has no name", i)
		}
	}
	return &s, nil
}

// Load reads a manifest file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Apply spawns the scene's entities into w and returns their ids, in
// manifest order.
func (s *Scene) Apply(w *engine.World) []bridge.EntityID {
	ids := make([]bridge.EntityID, 0, len(s.Entities))
	for _, spec := range s.Entities {
		opts := []engine.SpawnOption{
			engine.At(spec.Position[0], spec.Position[1], spec.Position[2]),
			engine.Rotated(spec.Rotation[0], spec.Rotation[1], spec.Rotation[2]),
		}
		if spec.Scale != nil {
			opts = append(opts, engine.Scaled(spec.Scale[0], spec.Scale[1], spec.Scale[2]))
		}
		for _, path := range spec.Scripts {
			opts = append(opts, engine.WithScript(path))
		}
		if len(spec.Tags) > 0 {
			opts = append(opts, engine.WithTags(spec.Tags...))
		}
		ids = append(ids, w.Spawn(spec.Name, opts...))
	}
	return ids
}

// Snapshot captures the live world as a manifest, preserving spawn
// order. Script attachments and tags carry over; runtime-only state
// (initialization flags, module instances) does not.
func Snapshot(w *engine.World) *Scene {
	s := &Scene{}
	w.Each(func(e *engine.Entity) {
		spec := EntitySpec{
			Name:     e.Name,
			Position: [3]float32{e.Transform.Position.X, e.Transform.Position.Y, e.Transform.Position.Z},
			Rotation: [3]float32{e.Transform.Rotation.X, e.Transform.Rotation.Y, e.Transform.Rotation.Z},
			Scale:    &[3]float32{e.Transform.Scale.X, e.Transform.Scale.Y, e.Transform.Scale.Z},
			Tags:     append([]string(nil), e.Tags...),
		}
		for _, ref := range e.Scripts {
			spec.Scripts = append(spec.Scripts, ref.Path)
		}
		s.Entities = append(s.Entities, spec)
	})
	return s
}

// Save writes the manifest to path, indented.
func (s *Scene) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
