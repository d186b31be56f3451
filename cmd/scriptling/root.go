package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okto-dev/scriptling/bridge"
	"github.com/okto-dev/scriptling/engine"
	"github.com/okto-dev/scriptling/scene"
)

var rootCmd = &cobra.Command{
	Use:   "scriptling",
	Short: "WASM entity-scripting host",
	Long: `scriptling - Drive simulation entities with sandboxed WASM scripts.

Load a scene manifest, attach compiled guest scripts to entities, and run
the simulation headless, live in the terminal, or interactively. Guest
scripts see entity transforms only through the host function table; they
hold no reference to host memory.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable compilation cache")
	rootCmd.PersistentFlags().String("memory", "256mb", "Guest memory limit: 1mb, 16mb, 64mb, 256mb, 1gb")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadWorld reads a scene manifest and populates a fresh world.
func loadWorld(path string) *engine.World {
	s, err := scene.Load(path)
	if err != nil {
		fatalf("%v", err)
	}
	w := engine.NewWorld()
	s.Apply(w)
	return w
}

// buildRuntime assembles a Runtime from the persistent flags.
func buildRuntime(cmd *cobra.Command, w *engine.World, extra ...engine.RuntimeOption) *engine.Runtime {
	noCache, _ := cmd.Root().PersistentFlags().GetBool("no-cache")
	memoryLimit, _ := cmd.Root().PersistentFlags().GetString("memory")

	opts := extra
	if !noCache {
		opts = append(opts, engine.WithDiskCache())
	}
	if pages := parseMemoryLimit(memoryLimit); pages > 0 {
		opts = append(opts, engine.WithMemoryLimit(pages))
	}

	rt, err := engine.NewRuntime(w, opts...)
	if err != nil {
		fatalf("%v", err)
	}
	return rt
}

func parseMemoryLimit(s string) uint32 {
	switch strings.ToLower(s) {
	case "1mb":
		return 16
	case "16mb":
		return 256
	case "64mb":
		return 1024
	case "256mb":
		return 4096
	case "1gb":
		return 16384
	default:
		return 0 // use wazero default
	}
}

func parseEntityID(s string) (bridge.EntityID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q", s)
	}
	return bridge.EntityID(n), nil
}

// parseChannel maps "position.x" style names to a category and axis.
func parseChannel(s string) (engine.Category, bridge.Axis, error) {
	cat, axis, ok := strings.Cut(s, ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid channel %q (expected category.axis)", s)
	}

	var c engine.Category
	switch cat {
	case "position", "pos":
		c = engine.CategoryPosition
	case "rotation", "rot":
		c = engine.CategoryRotation
	case "scale":
		c = engine.CategoryScale
	default:
		return 0, 0, fmt.Errorf("unknown category %q", cat)
	}

	var a bridge.Axis
	switch axis {
	case "x":
		a = bridge.AxisX
	case "y":
		a = bridge.AxisY
	case "z":
		a = bridge.AxisZ
	default:
		return 0, 0, fmt.Errorf("unknown axis %q", axis)
	}
	return c, a, nil
}

// printWorld writes an aligned entity table.
func printWorld(out io.Writer, w *engine.World) {
	fmt.Fprintf(out, "%-4s %-16s %-26s %-26s %-26s %s\n",
		"ID", "NAME", "POSITION", "ROTATION", "SCALE", "SCRIPTS")
	w.Each(func(e *engine.Entity) {
		fmt.Fprintf(out, "%-4d %-16s %-26s %-26s %-26s %d\n",
			e.ID, e.Name,
			fmtVec(e.Transform.Position),
			fmtVec(e.Transform.Rotation),
			fmtVec(e.Transform.Scale),
			len(e.Scripts))
	})
}

func fmtVec(v engine.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
