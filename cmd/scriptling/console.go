package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/okto-dev/scriptling/engine"
	"github.com/okto-dev/scriptling/scene"
)

const consoleHelp = `Load a scene and step the simulation by hand.

Commands:
  tick [n] [dt]          advance n ticks (default 1) with fixed dt (default 1/60)
  ls                     list entities
  get <id> <channel>     read a channel, e.g. get 1 position.x
  set <id> <channel> <v> write a channel
  spawn <name> [x y z]   create an entity
  attach <id> <path>     attach a script to an entity
  despawn <id>           remove an entity
  save <path>            snapshot the world to a scene file
  exit                   quit (also Ctrl+D)`

var consoleCmd = &cobra.Command{
	Use:   "console <scene.json>",
	Short: "Interactive stepping console",
	Long:  consoleHelp,
	Args:  cobra.ExactArgs(1),
	Run:   runConsole,
}

func init() {
	consoleCmd.Flags().String("history", "", "History file path (default: ~/.scriptling_history)")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) {
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".scriptling_history")
	}

	world := loadWorld(args[0])
	rt := buildRuntime(cmd, world)
	defer rt.Close(context.Background())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "sim> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fatalf("initializing readline: %v", err)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "scriptling console (type 'help' for commands, Ctrl+D to exit)")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				return
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return
		}
		if err := dispatch(rt, world, fields); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func dispatch(rt *engine.Runtime, world *engine.World, fields []string) error {
	cmd, rest := fields[0], fields[1:]
	switch cmd {
	case "help":
		fmt.Println(consoleHelp)
		return nil

	case "tick":
		n := 1
		dt := float32(1) / 60
		if len(rest) > 0 {
			v, err := strconv.Atoi(rest[0])
			if err != nil || v < 1 {
				return fmt.Errorf("invalid tick count %q", rest[0])
			}
			n = v
		}
		if len(rest) > 1 {
			v, err := strconv.ParseFloat(rest[1], 32)
			if err != nil {
				return fmt.Errorf("invalid dt %q", rest[1])
			}
			dt = float32(v)
		}
		ticker := engine.NewTicker()
		if err := ticker.Step(n, dt, func(dt float32) error {
			return rt.Tick(context.Background(), dt)
		}); err != nil {
			return err
		}
		fmt.Printf("advanced %d tick(s)\n", n)
		return nil

	case "ls":
		printWorld(os.Stdout, world)
		return nil

	case "get":
		if len(rest) != 2 {
			return fmt.Errorf("usage: get <id> <channel>")
		}
		id, err := parseEntityID(rest[0])
		if err != nil {
			return err
		}
		c, a, err := parseChannel(rest[1])
		if err != nil {
			return err
		}
		if _, ok := world.Get(id); !ok {
			return fmt.Errorf("no entity %d", id)
		}
		fmt.Printf("%g\n", world.Channel(id, c, a))
		return nil

	case "set":
		if len(rest) != 3 {
			return fmt.Errorf("usage: set <id> <channel> <value>")
		}
		id, err := parseEntityID(rest[0])
		if err != nil {
			return err
		}
		c, a, err := parseChannel(rest[1])
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(rest[2], 32)
		if err != nil {
			return fmt.Errorf("invalid value %q", rest[2])
		}
		if _, ok := world.Get(id); !ok {
			return fmt.Errorf("no entity %d", id)
		}
		world.SetChannel(id, c, a, float32(v))
		return nil

	case "spawn":
		if len(rest) != 1 && len(rest) != 4 {
			return fmt.Errorf("usage: spawn <name> [x y z]")
		}
		opts := []engine.SpawnOption{}
		if len(rest) == 4 {
			var pos [3]float32
			for i, s := range rest[1:] {
				v, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return fmt.Errorf("invalid coordinate %q", s)
				}
				pos[i] = float32(v)
			}
			opts = append(opts, engine.At(pos[0], pos[1], pos[2]))
		}
		id := world.Spawn(rest[0], opts...)
		fmt.Printf("spawned entity %d\n", id)
		return nil

	case "attach":
		if len(rest) != 2 {
			return fmt.Errorf("usage: attach <id> <script.wasm>")
		}
		id, err := parseEntityID(rest[0])
		if err != nil {
			return err
		}
		if !world.AddScript(id, rest[1]) {
			return fmt.Errorf("no entity %d", id)
		}
		return nil

	case "despawn":
		if len(rest) != 1 {
			return fmt.Errorf("usage: despawn <id>")
		}
		id, err := parseEntityID(rest[0])
		if err != nil {
			return err
		}
		if !world.Despawn(id) {
			return fmt.Errorf("no entity %d", id)
		}
		return nil

	case "save":
		if len(rest) != 1 {
			return fmt.Errorf("usage: save <path>")
		}
		return scene.Snapshot(world).Save(rest[0])

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}
