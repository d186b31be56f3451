package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/okto-dev/scriptling/engine"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scene.json>",
	Short: "Run a scene with a live terminal view",
	Long: `Run a scene's scripts and render the entity table live in the
terminal, refreshed every tick. Press q or Esc to stop.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().Int("rate", 30, "Ticks per second")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	rate, _ := cmd.Flags().GetInt("rate")

	world := loadWorld(args[0])
	// Guest prints would corrupt the screen; drop them while watching.
	rt := buildRuntime(cmd, world,
		engine.WithStdout(io.Discard),
		engine.WithStderr(io.Discard))
	defer rt.Close(context.Background())

	screen, err := tcell.NewScreen()
	if err != nil {
		fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatalf("init terminal: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	var tick int
	ticker := engine.NewTicker(engine.WithTickRate(rate))
	runErr := ticker.Run(ctx, func(dt float32) error {
		if err := rt.Tick(ctx, dt); err != nil {
			return err
		}
		tick++
		drawWorld(screen, world, tick, dt)
		return nil
	})

	screen.Fini()
	if runErr != nil {
		fatalf("%v", runErr)
	}
	printWorld(cmd.OutOrStdout(), world)
}

func drawWorld(screen tcell.Screen, w *engine.World, tick int, dt float32) {
	screen.Clear()

	header := tcell.StyleDefault.Bold(true)
	plain := tcell.StyleDefault

	emitStr(screen, 0, 0, header,
		fmt.Sprintf("tick %d  dt %.4fs  entities %d  (q to quit)", tick, dt, w.Len()))
	emitStr(screen, 0, 2, header,
		fmt.Sprintf("%-4s %-16s %-26s %-26s %-26s", "ID", "NAME", "POSITION", "ROTATION", "SCALE"))

	row := 3
	w.Each(func(e *engine.Entity) {
		emitStr(screen, 0, row, plain,
			fmt.Sprintf("%-4d %-16s %-26s %-26s %-26s",
				e.ID, e.Name,
				fmtVec(e.Transform.Position),
				fmtVec(e.Transform.Rotation),
				fmtVec(e.Transform.Scale)))
		row++
	})

	screen.Show()
}

func emitStr(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
