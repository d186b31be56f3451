package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/okto-dev/scriptling/engine"
	"github.com/okto-dev/scriptling/scene"
)

var runCmd = &cobra.Command{
	Use:   "run <scene.json>",
	Short: "Run a scene headless",
	Long: `Run a scene's scripts for a fixed number of ticks (or until
interrupted) and print the final entity transforms.

Examples:
  scriptling run demo.json --ticks 120
  scriptling run demo.json --rate 30 --duration 10s
  scriptling run demo.json --ticks 1000 --profile`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().Int("ticks", 0, "Run exactly N ticks then stop (0 = run until interrupted)")
	runCmd.Flags().Float32("dt", 0, "Fixed delta time per tick in seconds (0 = 1/rate)")
	runCmd.Flags().Int("rate", 60, "Ticks per second")
	runCmd.Flags().Duration("duration", 0, "Stop after this wall-clock duration")
	runCmd.Flags().Bool("profile", false, "Write a CPU profile to the working directory")
	runCmd.Flags().String("snapshot", "", "Save the final world state to this scene file")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	ticks, _ := cmd.Flags().GetInt("ticks")
	fixedDT, _ := cmd.Flags().GetFloat32("dt")
	rate, _ := cmd.Flags().GetInt("rate")
	duration, _ := cmd.Flags().GetDuration("duration")
	profileRun, _ := cmd.Flags().GetBool("profile")
	snapshotPath, _ := cmd.Flags().GetString("snapshot")

	if profileRun {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	world := loadWorld(args[0])
	rt := buildRuntime(cmd, world)
	defer rt.Close(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	ticker := engine.NewTicker(engine.WithTickRate(rate))

	var err error
	if ticks > 0 {
		dt := fixedDT
		if dt <= 0 {
			dt = float32(1) / float32(rate)
		}
		err = ticker.Step(ticks, dt, func(dt float32) error {
			return rt.Tick(ctx, dt)
		})
	} else {
		err = ticker.Run(ctx, func(dt float32) error {
			return rt.Tick(ctx, dt)
		})
	}
	// Interrupt and timeout are clean stops.
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		fatalf("%v", err)
	}

	printWorld(os.Stdout, world)

	if snapshotPath != "" {
		if err := scene.Snapshot(world).Save(snapshotPath); err != nil {
			fatalf("%v", err)
		}
	}
}
