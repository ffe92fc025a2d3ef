package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/detail"
	"github.com/braunma/rackfloor/pkg/utils"
)

type streamFlags struct {
	count          int
	fps            int
	maxFrames      int
	resetAt        int
	resetCount     int
	simplified     bool
	reducedEffects bool
	selected       int
	maxConnections int
}

func newStreamCmd() *cobra.Command {
	f := &streamFlags{}
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Simulate the detail ramp frame by frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStream(f)
		},
	}

	cmd.Flags().IntVarP(&f.count, "count", "n", 500, "Number of racks in the scene")
	cmd.Flags().IntVar(&f.fps, "fps", 60, "Simulated frame rate")
	cmd.Flags().IntVar(&f.maxFrames, "max-frames", 3600, "Stop after this many frames")
	cmd.Flags().IntVar(&f.resetAt, "reset-at", -1, "Replace the rack set at this frame (-1 disables)")
	cmd.Flags().IntVar(&f.resetCount, "reset-count", 0, "Rack count after the reset (0 keeps --count)")
	cmd.Flags().BoolVar(&f.simplified, "simplified", false, "Force the simplified view")
	cmd.Flags().BoolVar(&f.reducedEffects, "reduced-effects", false, "Low effects: skip the ramp and the camera proximity override")
	cmd.Flags().IntVar(&f.selected, "selected", -1, "Index of a selected rack that always renders in detail")
	cmd.Flags().IntVar(&f.maxConnections, "max-connections", constants.DefaultMaxConnections, "Maximum rendered connections")
	return cmd
}

func runStream(f *streamFlags) error {
	logger := utils.NewLogger(verbose)
	if f.fps <= 0 {
		err := fmt.Errorf("fps must be positive, got %d", f.fps)
		logger.Error("Invalid flags", err)
		return err
	}

	banner(logger, fmt.Sprintf("Streaming detail for %d racks at %d fps", f.count, f.fps))

	ctrl := detail.NewController()
	defer ctrl.Stop()

	total := f.count
	lowEffects := f.simplified || f.reducedEffects
	token := ctrl.Reset(total, lowEffects)
	logger.Info("Initial budget %d, step %d, connections %d",
		ctrl.Budget(), detail.StepSize(total), detail.ConnectionBudget(total, f.maxConnections, constants.ConnectionsPerRack))

	frame := time.Second / time.Duration(f.fps)
	last := ctrl.Budget()
	frames := 0
	for ; frames < f.maxFrames; frames++ {
		if frames == f.resetAt {
			stale := token
			if f.resetCount > 0 {
				total = f.resetCount
			}
			token = ctrl.Reset(total, lowEffects)
			// A tick from the abandoned ramp must not move the budget
			ctrl.Tick(stale, frame)
			last = ctrl.Budget()
			logger.Warning("Frame %d: rack set replaced (%d racks, episode %d), budget restarts at %d", frames, ctrl.Total(), ctrl.Token(), last)
		}

		budget := ctrl.Tick(token, frame)
		if budget != last {
			logger.Debug("Frame %d: budget %d/%d", frames, budget, total)
			last = budget
		}
		if !ctrl.Active() && frames > f.resetAt {
			break
		}
	}

	detailed := 0
	for i := 0; i < total; i++ {
		signals := detail.Signals{
			Selected:       i == f.selected,
			CameraDistance: math.NaN(),
			ReducedEffects: f.reducedEffects,
		}
		// The first rack sits at the camera
		if i == 0 {
			signals.CameraDistance = 0
		}
		if ctrl.IsDetailed(i, signals) {
			detailed++
		}
	}

	elapsed := time.Duration(frames) * frame
	if ctrl.Active() {
		logger.Warning("Ramp still active after %d frames (budget %d/%d)", frames, ctrl.Budget(), ctrl.Total())
	} else {
		logger.Success("Ramp settled after %d frames (%s): budget %d/%d", frames, elapsed, ctrl.Budget(), ctrl.Total())
	}
	logger.Info("%d racks render in detail, %d connections", detailed, detail.ConnectionBudget(total, f.maxConnections, constants.ConnectionsPerRack))
	return nil
}
