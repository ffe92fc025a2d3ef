package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/edit"
	"github.com/braunma/rackfloor/pkg/facility"
	"github.com/braunma/rackfloor/pkg/generator"
	"github.com/braunma/rackfloor/pkg/layout"
	"github.com/braunma/rackfloor/pkg/loader"
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/persistence"
	"github.com/braunma/rackfloor/pkg/utils"
)

type replayFlags struct {
	script   string
	from     string
	count    int
	seed     int64
	autosave time.Duration
	save     bool
}

func newReplayCmd() *cobra.Command {
	f := &replayFlags{}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply a YAML list of edit actions to a facility",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.script, "script", "s", "", "Replay script file or directory (required)")
	cmd.Flags().StringVar(&f.from, "from", "", "Start from this save file instead of a generated facility")
	cmd.Flags().IntVarP(&f.count, "count", "n", 20, "Racks to generate when --from is not set")
	cmd.Flags().Int64Var(&f.seed, "seed", constants.DefaultSeed, "Generation seed (env RACKFLOOR_SEED)")
	cmd.Flags().DurationVar(&f.autosave, "autosave", constants.AutosaveInterval, "Minimum time between autosave snapshots")
	cmd.Flags().BoolVar(&f.save, "save", false, "Write the final facility to the save directory")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

// replayer wires the facility owner, layout engine and edit session together
type replayer struct {
	state   *facility.State
	hub     *layout.CaptureHub
	engine  *layout.Engine
	session *edit.Session
	saver   *persistence.Autosaver
	logger  *utils.Logger
}

func newReplayer(cat catalog.Repository, racks []*models.Rack, saver *persistence.Autosaver, logger *utils.Logger) *replayer {
	state := facility.NewState(cat, racks, logger)
	hub := layout.NewCaptureHub()
	return &replayer{
		state:   state,
		hub:     hub,
		engine:  layout.NewEngine(layout.DefaultConfig(), state, hub, logger),
		session: edit.NewSession(state, logger),
		saver:   saver,
		logger:  logger,
	}
}

func runReplay(cmd *cobra.Command, f *replayFlags) error {
	logger := utils.NewLogger(verbose)

	cat, err := loadCatalog(logger)
	if err != nil {
		logger.Error("Failed to load equipment catalog", err)
		return err
	}

	steps, err := loadSteps(f.script, logger)
	if err != nil {
		logger.Error("Failed to load replay script", err)
		return err
	}

	opts := generator.DefaultOptions()
	opts.Seed = seedFromEnv(cmd, f.seed, logger)
	racks := generator.Generate(f.count, cat, opts)

	store := persistence.NewFileStore(saveDirectory(), constants.AutosaveSlots, logger)
	saver := persistence.NewAutosaver(persistence.NewRing(constants.AutosaveSlots), nil, f.autosave, logger)
	r := newReplayer(cat, racks, saver, logger)
	defer r.engine.Close()

	if f.from != "" {
		raw, err := persistence.ReadFile(f.from)
		if err != nil {
			logger.Error("Failed to read save file", err)
			return err
		}
		if _, err := persistence.Restore(r.state, raw, logger); err != nil {
			logger.Error("Restore failed, keeping generated facility", err)
		}
		r.engine.Refresh()
	}

	banner(logger, fmt.Sprintf("Replaying %d steps on %d racks", len(steps), r.state.Len()))

	failed := 0
	for i, step := range steps {
		if err := r.apply(step); err != nil {
			logger.Warning("Step %d (%s): %v", i+1, step.Action, err)
			failed++
			continue
		}
		r.saver.Offer(r.state.Racks())
	}

	// The final state is always kept, whatever the autosave interval
	r.saver.Flush(r.state.Racks())
	r.report()

	if f.save {
		path, err := store.Save(r.state.Racks())
		if err != nil {
			logger.Error("Failed to save facility", err)
			return err
		}
		logger.Success("Saved facility to %s", path)
	}

	if failed > 0 {
		logger.Warning("REPLAY COMPLETE: %d of %d steps failed", failed, len(steps))
	} else {
		logger.Success("REPLAY COMPLETE: %d steps applied", len(steps))
	}
	return nil
}

var errStepFailed = errors.New("rejected")

// apply runs one script step against the wired components
func (r *replayer) apply(step models.ScriptStep) error {
	switch strings.ToLower(step.Action) {
	case "place":
		id, ok := r.session.PlaceAt(step.Col, step.Row)
		if !ok {
			return errStepFailed
		}
		r.engine.Refresh()
		r.logger.Debug("Placed %s at (%d, %d)", id, step.Col, step.Row)
		return nil

	case "move":
		return r.move(step.ID, layout.Point{X: step.X, Z: step.Z})

	case "add_equipment":
		id, ok := r.state.AddEquipmentToRack(step.ID, step.Equipment, step.UStart)
		if !ok {
			return errStepFailed
		}
		r.logger.Debug("Mounted %s as %s in %s", step.Equipment, id, step.ID)
		return nil

	case "remove_equipment":
		if !r.state.RemoveEquipmentFromRack(step.ID, step.Equipment) {
			return errStepFailed
		}
		return nil
	}

	action, err := stepAction(step)
	if err != nil {
		return err
	}
	st := r.session.Dispatch(action)
	r.engine.SetSnap(st.SnapEnabled)
	r.engine.Refresh()
	return nil
}

// move drags a rack from its current cell center to target through pointer capture
func (r *replayer) move(rackID string, target layout.Point) error {
	rack, ok := r.state.Rack(rackID)
	if !ok {
		return fmt.Errorf("rack %s not found", rackID)
	}
	start := r.engine.GridToWorld(rack.PositionX, rack.PositionY)
	if !r.engine.BeginDrag(rackID, start) {
		return errStepFailed
	}
	r.hub.Dispatch(layout.PointerEvent{Kind: layout.PointerMove, Pos: target})
	r.hub.Dispatch(layout.PointerEvent{Kind: layout.PointerUp, Pos: target})
	if _, dragging := r.engine.Dragging(); dragging {
		r.engine.CancelDrag()
		return errStepFailed
	}

	moved, _ := r.state.Rack(rackID)
	if moved.PositionX == rack.PositionX && moved.PositionY == rack.PositionY {
		r.logger.Debug("Rack %s stayed at (%d, %d)", rackID, rack.PositionX, rack.PositionY)
		return nil
	}
	r.logger.Debug("Moved %s to (%d, %d)", rackID, moved.PositionX, moved.PositionY)
	return nil
}

func (r *replayer) report() {
	st := r.session.State()
	banner(r.logger, "Edit history")
	for i, snap := range st.History {
		marker := "  "
		if i == st.Index {
			marker = "▶ "
		}
		r.logger.Info("%s%3d  mode=%-9s selected=%v", marker, i, snap.Mode, snap.SelectedIDs)
	}
	cur := st.Current()
	r.logger.Info("Current: mode %s, %d selected, undo %t, redo %t", cur.Mode, len(cur.SelectedIDs), st.CanUndo(), st.CanRedo())
	r.logger.Info("Snap %t, multi-select %t, clipboard %v", r.engine.Snap(), st.MultiSelect, st.Clipboard)

	maxCol, maxRow := r.engine.Extent()
	r.logger.Info("Grid extent %d columns x %d rows", maxCol+1, maxRow+1)
	if n := r.hub.Listeners(); n != 0 {
		r.logger.Warning("%d pointer listeners still attached", n)
	}

	for _, cell := range r.state.Overlaps() {
		r.logger.Warning("Cell %s%02d is shared by %v", utils.RowLabel(cell.Row), cell.Col+1, r.state.RacksAt(cell.Col, cell.Row))
	}
	ring := r.saver.Ring()
	r.logger.Info("%d racks, %d/%d autosave snapshots", r.state.Len(), ring.Len(), ring.Cap())
	for i, snap := range ring.Snapshots() {
		r.logger.Debug("  snapshot -%d: %d racks", i, len(snap))
	}
}

// loadSteps reads a replay script from a file, or every script in a directory
func loadSteps(path string, logger *utils.Logger) ([]models.ScriptStep, error) {
	dl := loader.NewDataLoader(".", logger)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return dl.LoadScript(path)
	}
	return dl.LoadScriptFile(path)
}

// stepAction maps a script step onto a reducer action
func stepAction(step models.ScriptStep) (edit.Action, error) {
	switch strings.ToLower(step.Action) {
	case "set_mode":
		mode := edit.Mode(step.Mode)
		if !mode.Valid() {
			return nil, fmt.Errorf("unknown mode %q", step.Mode)
		}
		return edit.SetMode{Mode: mode}, nil
	case "select":
		if step.ID == "" {
			return nil, fmt.Errorf("select needs an id")
		}
		return edit.Select{ID: step.ID}, nil
	case "select_many":
		return edit.SelectMany{IDs: step.IDs}, nil
	case "clear_selection":
		return edit.ClearSelection{}, nil
	case "toggle_snap":
		return edit.ToggleSnap{}, nil
	case "toggle_multi_select":
		return edit.ToggleMultiSelect{}, nil
	case "copy":
		return edit.Copy{}, nil
	case "paste":
		return edit.Paste{}, nil
	case "duplicate":
		return edit.Duplicate{}, nil
	case "delete":
		return edit.Delete{}, nil
	case "undo":
		return edit.Undo{}, nil
	case "redo":
		return edit.Redo{}, nil
	}
	return nil, fmt.Errorf("unknown action %q", step.Action)
}
