package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/generator"
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/persistence"
	"github.com/braunma/rackfloor/pkg/utils"
)

type generateFlags struct {
	count     int
	seed      int64
	fill      float64
	errorRate float64
	tempBase  float64
	dense     bool
	chunk     int
	out       string
}

func newGenerateCmd() *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a seeded facility and write it as a save file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f)
		},
	}

	defaults := generator.DefaultOptions()
	cmd.Flags().IntVarP(&f.count, "count", "n", 100, "Number of racks to generate")
	cmd.Flags().Int64Var(&f.seed, "seed", constants.DefaultSeed, "Generation seed (env RACKFLOOR_SEED)")
	cmd.Flags().Float64Var(&f.fill, "fill", defaults.FillRateMultiplier, "Fill rate multiplier")
	cmd.Flags().Float64Var(&f.errorRate, "error-rate", defaults.ErrorRate, "Probability of a non-online equipment status")
	cmd.Flags().Float64Var(&f.tempBase, "temp-base", defaults.TempBase, "Base inlet temperature in °C")
	cmd.Flags().BoolVar(&f.dense, "dense", defaults.Dense, "Pack racks without gaps")
	cmd.Flags().IntVar(&f.chunk, "chunk", generator.DefaultChunkSize, "Racks per generation chunk")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write to this file instead of the save directory")
	return cmd
}

func runGenerate(cmd *cobra.Command, f *generateFlags) error {
	logger := utils.NewLogger(verbose)

	cat, err := loadCatalog(logger)
	if err != nil {
		logger.Error("Failed to load equipment catalog", err)
		return err
	}

	opts := generator.Options{
		Seed:               seedFromEnv(cmd, f.seed, logger),
		FillRateMultiplier: f.fill,
		ErrorRate:          f.errorRate,
		TempBase:           f.tempBase,
		Dense:              f.dense,
	}

	banner(logger, fmt.Sprintf("Generating %d racks (seed %d)", f.count, opts.Seed))

	var progress generator.ProgressFunc
	if logger.Verbose() {
		progress = func(done, total int) {
			logger.Debug("Packed %d/%d racks", done, total)
		}
	}
	result := <-generator.GenerateAsync(cmd.Context(), f.count, cat, opts, f.chunk, progress)
	if result.Err != nil {
		logger.Error("Generation aborted", result.Err)
		return result.Err
	}
	racks := result.Racks

	summarize(logger, racks)

	path, err := writeRacks(racks, f.out, logger)
	if err != nil {
		logger.Error("Failed to write facility", err)
		return err
	}
	logger.Success("Wrote %d racks to %s", len(racks), path)
	return nil
}

// writeRacks saves racks to out, or to a new file in the save directory when out is empty
func writeRacks(racks []*models.Rack, out string, logger *utils.Logger) (string, error) {
	if out == "" {
		store := persistence.NewFileStore(saveDirectory(), constants.AutosaveSlots, logger)
		return store.Save(racks)
	}

	data, err := persistence.Encode(racks, time.Now())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}

// summarize logs occupancy and power figures for a rack set
func summarize(logger *utils.Logger, racks []*models.Rack) {
	var units, occupied, items int
	var draw, capacity float64
	over := 0
	byStatus := make(map[models.EquipmentStatus]int)
	for _, r := range racks {
		units += r.TotalUs
		occupied += r.OccupiedUnits()
		items += len(r.InstalledEquipment)
		draw += r.CurrentPowerDraw
		capacity += r.PowerCapacity
		if r.OverCapacity() {
			over++
		}
		for _, eq := range r.InstalledEquipment {
			byStatus[eq.Status]++
		}
	}

	cols, rows := generator.GridDimensions(len(racks))
	logger.Info("Racks: %d on a %dx%d grid", len(racks), cols, rows)
	if units > 0 {
		logger.Info("Occupancy: %d/%d U (%.1f%%), %d items", occupied, units, 100*float64(occupied)/float64(units), items)
	}
	logger.Info("Power: %.1f kW drawn of %.1f kW capacity", draw/1000, capacity/1000)
	statuses := []models.EquipmentStatus{models.StatusOnline, models.StatusWarning, models.StatusCritical, models.StatusOffline}
	parts := make([]string, 0, len(statuses))
	for _, st := range statuses {
		parts = append(parts, utils.ColorizeStatus(st, fmt.Sprintf("%d %s", byStatus[st], st)))
	}
	logger.Info("Status: %s", strings.Join(parts, ", "))
	if over > 0 {
		logger.Warning("%d racks draw more than their power capacity", over)
	}
}
