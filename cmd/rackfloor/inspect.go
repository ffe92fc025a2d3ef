package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/facility"
	"github.com/braunma/rackfloor/pkg/loader"
	"github.com/braunma/rackfloor/pkg/persistence"
	"github.com/braunma/rackfloor/pkg/utils"
)

type inspectFlags struct {
	file     string
	racksDir string
	latest   bool
}

func newInspectCmd() *cobra.Command {
	f := &inspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load racks, drop invalid entries, and report overlaps and capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Save file to inspect")
	cmd.Flags().StringVar(&f.racksDir, "racks-dir", "definitions/racks", "Rack definitions folder relative to the data directory")
	cmd.Flags().BoolVar(&f.latest, "latest", false, "Inspect the newest file in the save directory")
	return cmd
}

func runInspect(f *inspectFlags) error {
	logger := utils.NewLogger(verbose)

	raw, source, err := loadRawRacks(f, logger)
	if err != nil {
		logger.Error("Failed to load racks", err)
		return err
	}

	banner(logger, fmt.Sprintf("Inspecting %s", source))

	racks := persistence.Sanitize(raw, logger)
	if len(raw) > 0 && len(racks) == 0 {
		logger.Error("Every rack entry is invalid", persistence.ErrRestoreEmptied)
		return persistence.ErrRestoreEmptied
	}
	logger.Info("%d of %d entries valid", len(racks), len(raw))

	cat, err := loadCatalog(logger)
	if err != nil {
		logger.Error("Failed to load equipment catalog", err)
		return err
	}

	state := facility.NewState(cat, racks, logger)
	for _, cell := range state.Overlaps() {
		logger.Warning("Cell %s%02d is shared by %v", utils.RowLabel(cell.Row), cell.Col+1, state.RacksAt(cell.Col, cell.Row))
	}

	unknown := 0
	for _, r := range state.Racks() {
		if r.OverCapacity() {
			logger.Warning("Rack %s draws %.0f W of %.0f W capacity", r.Name, r.CurrentPowerDraw, r.PowerCapacity)
		}
		for _, eq := range r.InstalledEquipment {
			if _, ok := cat.ByID(eq.EquipmentID); !ok {
				logger.Debug("Rack %s: %s references unknown equipment %s", r.Name, eq.ID, eq.EquipmentID)
				unknown++
			}
		}
	}
	if unknown > 0 {
		logger.Warning("%d installed items reference equipment missing from the catalog", unknown)
	}

	summarize(logger, state.Racks())
	logger.Success("Inspection complete")
	return nil
}

func loadRawRacks(f *inspectFlags, logger *utils.Logger) ([]interface{}, string, error) {
	switch {
	case f.file != "":
		raw, err := persistence.ReadFile(f.file)
		return raw, f.file, err

	case f.latest:
		store := persistence.NewFileStore(saveDirectory(), constants.AutosaveSlots, logger)
		raw, err := store.LoadLatest()
		if errors.Is(err, persistence.ErrNoSnapshot) {
			return nil, "", fmt.Errorf("no save files in %s: %w", store.Dir(), err)
		}
		return raw, store.Dir(), err

	default:
		base, err := resolveDataDir(dataDir, logger)
		if err != nil {
			return nil, "", err
		}
		folder := buildPath(base, f.racksDir)
		raw, err := loader.NewDataLoader(".", logger).LoadRacks(folder)
		return raw, folder, err
	}
}
