package persistence

import (
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Owner is the part of the facility-state owner a restore needs
type Owner interface {
	SetRacksFromSave(racks []*models.Rack)
}

// Restore sanitizes raw and replaces the owner's racks with the result.
// An empty payload yields ErrNoSnapshot. A non-empty payload that sanitizes to
// nothing yields ErrRestoreEmptied and leaves the owner untouched.
func Restore(owner Owner, raw []interface{}, logger *utils.Logger) (int, error) {
	if logger == nil {
		logger = utils.Discard()
	}
	if len(raw) == 0 {
		return 0, ErrNoSnapshot
	}

	racks := Sanitize(raw, logger)
	if len(racks) == 0 {
		logger.Warning("All %d rack entries were invalid, keeping current facility", len(raw))
		return 0, ErrRestoreEmptied
	}

	owner.SetRacksFromSave(racks)
	logger.Debug("Restored %d of %d racks", len(racks), len(raw))
	return len(racks), nil
}

// RestoreLatest restores the newest save file from store
func RestoreLatest(owner Owner, store *FileStore, logger *utils.Logger) (int, error) {
	raw, err := store.LoadLatest()
	if err != nil {
		return 0, err
	}
	return Restore(owner, raw, logger)
}
