package persistence

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Sanitize decodes raw rack entries and drops every entry that fails validation.
// Dropped entries are logged as warnings; the surviving racks keep their input order.
func Sanitize(raw []interface{}, logger *utils.Logger) []*models.Rack {
	if logger == nil {
		logger = utils.Discard()
	}

	racks := make([]*models.Rack, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, entry := range raw {
		rack, err := decodeRack(entry)
		if err != nil {
			logger.Warning("Dropping rack entry %d: %v", i, err)
			continue
		}
		if seen[rack.ID] {
			logger.Warning("Dropping rack entry %d: duplicate id %s", i, rack.ID)
			continue
		}
		seen[rack.ID] = true
		racks = append(racks, rack)
	}

	if dropped := len(raw) - len(racks); dropped > 0 {
		logger.Debug("Sanitized %d rack entries, dropped %d", len(raw), dropped)
	}
	return racks
}

func decodeRack(entry interface{}) (*models.Rack, error) {
	if _, ok := entry.(map[string]interface{}); !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", entry)
	}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode: %w", err)
	}
	var rack models.Rack
	if err := yaml.Unmarshal(data, &rack); err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	// Slots are derived data; saves may omit them
	if len(rack.Slots) == 0 && rack.TotalUs > 0 {
		rack.RebuildSlots()
	}
	if err := rack.Validate(); err != nil {
		return nil, err
	}
	if err := checkReadings(&rack); err != nil {
		return nil, err
	}
	return &rack, nil
}

// checkReadings validates the numeric fields Validate does not cover
func checkReadings(r *models.Rack) error {
	readings := []struct {
		name  string
		value float64
	}{
		{"power_capacity", r.PowerCapacity},
		{"current_power_draw", r.CurrentPowerDraw},
		{"inlet_temp", r.InletTemp},
		{"exhaust_temp", r.ExhaustTemp},
	}
	for _, rd := range readings {
		if !utils.IsFinite(rd.value) {
			return fmt.Errorf("rack %s: %s is not finite", r.ID, rd.name)
		}
	}
	if r.CurrentPowerDraw < 0 {
		return fmt.Errorf("rack %s: negative power draw", r.ID)
	}
	if r.ExhaustTemp < r.InletTemp {
		return fmt.Errorf("rack %s: exhaust %.1f below inlet %.1f", r.ID, r.ExhaustTemp, r.InletTemp)
	}
	if r.AirflowRestriction < 0 || r.AirflowRestriction > 100 {
		return fmt.Errorf("rack %s: airflow restriction %d outside 0..100", r.ID, r.AirflowRestriction)
	}
	if r.PositionX < 0 || r.PositionY < 0 {
		return fmt.Errorf("rack %s: negative grid position", r.ID)
	}
	for _, eq := range r.InstalledEquipment {
		if eq.Status != "" && !eq.Status.Valid() {
			return fmt.Errorf("rack %s: equipment %s has unknown status %q", r.ID, eq.ID, eq.Status)
		}
	}
	return nil
}
