package models

import (
	"fmt"
	"sort"
)

// GridCell is a logical floor position (column, row)
type GridCell struct {
	Col int `yaml:"col" json:"col"`
	Row int `yaml:"row" json:"row"`
}

// Slot is one rack unit; EquipmentInstanceID is empty when the unit is free
type Slot struct {
	UPosition           int    `yaml:"u_position" json:"u_position"`
	EquipmentInstanceID string `yaml:"equipment_instance_id,omitempty" json:"equipment_instance_id,omitempty"`
}

// Rack is a populated equipment rack placed on the facility grid
type Rack struct {
	ID                 string               `yaml:"id" json:"id" validate:"required"`
	Name               string               `yaml:"name" json:"name" validate:"required"`
	Type               string               `yaml:"type" json:"type"`
	TotalUs            int                  `yaml:"total_us" json:"total_us" validate:"required,min=1"`
	Slots              []Slot               `yaml:"slots" json:"slots"`
	InstalledEquipment []InstalledEquipment `yaml:"installed_equipment" json:"installed_equipment"`
	PowerCapacity      float64              `yaml:"power_capacity" json:"power_capacity"`
	CurrentPowerDraw   float64              `yaml:"current_power_draw" json:"current_power_draw"`
	InletTemp          float64              `yaml:"inlet_temp" json:"inlet_temp"`
	ExhaustTemp        float64              `yaml:"exhaust_temp" json:"exhaust_temp"`
	AirflowRestriction int                  `yaml:"airflow_restriction" json:"airflow_restriction"`
	PositionX          int                  `yaml:"position_x" json:"position_x"`
	PositionY          int                  `yaml:"position_y" json:"position_y"`
}

// Cell returns the rack's logical grid position
func (r *Rack) Cell() GridCell {
	return GridCell{Col: r.PositionX, Row: r.PositionY}
}

// RebuildSlots regenerates the slot array from the installed equipment list
func (r *Rack) RebuildSlots() {
	slots := make([]Slot, r.TotalUs)
	for i := range slots {
		slots[i].UPosition = i + 1
	}
	for _, eq := range r.InstalledEquipment {
		for u := eq.UStart; u <= eq.UEnd && u <= r.TotalUs; u++ {
			if u >= 1 {
				slots[u-1].EquipmentInstanceID = eq.ID
			}
		}
	}
	r.Slots = slots
}

// Fits reports whether an item of the given height can be mounted starting at uStart
func (r *Rack) Fits(uStart, height int) bool {
	if height < 1 || uStart < 1 || uStart+height-1 > r.TotalUs {
		return false
	}
	candidate := InstalledEquipment{UStart: uStart, UEnd: uStart + height - 1}
	for i := range r.InstalledEquipment {
		if r.InstalledEquipment[i].Overlaps(&candidate) {
			return false
		}
	}
	return true
}

// OccupiedUnits returns the number of rack units holding equipment
func (r *Rack) OccupiedUnits() int {
	total := 0
	for i := range r.InstalledEquipment {
		total += r.InstalledEquipment[i].Height()
	}
	return total
}

// OverCapacity reports whether the current draw exceeds the stated power capacity.
// Capacity is informational only and never enforced.
func (r *Rack) OverCapacity() bool {
	return r.PowerCapacity > 0 && r.CurrentPowerDraw > r.PowerCapacity
}

// FindEquipment returns the installed item with the given instance id
func (r *Rack) FindEquipment(instanceID string) (*InstalledEquipment, bool) {
	for i := range r.InstalledEquipment {
		if r.InstalledEquipment[i].ID == instanceID {
			return &r.InstalledEquipment[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the rack
func (r *Rack) Clone() *Rack {
	c := *r
	c.Slots = append([]Slot(nil), r.Slots...)
	c.InstalledEquipment = append([]InstalledEquipment(nil), r.InstalledEquipment...)
	return &c
}

// Validate checks the slot and equipment invariants
func (r *Rack) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rack has no id")
	}
	if r.TotalUs < 1 {
		return fmt.Errorf("rack %s: total_us must be positive, got %d", r.ID, r.TotalUs)
	}
	if len(r.Slots) != r.TotalUs {
		return fmt.Errorf("rack %s: %d slots for %d units", r.ID, len(r.Slots), r.TotalUs)
	}

	items := make([]*InstalledEquipment, 0, len(r.InstalledEquipment))
	ids := make(map[string]bool, len(r.InstalledEquipment))
	for i := range r.InstalledEquipment {
		eq := &r.InstalledEquipment[i]
		if eq.ID == "" {
			return fmt.Errorf("rack %s: equipment at index %d has no id", r.ID, i)
		}
		if ids[eq.ID] {
			return fmt.Errorf("rack %s: duplicate equipment id %s", r.ID, eq.ID)
		}
		ids[eq.ID] = true
		if eq.UStart < 1 || eq.UStart > eq.UEnd || eq.UEnd > r.TotalUs {
			return fmt.Errorf("rack %s: equipment %s range [%d,%d] outside 1..%d", r.ID, eq.ID, eq.UStart, eq.UEnd, r.TotalUs)
		}
		items = append(items, eq)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].UStart < items[j].UStart })
	for i := 1; i < len(items); i++ {
		if items[i-1].Overlaps(items[i]) {
			return fmt.Errorf("rack %s: equipment %s overlaps %s", r.ID, items[i-1].ID, items[i].ID)
		}
	}

	owner := make(map[int]string, r.TotalUs)
	for _, eq := range items {
		for u := eq.UStart; u <= eq.UEnd; u++ {
			owner[u] = eq.ID
		}
	}
	for i, slot := range r.Slots {
		if slot.UPosition != i+1 {
			return fmt.Errorf("rack %s: slot %d has position %d", r.ID, i, slot.UPosition)
		}
		if slot.EquipmentInstanceID != owner[slot.UPosition] {
			return fmt.Errorf("rack %s: slot U%d references %q, expected %q", r.ID, slot.UPosition, slot.EquipmentInstanceID, owner[slot.UPosition])
		}
	}

	return nil
}
