package models

import (
	"fmt"
	"math"
)

// EquipmentStatus is the operational state of an installed item
type EquipmentStatus string

const (
	StatusOnline   EquipmentStatus = "online"
	StatusWarning  EquipmentStatus = "warning"
	StatusCritical EquipmentStatus = "critical"
	StatusOffline  EquipmentStatus = "offline"
)

// Valid reports whether the status is one of the known values
func (s EquipmentStatus) Valid() bool {
	switch s {
	case StatusOnline, StatusWarning, StatusCritical, StatusOffline:
		return true
	}
	return false
}

// EquipmentTemplate is a read-only catalog entry (blueprint for installed equipment)
type EquipmentTemplate struct {
	ID           string  `yaml:"id" json:"id" validate:"required"`
	Name         string  `yaml:"name,omitempty" json:"name,omitempty"`
	Manufacturer string  `yaml:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Type         string  `yaml:"type" json:"type" validate:"required"`
	UHeight      int     `yaml:"u_height" json:"u_height" validate:"required,min=1"`
	PowerDraw    float64 `yaml:"power_draw" json:"power_draw"`
	Weight       float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
	Color        string  `yaml:"color,omitempty" json:"color,omitempty"`
}

// Validate checks the fields the packer and the thermal model depend on
func (t *EquipmentTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("equipment template has no id")
	}
	if t.UHeight < 1 {
		return fmt.Errorf("equipment %s: u_height must be positive, got %d", t.ID, t.UHeight)
	}
	if math.IsNaN(t.PowerDraw) || math.IsInf(t.PowerDraw, 0) || t.PowerDraw < 0 {
		return fmt.Errorf("equipment %s: power_draw must be a non-negative number, got %v", t.ID, t.PowerDraw)
	}
	return nil
}

// InstalledEquipment is one catalog item mounted in a rack over [UStart, UEnd]
type InstalledEquipment struct {
	ID              string          `yaml:"id" json:"id" validate:"required"`
	EquipmentID     string          `yaml:"equipment_id" json:"equipment_id" validate:"required"`
	UStart          int             `yaml:"u_start" json:"u_start" validate:"required,min=1"`
	UEnd            int             `yaml:"u_end" json:"u_end" validate:"required,min=1"`
	Status          EquipmentStatus `yaml:"status" json:"status"`
	CPULoad         float64         `yaml:"cpu_load,omitempty" json:"cpu_load,omitempty"`
	MemoryUsage     float64         `yaml:"memory_usage,omitempty" json:"memory_usage,omitempty"`
	NetworkActivity float64         `yaml:"network_activity,omitempty" json:"network_activity,omitempty"`
}

// Height returns the number of rack units the item occupies
func (e *InstalledEquipment) Height() int {
	return e.UEnd - e.UStart + 1
}

// Overlaps reports whether two installed items share any rack unit
func (e *InstalledEquipment) Overlaps(other *InstalledEquipment) bool {
	return e.UStart <= other.UEnd && other.UStart <= e.UEnd
}
