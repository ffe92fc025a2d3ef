package constants

import "time"

// Rack defaults
const (
	DefaultRackUnits     = 42
	DefaultPowerCapacity = 12000.0
	DefaultRackType      = "standard"
)

// Seed derivation
const (
	// PerRackSeedStride spaces the per-rack streams so neighbouring racks do not overlap.
	PerRackSeedStride = 7919
	DefaultSeed       = 42
)

// Packing
const (
	GapProbability      = 0.15
	PowerVarianceMin    = 0.85
	PowerVarianceSpread = 0.30
	HeatPerWatt         = 0.0034
	InletJitter         = 5.0
	DefaultTempBase     = 20.0
	DefaultErrorRate    = 0.05
	GridAspect          = 1.5
)

// Equipment types
const (
	EquipmentServer     = "server"
	EquipmentStorage    = "storage"
	EquipmentNetwork    = "network"
	EquipmentGPU        = "gpu"
	EquipmentPower      = "power"
	EquipmentPatchPanel = "patch-panel"
)

// RackTemplate is a generation profile: which equipment types a rack may hold and how full it should be
type RackTemplate struct {
	Name          string
	AllowedTypes  []string
	FillRate      float64
	Weight        float64
	PowerCapacity float64
}

// RackTemplates is the fixed template list used by the packer
var RackTemplates = []RackTemplate{
	{Name: "compute", AllowedTypes: []string{EquipmentServer}, FillRate: 0.75, Weight: 4, PowerCapacity: 15000},
	{Name: "storage", AllowedTypes: []string{EquipmentStorage, EquipmentServer}, FillRate: 0.6, Weight: 2, PowerCapacity: 10000},
	{Name: "network", AllowedTypes: []string{EquipmentNetwork, EquipmentPatchPanel}, FillRate: 0.35, Weight: 1, PowerCapacity: 6000},
	{Name: "gpu", AllowedTypes: []string{EquipmentGPU, EquipmentServer}, FillRate: 0.8, Weight: 1.5, PowerCapacity: 30000},
	{Name: "mixed", AllowedTypes: []string{EquipmentServer, EquipmentStorage, EquipmentNetwork, EquipmentPower}, FillRate: 0.7, Weight: 1.5, PowerCapacity: 12000},
}

// Grid layout (world units)
const (
	RackSpacing  = 0.8
	AisleSpacing = 2.4
	// MaxGridCoord bounds committed positions in either axis.
	MaxGridCoord = 4096
)

// Detail streaming
const (
	InitialDetailBudget  = 12
	DetailStepFraction   = 0.04
	DetailStepMin        = 8
	DetailStepMax        = 40
	DetailTickInterval   = 50 * time.Millisecond
	DetailCameraDistance = 12.0
)

// Network connection cap
const (
	DefaultMaxConnections = 120
	ConnectionsPerRack    = 0.5
)

// Edit history
const (
	MaxHistory = 200
)

// Persistence
const (
	AutosaveSlots    = 10
	AutosaveInterval = 30 * time.Second
	SaveFilePrefix   = "facility-"
	SaveFileExt      = ".yaml"
)

