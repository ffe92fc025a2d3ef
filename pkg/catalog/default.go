package catalog

import (
	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/models"
)

// Default returns the built-in equipment catalog used when no definitions are loaded
func Default() *Static {
	return NewStatic([]models.EquipmentTemplate{
		{ID: "srv-1u-general", Name: "1U General Server", Manufacturer: "Dell", Type: constants.EquipmentServer, UHeight: 1, PowerDraw: 350, Weight: 18},
		{ID: "srv-2u-compute", Name: "2U Compute Node", Manufacturer: "Dell", Type: constants.EquipmentServer, UHeight: 2, PowerDraw: 650, Weight: 28},
		{ID: "srv-4u-highmem", Name: "4U High-Memory Server", Manufacturer: "HPE", Type: constants.EquipmentServer, UHeight: 4, PowerDraw: 1200, Weight: 45},
		{ID: "sto-2u-jbod", Name: "2U JBOD Shelf", Manufacturer: "NetApp", Type: constants.EquipmentStorage, UHeight: 2, PowerDraw: 450, Weight: 32},
		{ID: "sto-4u-array", Name: "4U Storage Array", Manufacturer: "NetApp", Type: constants.EquipmentStorage, UHeight: 4, PowerDraw: 900, Weight: 60},
		{ID: "net-1u-tor", Name: "1U ToR Switch", Manufacturer: "Arista", Type: constants.EquipmentNetwork, UHeight: 1, PowerDraw: 250, Weight: 9},
		{ID: "net-2u-spine", Name: "2U Spine Switch", Manufacturer: "Arista", Type: constants.EquipmentNetwork, UHeight: 2, PowerDraw: 600, Weight: 20},
		{ID: "pp-1u-48", Name: "1U 48-Port Patch Panel", Manufacturer: "Panduit", Type: constants.EquipmentPatchPanel, UHeight: 1, PowerDraw: 0, Weight: 2},
		{ID: "gpu-4u-8x", Name: "4U 8-GPU Server", Manufacturer: "Supermicro", Type: constants.EquipmentGPU, UHeight: 4, PowerDraw: 5600, Weight: 70},
		{ID: "gpu-2u-4x", Name: "2U 4-GPU Server", Manufacturer: "Supermicro", Type: constants.EquipmentGPU, UHeight: 2, PowerDraw: 2800, Weight: 38},
		{ID: "pdu-1u", Name: "1U Rack PDU", Manufacturer: "APC", Type: constants.EquipmentPower, UHeight: 1, PowerDraw: 15, Weight: 5},
		{ID: "ups-2u", Name: "2U UPS", Manufacturer: "APC", Type: constants.EquipmentPower, UHeight: 2, PowerDraw: 80, Weight: 30},
	})
}
