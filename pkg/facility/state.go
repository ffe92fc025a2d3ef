package facility

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// State is the in-memory facility-state owner. It is the only component that
// mutates rack data; layout and editing code commit through it.
type State struct {
	racks   []*models.Rack
	byID    map[string]*models.Rack
	cells   *cellIndex
	catalog catalog.Repository
	logger  *utils.Logger
	newID   func() string
}

// NewState creates an owner holding a deep copy of racks
func NewState(cat catalog.Repository, racks []*models.Rack, logger *utils.Logger) *State {
	if logger == nil {
		logger = utils.Discard()
	}
	s := &State{
		byID:    make(map[string]*models.Rack),
		cells:   newCellIndex(),
		catalog: cat,
		logger:  logger,
		newID:   uuid.NewString,
	}
	s.load(racks)
	return s
}

// Racks returns copies of all racks in insertion order
func (s *State) Racks() []*models.Rack {
	out := make([]*models.Rack, len(s.racks))
	for i, r := range s.racks {
		out[i] = r.Clone()
	}
	return out
}

// Rack returns a copy of one rack
func (s *State) Rack(id string) (*models.Rack, bool) {
	r, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Len returns the number of racks
func (s *State) Len() int {
	return len(s.racks)
}

// AddEquipmentToRack mounts a catalog item at uStart and returns the new instance id
func (s *State) AddEquipmentToRack(rackID, equipmentID string, uStart int) (string, bool) {
	rack, ok := s.byID[rackID]
	if !ok {
		s.logger.Warning("Rack %s not found", rackID)
		return "", false
	}
	if s.catalog == nil {
		return "", false
	}
	tmpl, ok := s.catalog.ByID(equipmentID)
	if !ok {
		s.logger.Warning("Equipment %s not in catalog", equipmentID)
		return "", false
	}
	if !rack.Fits(uStart, tmpl.UHeight) {
		s.logger.Debug("Equipment %s (%dU) does not fit rack %s at U%d", equipmentID, tmpl.UHeight, rackID, uStart)
		return "", false
	}

	eq := models.InstalledEquipment{
		ID:          s.equipmentID(rack),
		EquipmentID: tmpl.ID,
		UStart:      uStart,
		UEnd:        uStart + tmpl.UHeight - 1,
		Status:      models.StatusOnline,
	}
	rack.InstalledEquipment = append(rack.InstalledEquipment, eq)
	rack.RebuildSlots()
	s.adjustPower(rack, tmpl.PowerDraw)

	return eq.ID, true
}

// RemoveEquipmentFromRack unmounts an installed item
func (s *State) RemoveEquipmentFromRack(rackID, instanceID string) bool {
	rack, ok := s.byID[rackID]
	if !ok {
		return false
	}
	for i, eq := range rack.InstalledEquipment {
		if eq.ID != instanceID {
			continue
		}
		rack.InstalledEquipment = append(rack.InstalledEquipment[:i:i], rack.InstalledEquipment[i+1:]...)
		rack.RebuildSlots()
		if s.catalog != nil {
			if tmpl, ok := s.catalog.ByID(eq.EquipmentID); ok {
				s.adjustPower(rack, -tmpl.PowerDraw)
			}
		}
		return true
	}
	return false
}

// UpdateRackPosition moves a rack. Occupied targets are accepted; the last write wins.
func (s *State) UpdateRackPosition(rackID string, col, row int) bool {
	rack, ok := s.byID[rackID]
	if !ok || !validCell(col, row) {
		return false
	}
	s.cells.remove(rack)
	rack.PositionX, rack.PositionY = col, row
	s.cells.insert(rack)
	return true
}

// AddRackAt creates an empty rack at the given cell and returns its id
func (s *State) AddRackAt(col, row int) (string, bool) {
	if !validCell(col, row) {
		return "", false
	}
	rack := &models.Rack{
		ID:            s.rackID(),
		Name:          fmt.Sprintf("%s%02d", utils.RowLabel(row), col+1),
		Type:          constants.DefaultRackType,
		TotalUs:       constants.DefaultRackUnits,
		PowerCapacity: constants.DefaultPowerCapacity,
		InletTemp:     constants.DefaultTempBase,
		ExhaustTemp:   constants.DefaultTempBase,
		PositionX:     col,
		PositionY:     row,
	}
	rack.RebuildSlots()
	s.insert(rack)
	return rack.ID, true
}

// DeleteRacks removes the given racks and returns how many existed
func (s *State) DeleteRacks(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := s.racks[:0]
	for _, r := range s.racks {
		if drop[r.ID] {
			s.cells.remove(r)
			delete(s.byID, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(s.racks); i++ {
		s.racks[i] = nil
	}
	s.racks = kept
	return len(drop)
}

// DuplicateRacks copies each rack into the nearest free cell to its right and
// returns the new ids in input order. Unknown ids are skipped.
func (s *State) DuplicateRacks(ids []string) []string {
	var created []string
	for _, id := range ids {
		src, ok := s.byID[id]
		if !ok {
			continue
		}
		col, ok := s.freeCellRight(src.PositionX+1, src.PositionY)
		if !ok {
			s.logger.Warning("No free cell right of rack %s", id)
			continue
		}

		dup := src.Clone()
		dup.ID = s.rackID()
		dup.Name = src.Name + " copy"
		dup.PositionX = col
		for i := range dup.InstalledEquipment {
			dup.InstalledEquipment[i].ID = fmt.Sprintf("%s-eq-%02d", dup.ID, i+1)
		}
		dup.RebuildSlots()

		s.insert(dup)
		created = append(created, dup.ID)
	}
	return created
}

// SetRacksFromSave replaces the whole facility with racks
func (s *State) SetRacksFromSave(racks []*models.Rack) {
	s.racks = nil
	s.byID = make(map[string]*models.Rack, len(racks))
	s.cells.clear()
	s.load(racks)
}

// RacksAt returns the ids of racks occupying a cell
func (s *State) RacksAt(col, row int) []string {
	return s.cells.at(col, row)
}

// Overlaps returns cells shared by more than one rack. Placement never prevents these.
func (s *State) Overlaps() []models.GridCell {
	return s.cells.overlaps()
}

func (s *State) load(racks []*models.Rack) {
	for _, r := range racks {
		if r == nil {
			continue
		}
		if _, dup := s.byID[r.ID]; dup {
			s.logger.Warning("Duplicate rack id %s, keeping first", r.ID)
			continue
		}
		s.insert(r.Clone())
	}
}

func (s *State) insert(r *models.Rack) {
	s.racks = append(s.racks, r)
	s.byID[r.ID] = r
	s.cells.insert(r)
}

// rackID returns a short random id not used by any rack
func (s *State) rackID() string {
	for {
		id := "rack-" + s.newID()[:8]
		if _, taken := s.byID[id]; !taken {
			return id
		}
	}
}

// equipmentID returns a short random instance id not used in rack
func (s *State) equipmentID(rack *models.Rack) string {
	for {
		id := fmt.Sprintf("%s-eq-%s", rack.ID, s.newID()[:8])
		if _, taken := rack.FindEquipment(id); !taken {
			return id
		}
	}
}

func (s *State) freeCellRight(col, row int) (int, bool) {
	for c := col; c <= constants.MaxGridCoord; c++ {
		if !s.cells.occupied(c, row) {
			return c, true
		}
	}
	return 0, false
}

// adjustPower applies a nominal draw delta and keeps exhaust at or above inlet
func (s *State) adjustPower(rack *models.Rack, delta float64) {
	rack.CurrentPowerDraw = math.Max(0, rack.CurrentPowerDraw+delta)
	rack.ExhaustTemp = math.Max(rack.InletTemp, utils.Round1(rack.ExhaustTemp+delta*constants.HeatPerWatt))
}

func validCell(col, row int) bool {
	return col >= 0 && row >= 0 && col <= constants.MaxGridCoord && row <= constants.MaxGridCoord
}
