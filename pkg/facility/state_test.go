package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/generator"
	"github.com/braunma/rackfloor/pkg/models"
)

func testCatalog() *catalog.Static {
	return catalog.NewStatic([]models.EquipmentTemplate{
		{ID: "srv-1u", Type: "server", UHeight: 1, PowerDraw: 300},
		{ID: "srv-2u", Type: "server", UHeight: 2, PowerDraw: 600},
	})
}

func emptyRack(id string, col, row int) *models.Rack {
	r := &models.Rack{ID: id, Name: id, TotalUs: 42, PositionX: col, PositionY: row, InletTemp: 20, ExhaustTemp: 20}
	r.RebuildSlots()
	return r
}

func TestNewStateCopiesInput(t *testing.T) {
	input := []*models.Rack{emptyRack("r1", 0, 0)}
	s := NewState(testCatalog(), input, nil)

	input[0].PositionX = 99
	r, ok := s.Rack("r1")
	require.True(t, ok)
	assert.Equal(t, 0, r.PositionX)

	out := s.Racks()
	out[0].PositionX = 77
	r, _ = s.Rack("r1")
	assert.Equal(t, 0, r.PositionX, "Racks() must return copies")
}

func TestNewStateSkipsDuplicateIDs(t *testing.T) {
	s := NewState(testCatalog(), []*models.Rack{emptyRack("r1", 0, 0), emptyRack("r1", 1, 0), nil}, nil)
	assert.Equal(t, 1, s.Len())
}

func TestAddAndRemoveEquipment(t *testing.T) {
	s := NewState(testCatalog(), []*models.Rack{emptyRack("r1", 0, 0)}, nil)

	id, ok := s.AddEquipmentToRack("r1", "srv-2u", 5)
	require.True(t, ok)
	require.NotEmpty(t, id)

	r, _ := s.Rack("r1")
	require.NoError(t, r.Validate())
	assert.Equal(t, id, r.Slots[4].EquipmentInstanceID)
	assert.Equal(t, id, r.Slots[5].EquipmentInstanceID)
	assert.InDelta(t, 600, r.CurrentPowerDraw, 1e-9)
	assert.GreaterOrEqual(t, r.ExhaustTemp, r.InletTemp)

	_, ok = s.AddEquipmentToRack("r1", "srv-1u", 6)
	assert.False(t, ok, "overlapping add must fail")
	_, ok = s.AddEquipmentToRack("r1", "srv-2u", 42)
	assert.False(t, ok, "add past the top must fail")
	_, ok = s.AddEquipmentToRack("r1", "missing", 1)
	assert.False(t, ok, "unknown equipment must fail")
	_, ok = s.AddEquipmentToRack("nope", "srv-1u", 1)
	assert.False(t, ok, "unknown rack must fail")

	require.True(t, s.RemoveEquipmentFromRack("r1", id))
	r, _ = s.Rack("r1")
	require.NoError(t, r.Validate())
	assert.Empty(t, r.InstalledEquipment)
	assert.InDelta(t, 0, r.CurrentPowerDraw, 1e-9)
	assert.Equal(t, r.InletTemp, r.ExhaustTemp)

	assert.False(t, s.RemoveEquipmentFromRack("r1", id), "second removal must fail")
}

func TestUpdateRackPosition(t *testing.T) {
	s := NewState(testCatalog(), []*models.Rack{emptyRack("r1", 0, 0), emptyRack("r2", 3, 1)}, nil)

	assert.True(t, s.UpdateRackPosition("r1", 5, 2))
	assert.Equal(t, []string{"r1"}, s.RacksAt(5, 2))
	assert.Empty(t, s.RacksAt(0, 0))

	// Last write wins: no collision check
	assert.True(t, s.UpdateRackPosition("r1", 3, 1))
	assert.Equal(t, []string{"r1", "r2"}, s.RacksAt(3, 1))
	assert.Equal(t, []models.GridCell{{Col: 3, Row: 1}}, s.Overlaps())

	assert.False(t, s.UpdateRackPosition("r1", -1, 0))
	assert.False(t, s.UpdateRackPosition("r1", 0, 1<<20))
	assert.False(t, s.UpdateRackPosition("ghost", 1, 1))
}

func TestAddRackAt(t *testing.T) {
	s := NewState(testCatalog(), nil, nil)

	id, ok := s.AddRackAt(2, 1)
	require.True(t, ok)

	r, ok := s.Rack(id)
	require.True(t, ok)
	require.NoError(t, r.Validate())
	assert.Equal(t, "B03", r.Name)
	assert.Len(t, r.Slots, 42)

	_, ok = s.AddRackAt(-1, 0)
	assert.False(t, ok)
}

func TestDeleteRacks(t *testing.T) {
	s := NewState(testCatalog(), []*models.Rack{emptyRack("r1", 0, 0), emptyRack("r2", 1, 0), emptyRack("r3", 2, 0)}, nil)

	assert.Equal(t, 2, s.DeleteRacks([]string{"r1", "r3", "ghost"}))
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.RacksAt(0, 0))
	assert.Equal(t, []string{"r2"}, s.RacksAt(1, 0))

	assert.Equal(t, 0, s.DeleteRacks(nil))
}

func TestDuplicateRacks(t *testing.T) {
	s := NewState(testCatalog(), []*models.Rack{emptyRack("r1", 0, 0), emptyRack("r2", 1, 0)}, nil)
	_, ok := s.AddEquipmentToRack("r1", "srv-1u", 1)
	require.True(t, ok)

	ids := s.DuplicateRacks([]string{"r1", "ghost"})
	require.Len(t, ids, 1)

	dup, ok := s.Rack(ids[0])
	require.True(t, ok)
	require.NoError(t, dup.Validate())
	// (1,0) is taken by r2, so the copy lands at (2,0)
	assert.Equal(t, 2, dup.PositionX)
	assert.Equal(t, 0, dup.PositionY)
	require.Len(t, dup.InstalledEquipment, 1)

	orig, _ := s.Rack("r1")
	assert.NotEqual(t, orig.InstalledEquipment[0].ID, dup.InstalledEquipment[0].ID)
	assert.Empty(t, s.Overlaps())
}

func TestSetRacksFromSave(t *testing.T) {
	s := NewState(testCatalog(), []*models.Rack{emptyRack("old", 0, 0)}, nil)

	racks := generator.Generate(20, catalog.Default(), generator.DefaultOptions())
	s.SetRacksFromSave(racks)

	assert.Equal(t, 20, s.Len())
	_, ok := s.Rack("old")
	assert.False(t, ok)
	assert.Len(t, s.RacksAt(0, 0), 1)
	assert.Empty(t, s.Overlaps())
}

// sequenceIDs returns the given ids in order, then repeats the last one
func sequenceIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[min(i, len(ids)-1)]
		i++
		return id
	}
}

func TestGeneratedIDsRetryOnCollision(t *testing.T) {
	s := NewState(testCatalog(), nil, nil)
	s.newID = sequenceIDs("aaaaaaaa-1", "aaaaaaaa-2", "bbbbbbbb-1", "cccccccc-1", "cccccccc-2", "dddddddd-1")

	first, ok := s.AddRackAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, "rack-aaaaaaaa", first)

	// The second draw collides with the first rack and is skipped
	second, ok := s.AddRackAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, "rack-bbbbbbbb", second)
	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.Racks(), 2)

	eq1, ok := s.AddEquipmentToRack(first, "srv-1u", 1)
	require.True(t, ok)
	eq2, ok := s.AddEquipmentToRack(first, "srv-1u", 2)
	require.True(t, ok)
	assert.Equal(t, "rack-aaaaaaaa-eq-cccccccc", eq1)
	assert.Equal(t, "rack-aaaaaaaa-eq-dddddddd", eq2)

	r, _ := s.Rack(first)
	require.NoError(t, r.Validate())
}
