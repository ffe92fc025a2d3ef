package generator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/models"
)

func seedOptions(seed int64) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	return opts
}

func TestGenerateDeterministic(t *testing.T) {
	cat := catalog.Default()

	first := Generate(500, cat, seedOptions(42))
	second := Generate(500, cat, seedOptions(42))

	if len(first) != 500 {
		t.Fatalf("Generate() returned %d racks, expected 500", len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Generate() not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	cat := catalog.Default()

	a := Generate(50, cat, seedOptions(1))
	b := Generate(50, cat, seedOptions(2))

	if cmp.Equal(a, b) {
		t.Error("different seeds produced identical facilities")
	}
}

func TestPackingInvariant(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name string
		opts Options
	}{
		{name: "defaults", opts: DefaultOptions()},
		{name: "dense", opts: Options{Seed: 7, FillRateMultiplier: 1, Dense: true, TempBase: 18}},
		{name: "overfill multiplier", opts: Options{Seed: 9, FillRateMultiplier: 2.5, TempBase: 22}},
		{name: "high error rate", opts: Options{Seed: 3, FillRateMultiplier: 1, ErrorRate: 0.9, TempBase: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, rack := range Generate(200, cat, tt.opts) {
				if err := rack.Validate(); err != nil {
					t.Fatalf("rack %s invalid: %v", rack.ID, err)
				}
				for _, slot := range rack.Slots {
					if slot.EquipmentInstanceID == "" {
						continue
					}
					if _, ok := rack.FindEquipment(slot.EquipmentInstanceID); !ok {
						t.Errorf("rack %s slot U%d references missing %s", rack.ID, slot.UPosition, slot.EquipmentInstanceID)
					}
				}
				for _, eq := range rack.InstalledEquipment {
					if !eq.Status.Valid() {
						t.Errorf("rack %s equipment %s has status %q", rack.ID, eq.ID, eq.Status)
					}
				}
			}
		})
	}
}

func TestThermalInvariant(t *testing.T) {
	for _, rack := range Generate(500, catalog.Default(), seedOptions(42)) {
		if rack.ExhaustTemp < rack.InletTemp {
			t.Errorf("rack %s exhaust %.1f < inlet %.1f", rack.ID, rack.ExhaustTemp, rack.InletTemp)
		}
		if rack.InletTemp < 20 || rack.InletTemp > 25 {
			t.Errorf("rack %s inlet %.1f outside tempBase + [0,5]", rack.ID, rack.InletTemp)
		}
		if rack.AirflowRestriction < 0 || rack.AirflowRestriction > 100 {
			t.Errorf("rack %s airflow restriction %d out of range", rack.ID, rack.AirflowRestriction)
		}
	}
}

// uncheckedRepo serves templates as given, bypassing catalog validation
type uncheckedRepo []models.EquipmentTemplate

func (r uncheckedRepo) ByID(id string) (models.EquipmentTemplate, bool) {
	for _, t := range r {
		if t.ID == id {
			return t, true
		}
	}
	return models.EquipmentTemplate{}, false
}

func (r uncheckedRepo) List() []models.EquipmentTemplate {
	return r
}

func TestBadPowerTemplatesKeepThermalInvariant(t *testing.T) {
	repos := map[string]catalog.Repository{
		"static": catalog.NewStatic([]models.EquipmentTemplate{
			{ID: "ok", Type: "server", UHeight: 1, PowerDraw: 300},
			{ID: "neg", Type: "server", UHeight: 1, PowerDraw: -2000},
			{ID: "nan", Type: "server", UHeight: 1, PowerDraw: math.NaN()},
		}),
		"unchecked": uncheckedRepo{
			{ID: "ok", Type: "server", UHeight: 1, PowerDraw: 300},
			{ID: "neg", Type: "server", UHeight: 1, PowerDraw: -2000},
			{ID: "inf", Type: "server", UHeight: 1, PowerDraw: math.Inf(1)},
		},
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			for _, rack := range Generate(10, repo, seedOptions(42)) {
				if rack.ExhaustTemp < rack.InletTemp {
					t.Errorf("rack %s exhaust %.1f < inlet %.1f", rack.ID, rack.ExhaustTemp, rack.InletTemp)
				}
				if rack.CurrentPowerDraw < 0 || math.IsNaN(rack.CurrentPowerDraw) || math.IsInf(rack.CurrentPowerDraw, 0) {
					t.Errorf("rack %s power draw %v", rack.ID, rack.CurrentPowerDraw)
				}
				for _, eq := range rack.InstalledEquipment {
					if eq.EquipmentID != "ok" {
						t.Errorf("rack %s installed invalid template %s", rack.ID, eq.EquipmentID)
					}
				}
			}
		})
	}
}

func TestPowerBound(t *testing.T) {
	cat := catalog.Default()

	for _, rack := range Generate(300, cat, seedOptions(42)) {
		base := 0.0
		for _, eq := range rack.InstalledEquipment {
			tmpl, ok := cat.ByID(eq.EquipmentID)
			if !ok {
				t.Fatalf("rack %s holds unknown equipment %s", rack.ID, eq.EquipmentID)
			}
			base += tmpl.PowerDraw
		}
		if base == 0 {
			if rack.CurrentPowerDraw != 0 {
				t.Errorf("rack %s draws %v with no powered equipment", rack.ID, rack.CurrentPowerDraw)
			}
			continue
		}
		variance := rack.CurrentPowerDraw / base
		if variance < 0.85-1e-9 || variance > 1.15+1e-9 {
			t.Errorf("rack %s variance %v outside [0.85, 1.15]", rack.ID, variance)
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	cat := catalog.NewStatic([]models.EquipmentTemplate{
		{ID: "A", Type: "server", UHeight: 1, PowerDraw: 100},
		{ID: "B", Type: "server", UHeight: 2, PowerDraw: 200},
	})

	racks := Generate(3, cat, Options{Seed: 1, FillRateMultiplier: 1.0, Dense: true})
	if len(racks) != 3 {
		t.Fatalf("Generate() returned %d racks, expected 3", len(racks))
	}

	for _, rack := range racks {
		if rack.OccupiedUnits() > 42 {
			t.Errorf("rack %s occupies %d U", rack.ID, rack.OccupiedUnits())
		}
		for _, eq := range rack.InstalledEquipment {
			if eq.EquipmentID != "A" && eq.EquipmentID != "B" {
				t.Errorf("rack %s holds %s, expected only A or B", rack.ID, eq.EquipmentID)
			}
		}
	}
}

func TestDenseHasNoGaps(t *testing.T) {
	opts := Options{Seed: 5, FillRateMultiplier: 1, Dense: true}
	for _, rack := range Generate(100, catalog.Default(), opts) {
		next := 1
		for _, eq := range rack.InstalledEquipment {
			if eq.UStart != next {
				t.Fatalf("rack %s: equipment %s starts at U%d, expected U%d", rack.ID, eq.ID, eq.UStart, next)
			}
			next = eq.UEnd + 1
		}
	}
}

func TestGenerateEmptyInputs(t *testing.T) {
	tests := []struct {
		name  string
		count int
		cat   catalog.Repository
	}{
		{name: "zero count", count: 0, cat: catalog.Default()},
		{name: "negative count", count: -4, cat: catalog.Default()},
		{name: "empty catalog", count: 10, cat: catalog.NewStatic(nil)},
		{name: "nil catalog", count: 10, cat: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			racks := Generate(tt.count, tt.cat, DefaultOptions())
			if racks == nil || len(racks) != 0 {
				t.Errorf("Generate() = %v, expected empty non-nil list", racks)
			}
		})
	}
}

func TestUnfillableRackStaysEmpty(t *testing.T) {
	// Only power gear: most templates find nothing eligible and stop early
	cat := catalog.NewStatic([]models.EquipmentTemplate{
		{ID: "pdu", Type: "power", UHeight: 1, PowerDraw: 10},
	})

	racks := Generate(40, cat, DefaultOptions())
	empty := 0
	for _, rack := range racks {
		if err := rack.Validate(); err != nil {
			t.Fatalf("rack %s invalid: %v", rack.ID, err)
		}
		if len(rack.InstalledEquipment) == 0 {
			empty++
		}
	}
	if empty == 0 {
		t.Error("expected some racks to be left empty")
	}
}

func TestEquipmentIndependentOfCount(t *testing.T) {
	cat := catalog.Default()

	small := Generate(10, cat, seedOptions(42))
	large := Generate(40, cat, seedOptions(42))

	for i := range small {
		if diff := cmp.Diff(small[i].InstalledEquipment, large[i].InstalledEquipment); diff != "" {
			t.Errorf("rack %d equipment depends on batch size:\n%s", i, diff)
		}
	}
}

func TestPreviewRackMatchesBatch(t *testing.T) {
	cat := catalog.Default()
	opts := seedOptions(42)
	batch := Generate(120, cat, opts)

	for _, index := range []int{0, 1, 57, 119} {
		preview, ok := PreviewRack(index, 120, cat, opts)
		if !ok {
			t.Fatalf("PreviewRack(%d) failed", index)
		}
		if diff := cmp.Diff(batch[index], preview); diff != "" {
			t.Errorf("PreviewRack(%d) differs from batch:\n%s", index, diff)
		}
	}

	if _, ok := PreviewRack(120, 120, cat, opts); ok {
		t.Error("PreviewRack() accepted an index past the batch")
	}
	if _, ok := PreviewRack(-1, 120, cat, opts); ok {
		t.Error("PreviewRack() accepted a negative index")
	}
}

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		count        int
		expectedCols int
		expectedRows int
	}{
		{count: 0, expectedCols: 0, expectedRows: 0},
		{count: 1, expectedCols: 2, expectedRows: 1},
		{count: 3, expectedCols: 3, expectedRows: 1},
		{count: 100, expectedCols: 13, expectedRows: 8},
		{count: 500, expectedCols: 28, expectedRows: 18},
	}

	for _, tt := range tests {
		cols, rows := GridDimensions(tt.count)
		if cols != tt.expectedCols || rows != tt.expectedRows {
			t.Errorf("GridDimensions(%d) = (%d, %d), expected (%d, %d)", tt.count, cols, rows, tt.expectedCols, tt.expectedRows)
		}
	}
}

func TestPositionsAndNames(t *testing.T) {
	racks := Generate(30, catalog.Default(), DefaultOptions())
	cols, _ := GridDimensions(30)

	seen := make(map[models.GridCell]bool)
	for i, rack := range racks {
		col := i % cols
		if rack.PositionX != col+col/2 {
			t.Errorf("rack %d PositionX = %d, expected %d", i, rack.PositionX, col+col/2)
		}
		if rack.PositionY != i/cols {
			t.Errorf("rack %d PositionY = %d, expected %d", i, rack.PositionY, i/cols)
		}
		if seen[rack.Cell()] {
			t.Errorf("rack %d shares cell %+v", i, rack.Cell())
		}
		seen[rack.Cell()] = true
	}

	if racks[0].ID != "rack-001" || racks[0].Name != "A01" {
		t.Errorf("first rack = %s/%s, expected rack-001/A01", racks[0].ID, racks[0].Name)
	}
	if racks[cols].Name != "B01" {
		t.Errorf("first rack of second row named %s, expected B01", racks[cols].Name)
	}
}

func TestOverfillRespectsCapacity(t *testing.T) {
	opts := Options{Seed: 11, FillRateMultiplier: 10, TempBase: 20}
	for _, rack := range Generate(50, catalog.Default(), opts) {
		if rack.OccupiedUnits() > rack.TotalUs {
			t.Errorf("rack %s occupies %d of %d U", rack.ID, rack.OccupiedUnits(), rack.TotalUs)
		}
		if math.IsNaN(rack.CurrentPowerDraw) {
			t.Errorf("rack %s power is NaN", rack.ID)
		}
	}
}
