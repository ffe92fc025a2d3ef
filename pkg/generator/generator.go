package generator

import (
	"fmt"
	"math"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/catalog"
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/seeded"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Options controls facility generation
type Options struct {
	Seed               int64   `yaml:"seed" json:"seed"`
	FillRateMultiplier float64 `yaml:"fill_rate_multiplier" json:"fill_rate_multiplier"`
	ErrorRate          float64 `yaml:"error_rate" json:"error_rate"`
	TempBase           float64 `yaml:"temp_base" json:"temp_base"`
	Dense              bool    `yaml:"dense" json:"dense"`
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Seed:               constants.DefaultSeed,
		FillRateMultiplier: 1.0,
		ErrorRate:          constants.DefaultErrorRate,
		TempBase:           constants.DefaultTempBase,
	}
}

// Generate deterministically synthesizes count populated racks.
// An empty catalog or non-positive count yields an empty list.
func Generate(count int, cat catalog.Repository, opts Options) []*models.Rack {
	p := newPacker(count, cat, opts)
	if p == nil {
		return []*models.Rack{}
	}
	racks := make([]*models.Rack, 0, count)
	for i := 0; i < count; i++ {
		racks = append(racks, p.next())
	}
	return racks
}

// PreviewRack builds rack index of a count-sized batch without materializing the rest.
// The result is identical to Generate(count, cat, opts)[index].
func PreviewRack(index, count int, cat catalog.Repository, opts Options) (*models.Rack, bool) {
	if index < 0 || index >= count {
		return nil, false
	}
	p := newPacker(count, cat, opts)
	if p == nil {
		return nil, false
	}
	for p.index < index {
		p.next()
	}
	return p.next(), true
}

// GridDimensions returns the roughly-square (cols, rows) grid used for count racks
func GridDimensions(count int) (cols, rows int) {
	if count <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(count) * constants.GridAspect)))
	rows = int(math.Ceil(float64(count) / float64(cols)))
	return cols, rows
}

// packer holds the facility-wide stream and walks rack indices in order
type packer struct {
	count     int
	cols      int
	templates []models.EquipmentTemplate
	cat       catalog.Repository
	opts      Options
	facility  seeded.Generator
	index     int
}

func newPacker(count int, cat catalog.Repository, opts Options) *packer {
	if count <= 0 || cat == nil {
		return nil
	}
	templates := cat.List()
	if len(templates) == 0 {
		return nil
	}
	cols, _ := GridDimensions(count)
	return &packer{
		count:     count,
		cols:      cols,
		templates: templates,
		cat:       cat,
		opts:      opts,
		facility:  seeded.New(opts.Seed),
	}
}

// next builds the rack at the current index and advances
func (p *packer) next() *models.Rack {
	i := p.index
	p.index++

	rackStream := seeded.ForRack(p.opts.Seed, i)
	tmpl := p.pickTemplate()

	col := i % p.cols
	row := i / p.cols

	rack := &models.Rack{
		ID:            fmt.Sprintf("rack-%03d", i+1),
		Name:          fmt.Sprintf("%s%02d", utils.RowLabel(row), col+1),
		Type:          tmpl.Name,
		TotalUs:       constants.DefaultRackUnits,
		PowerCapacity: tmpl.PowerCapacity,
		// Every second column pair is followed by an aisle
		PositionX: col + col/2,
		PositionY: row,
	}

	p.pack(rack, tmpl, &rackStream)
	rack.RebuildSlots()
	p.derive(rack, &rackStream)

	return rack
}

// pickTemplate chooses a rack template weighted by template weight
func (p *packer) pickTemplate() constants.RackTemplate {
	total := 0.0
	for _, t := range constants.RackTemplates {
		total += t.Weight
	}
	r := p.facility.Next() * total
	for _, t := range constants.RackTemplates {
		if r < t.Weight {
			return t
		}
		r -= t.Weight
	}
	return constants.RackTemplates[len(constants.RackTemplates)-1]
}

// pack fills the rack bottom-up until the cursor passes the target fill
func (p *packer) pack(rack *models.Rack, tmpl constants.RackTemplate, rs *seeded.Generator) {
	target := int(math.Floor(float64(rack.TotalUs) * tmpl.FillRate * p.opts.FillRateMultiplier))
	cursor := 1

	for cursor <= target {
		remaining := rack.TotalUs - cursor + 1
		eligible := catalog.Eligible(p.templates, tmpl.AllowedTypes, remaining)
		if len(eligible) == 0 {
			// Under-filled racks are expected
			break
		}

		item := eligible[rs.Intn(len(eligible))]
		eq := models.InstalledEquipment{
			ID:          fmt.Sprintf("%s-eq-%02d", rack.ID, len(rack.InstalledEquipment)+1),
			EquipmentID: item.ID,
			UStart:      cursor,
			UEnd:        cursor + item.UHeight - 1,
		}
		p.telemetry(&eq, rs)
		rack.InstalledEquipment = append(rack.InstalledEquipment, eq)

		cursor += item.UHeight
		if !p.opts.Dense && p.facility.Chance(constants.GapProbability) {
			cursor++
		}
	}
}

// telemetry assigns status and display-only load values from the per-rack stream
func (p *packer) telemetry(eq *models.InstalledEquipment, rs *seeded.Generator) {
	eq.Status = models.StatusOnline
	if rs.Chance(p.opts.ErrorRate) {
		switch r := rs.Next(); {
		case r < 0.6:
			eq.Status = models.StatusWarning
		case r < 0.9:
			eq.Status = models.StatusCritical
		default:
			eq.Status = models.StatusOffline
		}
	}

	eq.CPULoad = utils.Round1(rs.Range(5, 95))
	eq.MemoryUsage = utils.Round1(rs.Range(10, 90))
	eq.NetworkActivity = utils.Round1(rs.Range(0, 100))
	if eq.Status == models.StatusOffline {
		eq.CPULoad, eq.MemoryUsage, eq.NetworkActivity = 0, 0, 0
	}
}

// derive computes power and thermal values from the installed equipment
func (p *packer) derive(rack *models.Rack, rs *seeded.Generator) {
	basePower := 0.0
	for _, eq := range rack.InstalledEquipment {
		if tmpl, ok := p.cat.ByID(eq.EquipmentID); ok {
			basePower += tmpl.PowerDraw
		}
	}

	// Heat load is never negative, whatever the repository returns
	if !utils.IsFinite(basePower) || basePower < 0 {
		basePower = 0
	}

	variance := constants.PowerVarianceMin + rs.Next()*constants.PowerVarianceSpread
	rack.CurrentPowerDraw = basePower * variance

	rack.InletTemp = utils.Round1(p.opts.TempBase + rs.Next()*constants.InletJitter)
	heatLoad := basePower * constants.HeatPerWatt * variance
	rack.ExhaustTemp = utils.Round1(rack.InletTemp + heatLoad)

	occupancy := float64(rack.OccupiedUnits()) / float64(rack.TotalUs)
	rack.AirflowRestriction = utils.ClampInt(int(math.Round(occupancy*60+rs.Next()*40)), 0, 100)
}
