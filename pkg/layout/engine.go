package layout

import (
	"math"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Point is a ground-plane world position
type Point struct {
	X float64
	Z float64
}

// Preview is the live drag state for one frame. With snapping on the world
// position is the snapped cell center; otherwise it follows the pointer.
type Preview struct {
	WorldX float64
	WorldZ float64
	Col    int
	Row    int
}

// Owner is the part of the facility-state owner the engine reads from and commits to
type Owner interface {
	Racks() []*models.Rack
	UpdateRackPosition(rackID string, col, row int) bool
}

// Config holds the world-unit spacing of the grid
type Config struct {
	RackSpacing  float64
	AisleSpacing float64
}

// DefaultConfig returns the standard floor spacing
func DefaultConfig() Config {
	return Config{
		RackSpacing:  constants.RackSpacing,
		AisleSpacing: constants.AisleSpacing,
	}
}

// Engine maps grid cells to world space and runs drag/snap placement
type Engine struct {
	cfg     Config
	owner   Owner
	capture PointerCapture
	logger  *utils.Logger

	maxCol  int
	maxRow  int
	centerX float64
	centerZ float64

	snap      bool
	drag      *dragSession
	onPreview func(Preview)
}

// dragSession owns the pointer subscription for one drag
type dragSession struct {
	rackID   string
	offset   Point
	cell     models.GridCell
	world    Point
	release  func()
	released bool
}

// NewEngine creates a layout engine and computes the initial extent
func NewEngine(cfg Config, owner Owner, capture PointerCapture, logger *utils.Logger) *Engine {
	if cfg.RackSpacing <= 0 {
		cfg.RackSpacing = constants.RackSpacing
	}
	if cfg.AisleSpacing <= 0 {
		cfg.AisleSpacing = constants.AisleSpacing
	}
	if logger == nil {
		logger = utils.Discard()
	}
	e := &Engine{
		cfg:     cfg,
		owner:   owner,
		capture: capture,
		logger:  logger,
		snap:    true,
	}
	e.Refresh()
	return e
}

// SetSnap turns drag snapping on or off. Commits always land on a grid cell.
func (e *Engine) SetSnap(enabled bool) {
	e.snap = enabled
}

// Snap reports whether drag previews snap to cell centers
func (e *Engine) Snap() bool {
	return e.snap
}

// SetPreviewListener registers fn to be called whenever the snapped drag cell changes
func (e *Engine) SetPreviewListener(fn func(Preview)) {
	e.onPreview = fn
}

// Refresh recomputes the grid extent and centering offset from the owner's racks.
// It is a no-op while a drag is active so the pointer mapping stays stable.
func (e *Engine) Refresh() {
	if e.drag != nil {
		return
	}
	e.maxCol, e.maxRow = 0, 0
	for _, rack := range e.owner.Racks() {
		if rack.PositionX > e.maxCol {
			e.maxCol = rack.PositionX
		}
		if rack.PositionY > e.maxRow {
			e.maxRow = rack.PositionY
		}
	}
	e.centerX = float64(e.maxCol) * e.cfg.RackSpacing / 2
	e.centerZ = float64(e.maxRow) * e.cfg.AisleSpacing / 2
}

// Extent returns the maximum column and row of the current rack set
func (e *Engine) Extent() (maxCol, maxRow int) {
	return e.maxCol, e.maxRow
}

// GridToWorld converts a grid cell to its world-space center
func (e *Engine) GridToWorld(col, row int) Point {
	return Point{
		X: float64(col)*e.cfg.RackSpacing - e.centerX,
		Z: float64(row)*e.cfg.AisleSpacing - e.centerZ,
	}
}

// WorldToGrid snaps a world position to the nearest grid cell.
// Non-finite or out-of-bounds positions return ok=false.
func (e *Engine) WorldToGrid(p Point) (col, row int, ok bool) {
	if !utils.IsFinite(p.X) || !utils.IsFinite(p.Z) {
		return 0, 0, false
	}
	fc := math.Round((p.X + e.centerX) / e.cfg.RackSpacing)
	fr := math.Round((p.Z + e.centerZ) / e.cfg.AisleSpacing)
	if !inBounds(fc) || !inBounds(fr) {
		return 0, 0, false
	}
	return int(fc), int(fr), true
}

// PointerToGridPreview returns where a new rack would land under the pointer
func (e *Engine) PointerToGridPreview(p Point) (col, row int, ok bool) {
	return e.WorldToGrid(p)
}

// BeginDrag starts dragging rackID; the pointer offset is kept so the rack does not jump.
// It fails if a drag is already active, the rack is unknown or the pointer is not finite.
func (e *Engine) BeginDrag(rackID string, pointer Point) bool {
	if e.drag != nil {
		return false
	}
	if !utils.IsFinite(pointer.X) || !utils.IsFinite(pointer.Z) {
		return false
	}

	var rack *models.Rack
	for _, r := range e.owner.Racks() {
		if r.ID == rackID {
			rack = r
			break
		}
	}
	if rack == nil {
		e.logger.Debug("BeginDrag: rack %s not found", rackID)
		return false
	}

	origin := e.GridToWorld(rack.PositionX, rack.PositionY)
	session := &dragSession{
		rackID: rackID,
		offset: Point{X: origin.X - pointer.X, Z: origin.Z - pointer.Z},
		cell:   rack.Cell(),
		world:  origin,
	}
	e.drag = session
	if e.capture != nil {
		session.release = e.capture.Capture(e.handlePointer)
	}
	return true
}

// UpdateDrag moves the dragged rack under the pointer. changed is true only when the
// snapped cell differs from the previous frame.
func (e *Engine) UpdateDrag(pointer Point) (preview Preview, changed bool) {
	d := e.drag
	if d == nil {
		return Preview{}, false
	}

	if utils.IsFinite(pointer.X) && utils.IsFinite(pointer.Z) {
		d.world = Point{X: pointer.X + d.offset.X, Z: pointer.Z + d.offset.Z}
		if col, row, ok := e.WorldToGrid(d.world); ok {
			cell := models.GridCell{Col: col, Row: row}
			if cell != d.cell {
				d.cell = cell
				changed = true
			}
		}
	}

	world := d.world
	if e.snap {
		world = e.GridToWorld(d.cell.Col, d.cell.Row)
	}
	preview = Preview{WorldX: world.X, WorldZ: world.Z, Col: d.cell.Col, Row: d.cell.Row}
	if changed && e.onPreview != nil {
		e.onPreview(preview)
	}
	return preview, changed
}

// CommitDrag ends the drag and asks the owner to move the rack to the snapped cell.
// Occupied cells are not rejected; the last commit wins.
func (e *Engine) CommitDrag() (rackID string, col, row int, ok bool) {
	d := e.endDrag()
	if d == nil {
		return "", 0, 0, false
	}

	ok = e.owner.UpdateRackPosition(d.rackID, d.cell.Col, d.cell.Row)
	if !ok {
		e.logger.Warning("Position update rejected for rack %s at (%d, %d)", d.rackID, d.cell.Col, d.cell.Row)
	}
	e.Refresh()
	return d.rackID, d.cell.Col, d.cell.Row, ok
}

// CancelDrag abandons the active drag without committing
func (e *Engine) CancelDrag() {
	e.endDrag()
}

// Close tears the engine down, releasing any in-flight drag
func (e *Engine) Close() {
	e.endDrag()
}

// Dragging reports whether a drag is active and which rack it moves
func (e *Engine) Dragging() (string, bool) {
	if e.drag == nil {
		return "", false
	}
	return e.drag.rackID, true
}

// endDrag detaches the session and releases its subscription exactly once
func (e *Engine) endDrag() *dragSession {
	d := e.drag
	if d == nil {
		return nil
	}
	e.drag = nil
	if !d.released {
		d.released = true
		if d.release != nil {
			d.release()
		}
	}
	return d
}

func (e *Engine) handlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		e.UpdateDrag(ev.Pos)
	case PointerUp:
		e.UpdateDrag(ev.Pos)
		e.CommitDrag()
	case PointerCancel:
		e.CancelDrag()
	}
}

func inBounds(v float64) bool {
	return v >= 0 && v <= constants.MaxGridCoord
}
