package facility

import (
	"github.com/google/btree"

	"github.com/braunma/rackfloor/pkg/models"
)

// cellEntry orders racks by row, then column, then id
type cellEntry struct {
	Row int
	Col int
	ID  string
}

func lessCell(a, b cellEntry) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	return a.ID < b.ID
}

// cellIndex is an ordered grid-cell index over rack positions
type cellIndex struct {
	tree *btree.BTreeG[cellEntry]
}

func newCellIndex() *cellIndex {
	return &cellIndex{tree: btree.NewG[cellEntry](16, lessCell)}
}

func (ci *cellIndex) insert(r *models.Rack) {
	ci.tree.ReplaceOrInsert(cellEntry{Row: r.PositionY, Col: r.PositionX, ID: r.ID})
}

func (ci *cellIndex) remove(r *models.Rack) {
	ci.tree.Delete(cellEntry{Row: r.PositionY, Col: r.PositionX, ID: r.ID})
}

// at returns the ids of every rack in the cell, in id order
func (ci *cellIndex) at(col, row int) []string {
	var ids []string
	start := cellEntry{Row: row, Col: col}
	ci.tree.AscendGreaterOrEqual(start, func(e cellEntry) bool {
		if e.Row != row || e.Col != col {
			return false
		}
		ids = append(ids, e.ID)
		return true
	})
	return ids
}

func (ci *cellIndex) occupied(col, row int) bool {
	return len(ci.at(col, row)) > 0
}

// overlaps returns every cell holding more than one rack, in row-major order
func (ci *cellIndex) overlaps() []models.GridCell {
	var cells []models.GridCell
	var prev *cellEntry
	counted := false
	ci.tree.Ascend(func(e cellEntry) bool {
		if prev != nil && prev.Row == e.Row && prev.Col == e.Col {
			if !counted {
				cells = append(cells, models.GridCell{Col: e.Col, Row: e.Row})
				counted = true
			}
		} else {
			counted = false
		}
		cur := e
		prev = &cur
		return true
	})
	return cells
}

func (ci *cellIndex) clear() {
	ci.tree.Clear(false)
}
