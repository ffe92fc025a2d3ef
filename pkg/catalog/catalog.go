package catalog

import (
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Repository is the read-only equipment catalog consumed by the packer and the facility owner
type Repository interface {
	ByID(id string) (models.EquipmentTemplate, bool)
	List() []models.EquipmentTemplate
}

// Static is an in-memory catalog that preserves insertion order
type Static struct {
	items []models.EquipmentTemplate
	index map[string]int
}

// NewStatic builds a catalog from templates. Later duplicates of an id replace earlier ones in place.
// Templates that fail validation are left out.
func NewStatic(templates []models.EquipmentTemplate) *Static {
	s := &Static{index: make(map[string]int, len(templates))}
	for _, t := range templates {
		if t.Validate() != nil {
			continue
		}
		t.Color = utils.NormalizeColor(t.Color)
		if i, ok := s.index[t.ID]; ok {
			s.items[i] = t
			continue
		}
		s.index[t.ID] = len(s.items)
		s.items = append(s.items, t)
	}
	return s
}

// ByID looks up a template by id
func (s *Static) ByID(id string) (models.EquipmentTemplate, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.EquipmentTemplate{}, false
	}
	return s.items[i], true
}

// List returns the templates in catalog order
func (s *Static) List() []models.EquipmentTemplate {
	return append([]models.EquipmentTemplate(nil), s.items...)
}

// Len returns the number of templates
func (s *Static) Len() int {
	return len(s.items)
}

// Eligible filters templates to the valid ones of an allowed type whose height fits
// in maxHeight units
func Eligible(templates []models.EquipmentTemplate, allowedTypes []string, maxHeight int) []models.EquipmentTemplate {
	var out []models.EquipmentTemplate
	for _, t := range templates {
		if t.Validate() != nil || t.UHeight > maxHeight {
			continue
		}
		if !utils.Contains(allowedTypes, t.Type) {
			continue
		}
		out = append(out, t)
	}
	return out
}
