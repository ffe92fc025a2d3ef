package edit

import (
	"github.com/braunma/rackfloor/pkg/utils"
)

// FacilityOwner performs the rack mutations that editing actions imply
type FacilityOwner interface {
	AddRackAt(col, row int) (string, bool)
	DeleteRacks(ids []string) int
	DuplicateRacks(ids []string) []string
}

// Session drives the reducer from user input and forwards destructive actions to the owner.
//
// Contract: Delete removes the selected racks through the owner, then clears the
// selection. Duplicate stages the clipboard, asks the owner to copy the selected racks,
// and selects the copies. Paste changes only the logical selection.
type Session struct {
	state  State
	owner  FacilityOwner
	logger *utils.Logger
}

// NewSession creates a session bound to owner
func NewSession(owner FacilityOwner, logger *utils.Logger) *Session {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Session{
		state:  NewState(),
		owner:  owner,
		logger: logger,
	}
}

// State returns the current editing state
func (s *Session) State() State {
	return s.state
}

// Dispatch applies an action and performs any owner side effects
func (s *Session) Dispatch(a Action) State {
	switch a.(type) {
	case Delete:
		ids := clone(s.state.Selected)
		if len(ids) > 0 && s.owner != nil {
			removed := s.owner.DeleteRacks(ids)
			s.logger.Debug("Deleted %d of %d selected racks", removed, len(ids))
		}
		s.state = Reduce(s.state, a)

	case Duplicate:
		ids := clone(s.state.Selected)
		s.state = Reduce(s.state, a)
		if len(ids) > 0 && s.owner != nil {
			copies := s.owner.DuplicateRacks(ids)
			s.logger.Debug("Duplicated %d racks", len(copies))
			if len(copies) > 0 {
				s.state = Reduce(s.state, SelectMany{IDs: copies})
			}
		}

	default:
		s.state = Reduce(s.state, a)
	}
	return s.state
}

// PlaceAt adds an empty rack at the picked cell when the place tool is active.
// The new rack becomes the selection.
func (s *Session) PlaceAt(col, row int) (string, bool) {
	if s.state.Mode != ModePlace || s.owner == nil {
		return "", false
	}
	id, ok := s.owner.AddRackAt(col, row)
	if !ok {
		s.logger.Warning("Cannot place rack at (%d, %d)", col, row)
		return "", false
	}
	s.state = Reduce(s.state, SelectMany{IDs: []string{id}})
	return id, true
}
