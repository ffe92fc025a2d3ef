// Package edit holds the viewer's editing state: tool mode, selection, clipboard
// and a bounded linear undo history.
//
// Reduce is a pure transition function. It never touches rack data; Session pairs
// it with a facility owner that performs the real mutations.
package edit

import (
	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Snapshot is one immutable step of undo history
type Snapshot struct {
	Mode        Mode     `yaml:"mode" json:"mode"`
	SelectedIDs []string `yaml:"selected_ids" json:"selected_ids"`
}

func (s Snapshot) equal(o Snapshot) bool {
	if s.Mode != o.Mode || len(s.SelectedIDs) != len(o.SelectedIDs) {
		return false
	}
	for i := range s.SelectedIDs {
		if s.SelectedIDs[i] != o.SelectedIDs[i] {
			return false
		}
	}
	return true
}

// State is the full editing state. Treat values as immutable; Reduce returns new ones.
type State struct {
	Mode         Mode
	Selected     []string
	Clipboard    []string
	SnapEnabled  bool
	MultiSelect  bool
	History      []Snapshot
	Index        int
	HistoryLimit int
}

// NewState returns the initial state: select mode, nothing selected, one history entry
func NewState() State {
	return State{
		Mode:         ModeSelect,
		Selected:     []string{},
		Clipboard:    []string{},
		SnapEnabled:  true,
		History:      []Snapshot{{Mode: ModeSelect, SelectedIDs: []string{}}},
		HistoryLimit: constants.MaxHistory,
	}
}

// Current returns the snapshot at the history index
func (s State) Current() Snapshot {
	if s.Index < 0 || s.Index >= len(s.History) {
		return Snapshot{Mode: s.Mode, SelectedIDs: s.Selected}
	}
	return s.History[s.Index]
}

// CanUndo reports whether Undo would change the state
func (s State) CanUndo() bool {
	return s.Index > 0
}

// CanRedo reports whether Redo would change the state
func (s State) CanRedo() bool {
	return s.Index < len(s.History)-1
}

// IsSelected reports whether id is in the selection
func (s State) IsSelected(id string) bool {
	return utils.Contains(s.Selected, id)
}

// Reduce applies one action. Every action is total: invalid requests are no-ops.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetMode:
		if !act.Mode.Valid() {
			return s
		}
		return record(s, Snapshot{Mode: act.Mode, SelectedIDs: s.Selected})

	case Select:
		if act.ID == "" {
			return s
		}
		var next []string
		if s.MultiSelect {
			if i := utils.IndexOf(s.Selected, act.ID); i >= 0 {
				next = make([]string, 0, len(s.Selected)-1)
				next = append(next, s.Selected[:i]...)
				next = append(next, s.Selected[i+1:]...)
			} else {
				next = append(clone(s.Selected), act.ID)
			}
		} else {
			next = []string{act.ID}
		}
		return record(s, Snapshot{Mode: s.Mode, SelectedIDs: next})

	case SelectMany:
		return record(s, Snapshot{Mode: s.Mode, SelectedIDs: unique(act.IDs)})

	case ClearSelection:
		return record(s, Snapshot{Mode: s.Mode, SelectedIDs: []string{}})

	case ToggleSnap:
		s.SnapEnabled = !s.SnapEnabled
		return s

	case ToggleMultiSelect:
		s.MultiSelect = !s.MultiSelect
		return s

	case Copy, Duplicate:
		s.Clipboard = clone(s.Selected)
		return s

	case Paste:
		if len(s.Clipboard) == 0 {
			return s
		}
		return record(s, Snapshot{Mode: s.Mode, SelectedIDs: unique(append(clone(s.Selected), s.Clipboard...))})

	case Delete:
		return record(s, Snapshot{Mode: s.Mode, SelectedIDs: []string{}})

	case Undo:
		if s.Index <= 0 {
			return s
		}
		return restore(s, s.Index-1)

	case Redo:
		if s.Index >= len(s.History)-1 {
			return s
		}
		return restore(s, s.Index+1)
	}

	return s
}

// record appends snap after the current index, truncating the redo future.
// A snapshot equal to the current one is not recorded.
func record(s State, snap Snapshot) State {
	snap.SelectedIDs = clone(snap.SelectedIDs)
	if len(s.History) > 0 && s.Index >= 0 && s.Index < len(s.History) && s.History[s.Index].equal(snap) {
		return s
	}

	keep := s.Index + 1
	if keep > len(s.History) {
		keep = len(s.History)
	}
	history := make([]Snapshot, 0, keep+1)
	history = append(history, s.History[:keep]...)
	history = append(history, snap)

	limit := s.HistoryLimit
	if limit <= 0 {
		limit = constants.MaxHistory
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	s.History = history
	s.Index = len(history) - 1
	s.Mode = snap.Mode
	s.Selected = clone(snap.SelectedIDs)
	return s
}

func restore(s State, index int) State {
	snap := s.History[index]
	s.Index = index
	s.Mode = snap.Mode
	s.Selected = clone(snap.SelectedIDs)
	return s
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
