package edit

// Mode is the active editing tool
type Mode string

const (
	ModeSelect    Mode = "select"
	ModePlace     Mode = "place"
	ModeRotate    Mode = "rotate"
	ModeDelete    Mode = "delete"
	ModeDuplicate Mode = "duplicate"
)

// Valid reports whether m is a known tool mode
func (m Mode) Valid() bool {
	switch m {
	case ModeSelect, ModePlace, ModeRotate, ModeDelete, ModeDuplicate:
		return true
	}
	return false
}

// Action is one input to the reducer. The set of actions is closed.
type Action interface {
	actionName() string
}

// SetMode switches the active tool
type SetMode struct{ Mode Mode }

// Select toggles (multi-select) or replaces (single-select) the selection with ID
type Select struct{ ID string }

// SelectMany replaces the selection with IDs
type SelectMany struct{ IDs []string }

// ClearSelection empties the selection
type ClearSelection struct{}

// ToggleSnap flips snap-to-grid; not recorded in history
type ToggleSnap struct{}

// ToggleMultiSelect flips multi-select; not recorded in history
type ToggleMultiSelect struct{}

// Copy stages the selection on the clipboard
type Copy struct{}

// Paste unions the clipboard into the selection
type Paste struct{}

// Duplicate stages the selection on the clipboard for duplication
type Duplicate struct{}

// Delete clears the selection after its racks are removed
type Delete struct{}

// Undo steps back one snapshot
type Undo struct{}

// Redo steps forward one snapshot
type Redo struct{}

func (SetMode) actionName() string           { return "set_mode" }
func (Select) actionName() string            { return "select" }
func (SelectMany) actionName() string        { return "select_many" }
func (ClearSelection) actionName() string    { return "clear_selection" }
func (ToggleSnap) actionName() string        { return "toggle_snap" }
func (ToggleMultiSelect) actionName() string { return "toggle_multi_select" }
func (Copy) actionName() string              { return "copy" }
func (Paste) actionName() string             { return "paste" }
func (Duplicate) actionName() string         { return "duplicate" }
func (Delete) actionName() string            { return "delete" }
func (Undo) actionName() string              { return "undo" }
func (Redo) actionName() string              { return "redo" }

// Name returns the wire name of an action
func Name(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}
