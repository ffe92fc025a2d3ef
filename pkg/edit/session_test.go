package edit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeOwner struct {
	deleted    [][]string
	duplicated [][]string
	placed     [][2]int
	rejectAdd  bool
}

func (f *fakeOwner) AddRackAt(col, row int) (string, bool) {
	if f.rejectAdd {
		return "", false
	}
	f.placed = append(f.placed, [2]int{col, row})
	return "rack-new", true
}

func (f *fakeOwner) DeleteRacks(ids []string) int {
	f.deleted = append(f.deleted, ids)
	return len(ids)
}

func (f *fakeOwner) DuplicateRacks(ids []string) []string {
	f.duplicated = append(f.duplicated, ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id + "-copy"
	}
	return out
}

func TestSessionDeleteDelegates(t *testing.T) {
	owner := &fakeOwner{}
	s := NewSession(owner, nil)

	s.Dispatch(ToggleMultiSelect{})
	s.Dispatch(Select{ID: "a"})
	s.Dispatch(Select{ID: "b"})
	state := s.Dispatch(Delete{})

	if len(state.Selected) != 0 {
		t.Errorf("selection after delete = %v", state.Selected)
	}
	if diff := cmp.Diff([][]string{{"a", "b"}}, owner.deleted); diff != "" {
		t.Errorf("owner deletes mismatch:\n%s", diff)
	}

	// Nothing selected: owner is not called
	s.Dispatch(Delete{})
	if len(owner.deleted) != 1 {
		t.Errorf("delete with empty selection reached the owner")
	}
}

func TestSessionDuplicateSelectsCopies(t *testing.T) {
	owner := &fakeOwner{}
	s := NewSession(owner, nil)

	s.Dispatch(Select{ID: "a"})
	state := s.Dispatch(Duplicate{})

	if diff := cmp.Diff([][]string{{"a"}}, owner.duplicated); diff != "" {
		t.Errorf("owner duplicates mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, state.Clipboard); diff != "" {
		t.Errorf("clipboard mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a-copy"}, state.Selected); diff != "" {
		t.Errorf("selection mismatch:\n%s", diff)
	}

	// Undo returns to the original selection
	state = s.Dispatch(Undo{})
	if diff := cmp.Diff([]string{"a"}, state.Selected); diff != "" {
		t.Errorf("undo after duplicate mismatch:\n%s", diff)
	}
}

func TestSessionPasteIsLogicalOnly(t *testing.T) {
	owner := &fakeOwner{}
	s := NewSession(owner, nil)

	s.Dispatch(Select{ID: "a"})
	s.Dispatch(Copy{})
	s.Dispatch(Select{ID: "b"})
	state := s.Dispatch(Paste{})

	if diff := cmp.Diff([]string{"b", "a"}, state.Selected); diff != "" {
		t.Errorf("selection mismatch:\n%s", diff)
	}
	if len(owner.duplicated) != 0 || len(owner.deleted) != 0 {
		t.Error("paste mutated facility data")
	}
}

func TestSessionPlaceAt(t *testing.T) {
	owner := &fakeOwner{}
	s := NewSession(owner, nil)

	if _, ok := s.PlaceAt(1, 2); ok {
		t.Error("PlaceAt() succeeded outside place mode")
	}

	s.Dispatch(SetMode{Mode: ModePlace})
	id, ok := s.PlaceAt(3, 4)
	if !ok || id != "rack-new" {
		t.Fatalf("PlaceAt() = (%q, %v)", id, ok)
	}
	if diff := cmp.Diff([][2]int{{3, 4}}, owner.placed); diff != "" {
		t.Errorf("placements mismatch:\n%s", diff)
	}
	if !s.State().IsSelected("rack-new") {
		t.Error("placed rack not selected")
	}

	owner.rejectAdd = true
	if _, ok := s.PlaceAt(5, 5); ok {
		t.Error("PlaceAt() reported success after owner rejection")
	}
}

func TestSessionWithoutOwner(t *testing.T) {
	s := NewSession(nil, nil)
	s.Dispatch(Select{ID: "a"})
	s.Dispatch(Duplicate{})
	state := s.Dispatch(Delete{})
	if len(state.Selected) != 0 {
		t.Error("delete without owner did not clear selection")
	}
}
