package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/molviz/molforge/pkg/mol"
)

func pickerFixture(t *testing.T, names ...string) []*mol.Molecule {
	t.Helper()
	mols := make([]*mol.Molecule, len(names))
	for i, name := range names {
		m := mol.New(name)
		if err := m.AddAtom(mol.Atom{ID: "a1", Element: "C"}); err != nil {
			t.Fatalf("AddAtom: %v", err)
		}
		mols[i] = m
	}
	return mols
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestRecordListModelNavigation(t *testing.T) {
	m := NewRecordListModel(pickerFixture(t, "water", "ethanol", "benzene"))

	updated, _ := m.Update(keyMsg("down"))
	m = updated.(RecordListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("down"))
	m = updated.(RecordListModel)
	updated, _ = m.Update(keyMsg("down"))
	m = updated.(RecordListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, should not move past last record", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("up"))
	m = updated.(RecordListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after up, want 1", m.Cursor)
	}
}

func TestRecordListModelSelect(t *testing.T) {
	m := NewRecordListModel(pickerFixture(t, "water", "ethanol"))

	updated, _ := m.Update(keyMsg("down"))
	m = updated.(RecordListModel)
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(RecordListModel)

	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should return tea.Quit")
	}
}

func TestRecordListModelQuitWithoutSelection(t *testing.T) {
	m := NewRecordListModel(pickerFixture(t, "water", "ethanol"))

	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(RecordListModel)

	if m.Selected != -1 {
		t.Errorf("Selected = %d, want -1 after quit", m.Selected)
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
}

func TestRecordListModelView(t *testing.T) {
	m := NewRecordListModel(pickerFixture(t, "water", "ethanol"))

	view := m.View()
	if !strings.Contains(view, "water") {
		t.Error("view should list record names")
	}
	if !strings.Contains(view, "[1/2]") {
		t.Error("view should show position indicator")
	}
}
