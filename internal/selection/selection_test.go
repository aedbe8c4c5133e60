package selection

import (
	"reflect"
	"testing"
)

func TestToggle(t *testing.T) {
	m := New()

	m.Toggle(3)
	if !m.Contains(3) {
		t.Fatal("Toggle() should add an absent id")
	}
	m.Toggle(3)
	if m.Contains(3) {
		t.Fatal("Toggle() should remove a present id")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestSelectAllReplacesSelection(t *testing.T) {
	m := New()
	m.Toggle(99)

	m.SelectAll([]int64{5, 1, 3})

	if got := m.IDs(); !reflect.DeepEqual(got, []int64{1, 3, 5}) {
		t.Errorf("IDs() = %v, want [1 3 5]", got)
	}
	if m.Contains(99) {
		t.Error("SelectAll() should drop ids outside the visible set")
	}
}

func TestToggleAll(t *testing.T) {
	visible := []int64{1, 2, 3}

	m := New()
	m.Toggle(2)
	m.ToggleAll(visible)
	if m.Len() != 3 {
		t.Fatalf("ToggleAll() with partial selection: Len() = %d, want 3", m.Len())
	}

	m.ToggleAll(visible)
	if m.Len() != 0 {
		t.Errorf("ToggleAll() with full selection: Len() = %d, want 0", m.Len())
	}

	m.ToggleAll(nil)
	if m.Len() != 0 {
		t.Errorf("ToggleAll(nil) Len() = %d, want 0", m.Len())
	}
}

func TestPrune(t *testing.T) {
	m := New()
	m.SelectAll([]int64{1, 3, 5, 7})

	removed := m.Prune([]int64{1, 5, 9})
	if removed != 2 {
		t.Errorf("Prune() removed %d, want 2", removed)
	}
	if got := m.IDs(); !reflect.DeepEqual(got, []int64{1, 5}) {
		t.Errorf("IDs() = %v, want [1 5]", got)
	}
}

func TestModeExitClears(t *testing.T) {
	m := New()
	m.Enter()
	m.Toggle(4)

	if !m.Active() {
		t.Fatal("Active() = false after Enter()")
	}
	m.Exit()
	if m.Active() || m.Len() != 0 {
		t.Errorf("after Exit(): Active() = %v, Len() = %d; want false, 0", m.Active(), m.Len())
	}
}
