// Package selection tracks the task identifiers marked for batch actions.
package selection

import "sort"

// Manager is a set of selected task ids plus the selection-mode flag.
// It is not safe for concurrent use.
type Manager struct {
	ids    map[int64]struct{}
	active bool
}

func New() *Manager {
	return &Manager{ids: make(map[int64]struct{})}
}

// Toggle adds id when absent and removes it when present.
func (m *Manager) Toggle(id int64) {
	if _, ok := m.ids[id]; ok {
		delete(m.ids, id)
		return
	}
	m.ids[id] = struct{}{}
}

// SelectAll replaces the selection with exactly visible.
func (m *Manager) SelectAll(visible []int64) {
	m.ids = make(map[int64]struct{}, len(visible))
	for _, id := range visible {
		m.ids[id] = struct{}{}
	}
}

// ToggleAll clears the selection when every visible id is already selected,
// otherwise selects all of them.
func (m *Manager) ToggleAll(visible []int64) {
	if len(visible) > 0 && len(m.ids) == len(visible) && m.containsAll(visible) {
		m.Clear()
		return
	}
	m.SelectAll(visible)
}

func (m *Manager) containsAll(ids []int64) bool {
	for _, id := range ids {
		if _, ok := m.ids[id]; !ok {
			return false
		}
	}
	return true
}

func (m *Manager) Clear() {
	m.ids = make(map[int64]struct{})
}

// Prune drops every selected id that is not in visible.
// Returns the number of ids removed.
func (m *Manager) Prune(visible []int64) int {
	keep := make(map[int64]struct{}, len(visible))
	for _, id := range visible {
		keep[id] = struct{}{}
	}

	removed := 0
	for id := range m.ids {
		if _, ok := keep[id]; !ok {
			delete(m.ids, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Contains(id int64) bool {
	_, ok := m.ids[id]
	return ok
}

func (m *Manager) Len() int {
	return len(m.ids)
}

// IDs returns the selected ids in ascending order.
func (m *Manager) IDs() []int64 {
	ids := make([]int64, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Active reports whether selection mode is on.
func (m *Manager) Active() bool {
	return m.active
}

// Enter turns selection mode on.
func (m *Manager) Enter() {
	m.active = true
}

// Exit turns selection mode off and clears the selection.
func (m *Manager) Exit() {
	m.active = false
	m.Clear()
}
