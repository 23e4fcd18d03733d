package ui

import (
	"sync"
	"time"
)

// Manager holds the panels of a screen in registration order.
type Manager struct {
	mu     sync.RWMutex
	panels []*Panel
	byName map[string]*Panel
}

// NewManager creates a manager with the given panels.
func NewManager(panels ...*Panel) *Manager {
	m := &Manager{byName: make(map[string]*Panel)}
	for _, p := range panels {
		m.Add(p)
	}
	return m
}

// Add registers p, replacing any panel with the same name.
func (m *Manager) Add(p *Panel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.byName[p.Name()]; ok {
		for i, cur := range m.panels {
			if cur == old {
				m.panels[i] = p
				break
			}
		}
	} else {
		m.panels = append(m.panels, p)
	}
	m.byName[p.Name()] = p
}

// Panel returns the panel named name, or nil.
func (m *Manager) Panel(name string) *Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byName[name]
}

// Panels returns the panels in registration order.
func (m *Manager) Panels() []*Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Panel, len(m.panels))
	copy(out, m.panels)
	return out
}

// DisableAll disables every panel.
func (m *Manager) DisableAll() {
	for _, p := range m.Panels() {
		p.Disable()
	}
}

// Tick advances the fades of every panel.
func (m *Manager) Tick(dt time.Duration) {
	for _, p := range m.Panels() {
		p.Tick(dt)
	}
}
