package audio

import "sync"

// Prefs stores player preferences such as saved volumes.
type Prefs interface {
	Float(key string, def float64) float64
	SetFloat(key string, v float64)
}

// MemoryPrefs is an in-process Prefs.
type MemoryPrefs struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewMemoryPrefs creates an empty store.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]float64)}
}

func (p *MemoryPrefs) Float(key string, def float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

func (p *MemoryPrefs) SetFloat(key string, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = v
}
