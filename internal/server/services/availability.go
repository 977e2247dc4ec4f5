package services

import "sync"

// Availability is the process-wide switch that gates check-ins.
type Availability struct {
	mu     sync.RWMutex
	active bool
}

func NewAvailability(active bool) *Availability {
	return &Availability{active: active}
}

func (a *Availability) IsActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// Set stores active and reports whether the value changed.
func (a *Availability) Set(active bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	changed := a.active != active
	a.active = active
	return changed
}
