package store

import (
	"context"
	"sync"

	"realestate-sim/internal/model"
)

// Memory is a process-local PortfolioStore. Contents are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	entries []model.PortfolioEntry
}

func NewMemory() *Memory {
	return &Memory{entries: []model.PortfolioEntry{}}
}

func (m *Memory) List(_ context.Context) ([]model.PortfolioEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.PortfolioEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *Memory) Add(_ context.Context, e model.PortfolioEntry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (model.PortfolioEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.PortfolioEntry{}, ErrNotFound
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = []model.PortfolioEntry{}
	return nil
}
