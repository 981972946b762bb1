package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Memory is a process-local store. Profiles are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (m *Memory) Put(_ context.Context, rec Record) error {
	rec, err := prepare(rec)
	if err != nil {
		return err
	}
	rec.Profile = slices.Clone(rec.Profile)

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.records[rec.UserID]; ok {
		rec.Email = existing.Email
		rec.Name = existing.Name
	}
	m.records[rec.UserID] = rec
	return nil
}

func (m *Memory) Get(_ context.Context, userID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[strings.TrimSpace(userID)]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Profile = slices.Clone(rec.Profile)
	return rec, nil
}

func (m *Memory) Close() error { return nil }
