package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"chatpoker-server/pkg/table"
)

// Memory keeps snapshots in memory. Snapshots are stored encoded, so callers never share state with the store
type Memory struct {
	snapshots map[string][]byte
	lock      sync.RWMutex
}

var _ table.Store = (*Memory)(nil)

// NewMemory returns an empty memory store
func NewMemory() *Memory {
	return &Memory{
		snapshots: make(map[string][]byte),
	}
}

// Load implements table.Store
func (m *Memory) Load(_ context.Context, id string) (*table.Snapshot, error) {
	m.lock.RLock()
	data, ok := m.snapshots[id]
	m.lock.RUnlock()

	if !ok {
		return nil, table.ErrSnapshotNotFound
	}

	return decode(data)
}

// CreateOrLoad implements table.Store
func (m *Memory) CreateOrLoad(ctx context.Context, id string) (*table.Snapshot, error) {
	m.lock.Lock()
	if _, ok := m.snapshots[id]; !ok {
		data, err := json.Marshal(table.NewSnapshot(id))
		if err != nil {
			m.lock.Unlock()
			return nil, err
		}

		m.snapshots[id] = data
	}
	m.lock.Unlock()

	return m.Load(ctx, id)
}

// Save implements table.Store
func (m *Memory) Save(_ context.Context, snapshot *table.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	m.lock.Lock()
	m.snapshots[snapshot.ID] = data
	m.lock.Unlock()

	return nil
}

// Delete implements table.Store
func (m *Memory) Delete(_ context.Context, id string) error {
	m.lock.Lock()
	delete(m.snapshots, id)
	m.lock.Unlock()

	return nil
}

// List returns the ids of every stored table
func (m *Memory) List(_ context.Context) ([]string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

func decode(data []byte) (*table.Snapshot, error) {
	var snapshot table.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
