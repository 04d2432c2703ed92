package store

// MockStore is an in-memory SnapshotStore for tests.
type MockStore struct {
	Snapshot *Snapshot
	Saved    []*Snapshot

	// Error flags for testing error conditions
	LoadError error
	SaveError error
}

// Load returns the configured snapshot, or an empty one.
func (m *MockStore) Load() (*Snapshot, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Snapshot == nil {
		return &Snapshot{}, nil
	}
	// Return a copy so callers cannot alter the stored state
	cp := *m.Snapshot
	return &cp, nil
}

// Save records the snapshot and makes it the one returned by Load.
func (m *MockStore) Save(snapshot *Snapshot) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Snapshot = snapshot
	m.Saved = append(m.Saved, snapshot)
	return nil
}
