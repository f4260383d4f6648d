package store

import (
	"fjacquet/vss-csv/internal/models"
)

// MockPositionStore is a PositionLoader for tests.
type MockPositionStore struct {
	Table     models.PositionTable
	LoadError error
	Loads     int
}

// Load returns the mock table, or the built-in layout when Table is nil.
func (m *MockPositionStore) Load() (models.PositionTable, error) {
	m.Loads++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Table == nil {
		return models.DefaultPositions(), nil
	}
	return m.Table, nil
}

var (
	_ PositionLoader = (*PositionStore)(nil)
	_ PositionLoader = (*MockPositionStore)(nil)
)
