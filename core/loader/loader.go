package loader

import (
	"fmt"

	"isoserve/core/server"
)

// Stager is what a feature mounts its stages on.
type Stager interface {
	Use(stages ...server.Stage)
}

// Feature is a self-contained module that contributes pipeline stages.
type Feature interface {
	Name() string
	IsEnabled() bool
	Load(s Stager) error
}

// Manager holds the registered features.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature. Features load in registration order.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature and returns the names of those loaded.
func (m *Manager) LoadAll(s Stager) ([]string, error) {
	var loaded []string
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(s); err != nil {
			return loaded, fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		loaded = append(loaded, f.Name())
	}
	return loaded, nil
}
