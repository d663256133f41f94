package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/componentid"
)

// RecordingClass is the class served by RecordingModule.
const RecordingClass = "recording"

// RecordingModule is a test module that remembers every component it was
// asked to build. Components whose config sets fail = "true" are rejected.
type RecordingModule struct {
	mu    sync.Mutex
	built []string
}

// Register implements the catalog.Module interface.
func (m *RecordingModule) Register(c *catalog.Catalog) {
	c.RegisterFactory(RecordingClass, func(_ context.Context, id componentid.ID, config map[string]string) (*catalog.Instance, error) {
		if config["fail"] == "true" {
			return nil, fmt.Errorf("recording component '%s' asked to fail", id)
		}
		m.mu.Lock()
		m.built = append(m.built, id.String())
		m.mu.Unlock()
		return catalog.NewInstance(id, RecordingClass, config), nil
	})
}

// Built returns the ids of built components in construction order.
func (m *RecordingModule) Built() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.built...)
}
