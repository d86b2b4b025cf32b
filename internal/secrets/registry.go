package secrets

import (
	"os"
	"sync"
)

// Registry publishes derived configuration (API keys materialized as
// environment-style variables) to the rest of the process. Components that
// need third-party credentials take a Registry instead of reading ambient
// process state, so the dependency is injectable in tests.
type Registry interface {
	// Set stores a value under the given variable name, overwriting any
	// existing value.
	Set(name, value string)

	// Get returns the value for the given variable name, or "" if unset.
	Get(name string) string
}

// ProcessEnv is a Registry that writes through to the process environment,
// so consumers that still read os.Getenv keep working.
type ProcessEnv struct{}

// NewProcessEnv creates a process-environment backed registry
func NewProcessEnv() *ProcessEnv {
	return &ProcessEnv{}
}

func (p *ProcessEnv) Set(name, value string) {
	// Setenv only fails on invalid names; materialized names are derived
	// from validated service identifiers.
	_ = os.Setenv(name, value)
}

func (p *ProcessEnv) Get(name string) string {
	return os.Getenv(name)
}

// Memory is an in-memory Registry for tests
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory registry
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
}

func (m *Memory) Get(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[name]
}

// Snapshot returns a copy of all stored values
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
