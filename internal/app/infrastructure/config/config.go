package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Manager struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// New loads the config at path, seeding the file with defaults when it
// does not exist yet.
func New(path string) (*Manager, error) {
	m := &Manager{path: path}

	cfg, err := m.load(path)
	switch {
	case err == nil:
		m.cfg = cfg
	case errors.Is(err, os.ErrNotExist):
		m.cfg = m.GetDefault()
		if err := m.persist(path, m.cfg); err != nil {
			return nil, fmt.Errorf("seed config: %w", err)
		}
	default:
		return nil, fmt.Errorf("load config: %w", err)
	}

	return m, nil
}

func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg
}

// Update applies modify under the lock, validates the result and writes
// it back to disk.
func (m *Manager) Update(modify func(cfg *Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return errors.New("config not loaded")
	}

	modify(m.cfg)

	if err := m.validate(m.cfg); err != nil {
		return fmt.Errorf("rejected update: %w", err)
	}
	return m.persist(m.path, m.cfg)
}

func (m *Manager) load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("empty config path")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if err := m.validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// persist writes cfg through a temp file in the same directory so a
// crash mid-write never leaves a truncated config behind.
func (m *Manager) persist(path string, cfg *Config) error {
	if path == "" {
		return errors.New("empty config path")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("%s.%d.partial", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
