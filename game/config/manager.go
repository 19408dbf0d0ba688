package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigName is the ruleset used when a session names none.
var DefaultConfigName = engine.DefaultRuleset().Name

// extensions are tried in order when a name has none.
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles ruleset loading and caching. Files in the config directory
// take precedence over the built-in rulesets of the same name.
type Manager struct {
	configDir     string
	defaultConfig *engine.Ruleset
	configs       map[string]*engine.Ruleset
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.Ruleset),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}
	return m, nil
}

// LoadConfig loads a ruleset by name. The name may carry a .json, .yaml or
// .yml extension. The returned ruleset is a copy and safe to modify.
func (m *Manager) LoadConfig(name string) (*engine.Ruleset, error) {
	id, err := configID(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	// Check cache first
	if r, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return copyRuleset(r), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if r, exists := m.configs[id]; exists {
		return copyRuleset(r), nil
	}

	r, err := m.read(name, id)
	if err != nil {
		return nil, err
	}
	m.configs[id] = r
	return copyRuleset(r), nil
}

// read loads id from disk, falling back to a built-in ruleset.
func (m *Manager) read(name, id string) (*engine.Ruleset, error) {
	path, ok := m.find(name, id)
	if !ok {
		if r, builtin := engine.BuiltinRulesets()[id]; builtin {
			return &r, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, id)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	r, err := engine.DecodeRuleset(data, engine.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, filepath.Base(path), err)
	}
	return r, nil
}

// find returns the file backing a config name.
func (m *Manager) find(name, id string) (string, bool) {
	candidates := []string{name}
	if !hasConfigExt(name) {
		candidates = candidates[:0]
		for _, ext := range extensions {
			candidates = append(candidates, id+ext)
		}
	}

	for _, c := range candidates {
		path := filepath.Join(m.configDir, c)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ListConfigs returns information about all available rulesets: files in
// the config directory, then the built-ins no file overrides.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !hasConfigExt(entry.Name()) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if seen[id] {
			continue
		}

		r, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			continue
		}
		seen[id] = true
		configs = append(configs, info(entry.Name(), id, r, false))
	}

	builtins := engine.BuiltinRulesets()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if seen[name] {
			continue
		}
		r := builtins[name]
		configs = append(configs, info("", name, &r, true))
	}

	return configs, nil
}

// GetDefault returns the default ruleset
func (m *Manager) GetDefault() *engine.Ruleset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRuleset(m.defaultConfig)
}

// SetDefault sets the default ruleset by name
func (m *Manager) SetDefault(name string) error {
	r, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = r
	return nil
}

// RefreshCache drops all cached rulesets so the next load reads the disk again
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.Ruleset)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

func (m *Manager) loadDefaultConfig() error {
	r, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.defaultConfig = r
	m.mu.Unlock()
	return nil
}

// SaveConfig validates a ruleset and writes it to disk. The format follows
// the name's extension and defaults to JSON.
func (m *Manager) SaveConfig(name string, rules *engine.Ruleset) error {
	id, err := configID(name)
	if err != nil {
		return err
	}
	if rules == nil {
		return fmt.Errorf("%w: ruleset is nil", ErrInvalidConfig)
	}

	r := rules.Clone()
	if r.Name == "" {
		r.Name = id
	}
	r.ApplyDefaults()
	if err := engine.ValidateRuleset(&r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	filename := name
	if !hasConfigExt(filename) {
		filename = id + ".json"
	}
	path := filepath.Join(m.configDir, filename)

	data, err := engine.EncodeRuleset(&r, engine.FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.configs[id] = &r
	m.mu.Unlock()
	return nil
}

// configID strips the extension from a config name and rejects names that
// would escape the config directory.
func configID(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}
	if hasConfigExt(name) {
		return strings.TrimSuffix(name, filepath.Ext(name)), nil
	}
	return name, nil
}

func hasConfigExt(name string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(name)))
}

func info(filename, id string, r *engine.Ruleset, builtin bool) *service.ConfigInfo {
	return &service.ConfigInfo{
		Filename:    filename,
		ConfigID:    id,
		Name:        r.Name,
		Description: r.Description,
		Players:     r.Players,
		Mode:        r.Mode,
		Scoring:     r.Scoring,
		Builtin:     builtin,
	}
}

func copyRuleset(r *engine.Ruleset) *engine.Ruleset {
	if r == nil {
		return nil
	}
	c := r.Clone()
	return &c
}
