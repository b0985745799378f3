package vector

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
)

//go:embed config.yml
var defaultConfig []byte

// ConfigFile is the line-oriented config.yml resource.
//
// Writes locate their line by substring containment of the key. Keys are
// checked against Keys before that happens.
type ConfigFile struct {
	path    string
	catalog ItemCatalog

	mu sync.Mutex
}

// Description is the help text and current value of a key.
type Description struct {
	Key      string
	Help     []string
	Value    string
	Modified time.Time
}

// NewConfigFile creates a handle to the config file at path.
func NewConfigFile(path string, catalog ItemCatalog) *ConfigFile {
	return &ConfigFile{path: path, catalog: catalog}
}

// Path returns the location of the file.
func (c *ConfigFile) Path() string {
	return c.path
}

// EnsureDefault writes the default config if the file does not exist.
func (c *ConfigFile) EnsureDefault() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("vector: stat config: %w", err)
	}
	return c.writeDefault()
}

// Reset replaces the file with the default config.
func (c *ConfigFile) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("vector: remove config: %w", err)
	}
	return c.writeDefault()
}

func (c *ConfigFile) writeDefault() error {
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("vector: create config dir: %w", err)
		}
	}
	if err := os.WriteFile(c.path, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("vector: write config: %w", err)
	}
	return nil
}

// Stat returns the file info of the config file.
func (c *ConfigFile) Stat() (fs.FileInfo, error) {
	return os.Stat(c.path)
}

// ModTime returns the time the file was last written.
func (c *ConfigFile) ModTime() (time.Time, error) {
	info, err := c.Stat()
	if err != nil {
		return time.Time{}, fmt.Errorf("vector: stat config: %w", err)
	}
	return info.ModTime(), nil
}

// values parses the file into raw key/value pairs.
func (c *ConfigFile) values() (map[string]any, error) {
	c.mu.Lock()
	data, err := os.ReadFile(c.path)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("vector: read config: %w", err)
	}
	m := make(map[string]any)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("vector: parse config: %w", err)
	}
	return m, nil
}

// Load parses the file into a Tunables value. Fields that are missing or
// invalid keep their value from prev; their errors are joined into the
// returned error. If the file cannot be read or parsed at all, prev is
// returned unchanged together with the error.
func (c *ConfigFile) Load(prev Tunables) (Tunables, error) {
	m, err := c.values()
	if err != nil {
		return prev, err
	}

	next := prev
	var errs []error
	for _, key := range Keys {
		v, ok := m[key]
		if !ok || v == nil {
			errs = append(errs, fmt.Errorf("%w: %s missing", ErrInvalidValue, key))
			continue
		}
		canonical, err := ParseValue(key, fmt.Sprint(v), c.catalog)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		assign(&next, key, canonical)
	}
	return next, errors.Join(errs...)
}

// assign stores an already validated canonical value in t.
func assign(t *Tunables, key, canonical string) {
	switch key {
	case KeyItem:
		t.Item = canonical
	case KeyBothHands:
		t.BothHands = canonical == "true"
	case KeySingleTime:
		t.SingleUse = canonical == "true"
	case KeyVisibilityLength:
		t.VisibilityLength, _ = strconv.ParseFloat(canonical, 64)
	case KeyVelocityModifier:
		t.VelocityModifier, _ = strconv.ParseFloat(canonical, 64)
	case KeyMaxVelocity:
		t.MaxVelocity, _ = strconv.ParseFloat(canonical, 64)
	}
}

// Describe returns the help text above key and its current value.
func (c *ConfigFile) Describe(key string) (Description, error) {
	if !slices.Contains(Keys, key) {
		return Description{}, fmt.Errorf("%w: '%s'", ErrUnknownKey, key)
	}
	c.mu.Lock()
	lines, err := c.readLines()
	c.mu.Unlock()
	if err != nil {
		return Description{}, err
	}
	mod, err := c.ModTime()
	if err != nil {
		return Description{}, err
	}
	m, err := c.values()
	if err != nil {
		return Description{}, err
	}

	d := Description{Key: key, Modified: mod}
	if v, ok := m[key]; ok && v != nil {
		d.Value = fmt.Sprint(v)
	}
	for i, line := range lines {
		if !strings.Contains(line, key) {
			continue
		}
		for j := max(0, i-3); j < i; j++ {
			if help, ok := strings.CutPrefix(lines[j], "# "); ok {
				d.Help = append(d.Help, help)
			}
		}
		break
	}
	return d, nil
}

// Set validates value for key and rewrites every line containing key. It
// returns the rewritten lines.
func (c *ConfigFile) Set(key, value string) ([]string, error) {
	if !slices.Contains(Keys, key) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownKey, key)
	}
	canonical, err := ParseValue(key, value, c.catalog)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lines, err := c.readLines()
	if err != nil {
		return nil, err
	}
	var changed []string
	for i, line := range lines {
		if strings.Contains(line, key) {
			lines[i] = key + ": " + canonical
			changed = append(changed, lines[i])
		}
	}
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(c.path, []byte(data), 0o644); err != nil {
		return nil, fmt.Errorf("vector: write config: %w", err)
	}
	return changed, nil
}

func (c *ConfigFile) readLines() ([]string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("vector: read config: %w", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}
