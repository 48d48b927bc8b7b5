package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ErrNoOptions is returned when neither the menu file nor the command line
// supplied any option.
var ErrNoOptions = errors.New("no options to choose from")

// EnvConfig names a menu file used when --file is not given.
const EnvConfig = "TERMPICK_CONFIG"

// Config is a menu definition.
type Config struct {
	// Options are the initial menu entries, in display order.
	Options []string `yaml:"options" toml:"options"`

	// Cancel is printed instead of an option when the user quits.
	Cancel string `yaml:"cancel" toml:"cancel"`

	// Refresh is the idle redraw interval, e.g. "200ms".
	Refresh string `yaml:"refresh" toml:"refresh"`

	Styles Styles      `yaml:"styles" toml:"styles"`
	Keys   KeyBindings `yaml:"keys" toml:"keys"`
}

// Styles holds the two row styles.
type Styles struct {
	Selected StyleSpec `yaml:"selected" toml:"selected"`
	Normal   StyleSpec `yaml:"normal" toml:"normal"`
}

// StyleSpec describes a row style. Colors accept anything lipgloss.Color
// does: ANSI indexes ("241") or hex ("#5f5f5f").
type StyleSpec struct {
	Foreground string `yaml:"foreground" toml:"foreground"`
	Background string `yaml:"background" toml:"background"`
	Bold       bool   `yaml:"bold" toml:"bold"`
	Reverse    bool   `yaml:"reverse" toml:"reverse"`
}

// KeyBindings maps the reference actions to single characters. Arrow keys
// and Enter always work in addition to these.
type KeyBindings struct {
	Up     string `yaml:"up" toml:"up"`
	Down   string `yaml:"down" toml:"down"`
	Add    string `yaml:"add" toml:"add"`
	Delete string `yaml:"delete" toml:"delete"`
	Copy   string `yaml:"copy" toml:"copy"`
	Quit   string `yaml:"quit" toml:"quit"`
}

// Bindings is KeyBindings resolved to runes.
type Bindings struct {
	Up, Down, Add, Delete, Copy, Quit rune
}

const defaultRefresh = "200ms"

// Default returns the built-in configuration: j/k navigation, a/d to add
// and delete, y to copy, q to quit.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) menu file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported menu file extension %q (want .yaml, .yml or .toml)", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu file %s: %w", path, err)
	}
	return cfg, nil
}

// FindDefault returns the menu file to use when none was given: $TERMPICK_CONFIG,
// then menu.yaml, menu.yml or menu.toml under the user config directory.
func FindDefault() (string, bool) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, true
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	for _, name := range []string{"menu.yaml", "menu.yml", "menu.toml"} {
		p := filepath.Join(dir, "termpick", name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

func (c *Config) applyDefaults() {
	if c.Refresh == "" {
		c.Refresh = defaultRefresh
	}
	if c.Styles.Selected == (StyleSpec{}) {
		c.Styles.Selected = StyleSpec{Background: "241"}
	}

	k := &c.Keys
	setDefault(&k.Up, "k")
	setDefault(&k.Down, "j")
	setDefault(&k.Add, "a")
	setDefault(&k.Delete, "d")
	setDefault(&k.Copy, "y")
	setDefault(&k.Quit, "q")
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Validate checks the refresh interval and key bindings.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Refresh)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("refresh must be positive, got %s", c.Refresh)
	}
	if _, err := c.Keys.Resolve(); err != nil {
		return err
	}
	return nil
}

// RefreshInterval returns the parsed refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Refresh)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultRefresh)
	}
	return d
}

// Resolve converts the bindings to runes, rejecting anything that is not
// exactly one character or is bound twice.
func (k KeyBindings) Resolve() (Bindings, error) {
	var b Bindings
	seen := make(map[rune]string)
	for _, f := range []struct {
		name  string
		value string
		dst   *rune
	}{
		{"up", k.Up, &b.Up},
		{"down", k.Down, &b.Down},
		{"add", k.Add, &b.Add},
		{"delete", k.Delete, &b.Delete},
		{"copy", k.Copy, &b.Copy},
		{"quit", k.Quit, &b.Quit},
	} {
		if utf8.RuneCountInString(f.value) != 1 {
			return Bindings{}, fmt.Errorf("key %q must be a single character, got %q", f.name, f.value)
		}
		r, _ := utf8.DecodeRuneInString(f.value)
		if r < 32 || r == 127 {
			return Bindings{}, fmt.Errorf("key %q must be printable", f.name)
		}
		if other, dup := seen[r]; dup {
			return Bindings{}, fmt.Errorf("key %q is bound to both %s and %s", f.value, other, f.name)
		}
		seen[r] = f.name
		*f.dst = r
	}
	return b, nil
}

// Lipgloss builds the lipgloss style for a row.
func (s StyleSpec) Lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Reverse(s.Reverse)
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	return st
}
