package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. PICKMANY_PROMPT_PAGE_SIZE
const EnvPrefix = "PICKMANY"

// Config represents the CLI configuration
type Config struct {
	Prompt PromptSettings `mapstructure:"prompt" toml:"prompt"`
	UI     UISettings     `mapstructure:"ui" toml:"ui"`
}

// PromptSettings are the defaults for prompt behaviour. Command line flags
// take precedence over them.
type PromptSettings struct {
	Message    string `mapstructure:"message" toml:"message"`
	PageSize   int    `mapstructure:"page_size" toml:"page_size"`
	VimMode    bool   `mapstructure:"vim_mode" toml:"vim_mode"`
	KeepFilter bool   `mapstructure:"keep_filter" toml:"keep_filter"`
	Fuzzy      bool   `mapstructure:"fuzzy" toml:"fuzzy"`
	Create     bool   `mapstructure:"create" toml:"create"`
	ShowHelp   bool   `mapstructure:"show_help" toml:"show_help"`
	Min        int    `mapstructure:"min" toml:"min"`
	Max        int    `mapstructure:"max" toml:"max"` // 0 means unbounded
}

// UISettings represents terminal rendering configuration
type UISettings struct {
	Cursor    string `mapstructure:"cursor" toml:"cursor"`
	Checked   string `mapstructure:"checked" toml:"checked"`
	Unchecked string `mapstructure:"unchecked" toml:"unchecked"`
	KeyHelp   bool   `mapstructure:"key_help" toml:"key_help"` // list key bindings under the prompt
	Color     bool   `mapstructure:"color" toml:"color"`
	MaxWidth  int    `mapstructure:"max_width" toml:"max_width"` // 0 follows the terminal width
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service reading the default config file
func NewConfigService() ConfigService {
	return &configService{
		bus:      eventbus.NullBus{},
		filePath: DefaultPath(),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	if bus != nil {
		cs.bus = bus
	}
	return cs
}

// DefaultPath returns the config file location under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pickmany", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the default config file. A missing file yields the defaults,
// still subject to environment overrides.
func (cs *configService) Load() (*Config, error) {
	path := cs.filePath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = ""
	}
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	cs.bus.Publish(domain.ConfigLoadedEvent{Path: path})
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	cs.bus.Publish(domain.ConfigLoadedEvent{Path: path})
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("prompt.message", d.Prompt.Message)
	v.SetDefault("prompt.page_size", d.Prompt.PageSize)
	v.SetDefault("prompt.vim_mode", d.Prompt.VimMode)
	v.SetDefault("prompt.keep_filter", d.Prompt.KeepFilter)
	v.SetDefault("prompt.fuzzy", d.Prompt.Fuzzy)
	v.SetDefault("prompt.create", d.Prompt.Create)
	v.SetDefault("prompt.show_help", d.Prompt.ShowHelp)
	v.SetDefault("prompt.min", d.Prompt.Min)
	v.SetDefault("prompt.max", d.Prompt.Max)
	v.SetDefault("ui.cursor", d.UI.Cursor)
	v.SetDefault("ui.checked", d.UI.Checked)
	v.SetDefault("ui.unchecked", d.UI.Unchecked)
	v.SetDefault("ui.key_help", d.UI.KeyHelp)
	v.SetDefault("ui.color", d.UI.Color)
	v.SetDefault("ui.max_width", d.UI.MaxWidth)
}

// Validate rejects settings no prompt could start with
func (c *Config) Validate() error {
	if c.Prompt.PageSize < 1 {
		return domain.NewConfigError("prompt.page_size must be positive, got %d", c.Prompt.PageSize)
	}
	if c.Prompt.Min < 0 || c.Prompt.Max < 0 {
		return domain.NewConfigError("prompt.min and prompt.max can not be negative")
	}
	if c.Prompt.Max > 0 && c.Prompt.Min > c.Prompt.Max {
		return domain.NewConfigError("prompt.min (%d) is greater than prompt.max (%d)", c.Prompt.Min, c.Prompt.Max)
	}
	if c.UI.MaxWidth < 0 {
		return domain.NewConfigError("ui.max_width can not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Prompt: PromptSettings{
			Message:    "Select options:",
			PageSize:   7,
			KeepFilter: true,
			ShowHelp:   true,
		},
		UI: UISettings{
			Cursor:    ">",
			Checked:   "[x]",
			Unchecked: "[ ]",
			Color:     true,
		},
	}
}
