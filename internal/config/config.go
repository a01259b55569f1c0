package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"paintpick/internal/eventbus"
)

// Duration is a time.Duration that reads and writes as "500ms", "1s" in TOML
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	API     APISettings    `toml:"api"`
	Opener  OpenerSettings `toml:"opener"`
	UI      UISettings     `toml:"ui"`
	Server  ServerSettings `toml:"server"`
}

// APISettings locates the search and color extraction endpoints
type APISettings struct {
	BaseURL     string   `toml:"base_url"`
	SearchPath  string   `toml:"search_path"`
	ExtractPath string   `toml:"extract_path"`
	Timeout     Duration `toml:"timeout"`
}

// OpenerSettings describes where applied colors are relayed
type OpenerSettings struct {
	URL    string `toml:"url"`    // empty means no opener is attached
	Origin string `toml:"origin"` // sent as the Origin header
}

// UISettings represents UI-related configuration
type UISettings struct {
	AutoSearchDelay Duration `toml:"auto_search_delay"`
	CloseDelay      Duration `toml:"close_delay"`
}

// ServerSettings configures the reference backend
type ServerSettings struct {
	Addr          string   `toml:"addr"`
	SearchURL     string   `toml:"search_url"` // %s is replaced by the escaped query
	MaxResults    int      `toml:"max_results"`
	MaxImageBytes int64    `toml:"max_image_bytes"`
	FetchTimeout  Duration `toml:"fetch_timeout"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
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
	return filepath.Join(configDir, "paintpick", "config.toml")
}

// NewConfigService creates a config service reading the per-user config file
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service for an explicit file, or the per-user file when path is empty
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it names
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
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

// SearchEndpoint returns the absolute URL of the image search endpoint
func (c *Config) SearchEndpoint() string {
	return joinURL(c.API.BaseURL, c.API.SearchPath)
}

// ExtractEndpoint returns the absolute URL of the color extraction endpoint
func (c *Config) ExtractEndpoint() string {
	return joinURL(c.API.BaseURL, c.API.ExtractPath)
}

func joinURL(base, path string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return base + path
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:     "http://127.0.0.1:8080",
			SearchPath:  "/search",
			ExtractPath: "/extract-color",
			Timeout:     Duration(30 * time.Second),
		},
		UI: UISettings{
			AutoSearchDelay: Duration(500 * time.Millisecond),
			CloseDelay:      Duration(time.Second),
		},
		Server: ServerSettings{
			Addr:          ":8080",
			SearchURL:     "https://www.bing.com/images/search?q=%s",
			MaxResults:    8,
			MaxImageBytes: 10 << 20,
			FetchTimeout:  Duration(15 * time.Second),
		},
	}
}
