// Package config persists the CLI's settings: the service origin, the API key
// and output, logging and cache preferences. Settings live in a YAML file managed by viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/topmolt/cli/src/client/cache"
	"github.com/topmolt/cli/src/client/logging"
	"github.com/topmolt/cli/src/client/paths"
)

// Setting keys
const (
	KeyServerAddress = "server.address"
	KeyServerToken   = "server.token"
	KeyServerTimeout = "server.timeout"
	KeyOutputFormat  = "output.format"
	KeyOutputColor   = "output.color"
	KeyLogLevel      = "logging.level"
	KeyLogFile       = "logging.file"
	KeyLogMaxSize    = "logging.max_size"
	KeyLogMaxFiles   = "logging.max_files"
	KeyCacheEnabled  = "cache.enabled"
	KeyCacheTTL      = "cache.ttl"
	KeyCacheMaxSize  = "cache.max_size"
)

// Environment variables consulted when the file has no value
const (
	EnvBaseURL = "TOPMOLT_BASE_URL"
	EnvAPIKey  = "TOPMOLT_API_KEY"
)

// Credentials are the values a Client is built from
type Credentials struct {
	BaseURL string
	APIKey  string
}

// Store is a config file opened for reading and writing
type Store struct {
	v    *viper.Viper
	path string
}

// Open loads the config file at path. A missing file is not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	s.v = newViper(path)

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return s, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" || ext == "yml" {
		v.SetConfigType("yaml")
	}
	v.SetConfigPermissions(0600)

	v.SetDefault(KeyServerAddress, "")
	v.SetDefault(KeyServerToken, "")
	v.SetDefault(KeyServerTimeout, 30)
	v.SetDefault(KeyOutputFormat, "")
	v.SetDefault(KeyOutputColor, "auto")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxFiles, 5)
	v.SetDefault(KeyCacheEnabled, true)
	v.SetDefault(KeyCacheTTL, 300)
	v.SetDefault(KeyCacheMaxSize, 10)
	return v
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Credentials returns the stored base URL and API key, falling back to the environment.
func (s *Store) Credentials() Credentials {
	c := Credentials{
		BaseURL: s.v.GetString(KeyServerAddress),
		APIKey:  s.v.GetString(KeyServerToken),
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	return c
}

// SetBaseURL stores the service origin
func (s *Store) SetBaseURL(url string) error {
	return s.Set(KeyServerAddress, strings.TrimSuffix(strings.TrimSpace(url), "/"))
}

// SetAPIKey stores the API key
func (s *Store) SetAPIKey(key string) error {
	return s.Set(KeyServerToken, strings.TrimSpace(key))
}

// ClearAPIKey forgets the stored API key
func (s *Store) ClearAPIKey() error {
	return s.Set(KeyServerToken, "")
}

// Reset deletes the config file and returns every setting to its default
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove config: %w", err)
	}
	s.v = newViper(s.path)
	return nil
}

// Set stores value under key and writes the file
func (s *Store) Set(key string, value any) error {
	s.v.Set(key, value)
	return s.Save()
}

// Save writes every setting to the config file
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Get returns the raw value for key, or nil
func (s *Store) Get(key string) any {
	return s.v.Get(key)
}

// IsSet reports whether key has a value, including defaults
func (s *Store) IsSet(key string) bool {
	return s.v.IsSet(key)
}

func (s *Store) GetString(key string) string { return s.v.GetString(key) }
func (s *Store) GetInt(key string) int       { return s.v.GetInt(key) }
func (s *Store) GetBool(key string) bool     { return s.v.GetBool(key) }

// AllSettings returns a nested map of every setting
func (s *Store) AllSettings() map[string]any {
	return s.v.AllSettings()
}

// Timeout returns the request deadline; zero means none
func (s *Store) Timeout() time.Duration {
	secs := s.v.GetInt(KeyServerTimeout)
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// LogConfig returns the logging settings
func (s *Store) LogConfig() logging.Config {
	return logging.Config{
		Level:    s.v.GetString(KeyLogLevel),
		File:     s.v.GetString(KeyLogFile),
		MaxSize:  s.v.GetInt(KeyLogMaxSize),
		MaxFiles: s.v.GetInt(KeyLogMaxFiles),
	}
}

// CacheConfig returns the response cache settings
func (s *Store) CacheConfig() cache.Config {
	return cache.Config{
		Enabled: s.v.GetBool(KeyCacheEnabled),
		TTL:     time.Duration(s.v.GetInt(KeyCacheTTL)) * time.Second,
		MaxSize: s.v.GetInt(KeyCacheMaxSize),
		Dir:     paths.CacheDir(),
	}
}

// Redacted returns AllSettings with the API key masked
func (s *Store) Redacted() map[string]any {
	all := s.v.AllSettings()
	if server, ok := all["server"].(map[string]any); ok {
		if tok, ok := server["token"].(string); ok && tok != "" {
			server["token"] = MaskKey(tok)
		}
	}
	return all
}

// MaskKey keeps the first and last four characters of an API key
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
