package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/internal/validate"
)

// Client is the planner CLI configuration, stored as YAML.
type Client struct {
	// APIURL is the base URL of the planner API.
	APIURL string `yaml:"api_url"`

	// DBPath is the SQLite file holding on-device state (the current trip).
	// Relative paths are resolved against the config file's directory.
	DBPath string `yaml:"db_path"`

	// StaleTime is how long fetched data is served from cache before a refetch.
	StaleTime time.Duration `yaml:"stale_time"`

	// Timeout bounds each HTTP request to the API.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultClient returns the configuration written on first run.
func DefaultClient() *Client {
	return &Client{
		APIURL:    "http://localhost:8080",
		DBPath:    "planner.db",
		StaleTime: 30 * time.Second,
		Timeout:   10 * time.Second,
	}
}

// normalize fills zero values with defaults.
func (c *Client) normalize() {
	def := DefaultClient()
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = def.APIURL
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StaleTime <= 0 {
		c.StaleTime = def.StaleTime
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
}

// LoadClient reads the client configuration at path.
//
// On first run (no file) a default configuration is written with 0600 perms
// and returned. PLANNER_API_URL and PLANNER_DB override the file. The API
// URL must be an absolute http(s) URL. The returned DBPath is absolute or
// relative to the working directory, never to the config file.
func LoadClient(path string) (*Client, error) {
	if path == "" {
		return nil, errors.New("config.LoadClient: config path is empty")
	}

	cfg := DefaultClient()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := SaveClient(path, cfg); err != nil {
			return nil, fmt.Errorf("config.LoadClient: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("config.LoadClient: %w", err)
	default:
		cfg = &Client{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.LoadClient: %s: %w", path, err)
		}
	}

	if v := os.Getenv("PLANNER_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("PLANNER_DB"); v != "" {
		cfg.DBPath = v
	}
	cfg.normalize()

	if !validate.URL(cfg.APIURL) {
		return nil, fmt.Errorf("config.LoadClient: api_url %q is not an http(s) URL", cfg.APIURL)
	}
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(filepath.Dir(path), cfg.DBPath)
	}
	return cfg, nil
}

// SaveClient writes cfg to path atomically (temp file + rename), creating the
// parent directory with 0700 and leaving the file with 0600 perms.
func SaveClient(path string, cfg *Client) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".planner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// DefaultClientPath is where the CLI looks for its config when -config is
// not given: $XDG_CONFIG_HOME/planner/config.yaml or the OS equivalent.
func DefaultClientPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "planner.yaml"
	}
	return filepath.Join(dir, "planner", "config.yaml")
}
