// Package config handles loading chores.toml configuration files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// DefaultEpoch is the reference Sunday weekly rotations are counted from.
const DefaultEpoch = "2026-02-01"

// Config represents the chores.toml configuration file.
type Config struct {
	// Epoch anchors week numbering and first due dates. Changing it
	// re-rotates every multi-week task.
	Epoch   string  `toml:"epoch"`
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`

	Maintenance Maintenance `toml:"maintenance"`

	// Users seeds the household when the database has none.
	Users []User `toml:"users"`
}

// Server contains HTTP server configuration.
type Server struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// Storage contains database configuration.
type Storage struct {
	// Path is the SQLite file. ":memory:" keeps everything in memory.
	Path string `toml:"path"`
}

// Maintenance controls the background override pruner.
type Maintenance struct {
	// RetentionDays is how long past reschedules are kept. 0 disables pruning.
	RetentionDays int `toml:"retention-days"`
	IntervalHours int `toml:"interval-hours"`
}

// User is a household member entry.
type User struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Epoch: DefaultEpoch,
		Server: Server{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Storage: Storage{Path: "chores.db"},
		Maintenance: Maintenance{
			RetentionDays: 90,
			IntervalHours: 24,
		},
	}
}

// Load reads the config file at path on top of the defaults.
// Returns the defaults if path is empty or the file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := Parse(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, keeping values the document leaves out,
// and validates the result.
func Parse(data string, cfg *Config) error {
	meta, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks ranges and formats.
func (c *Config) Validate() error {
	if _, ok := recurrence.ParseDate(c.Epoch); !ok {
		return fmt.Errorf("epoch %q is not a YYYY-MM-DD date", c.Epoch)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.Maintenance.RetentionDays < 0 {
		return fmt.Errorf("maintenance retention-days must not be negative")
	}
	if c.Maintenance.RetentionDays > 0 && c.Maintenance.IntervalHours < 1 {
		return fmt.Errorf("maintenance interval-hours must be at least 1")
	}
	if len(c.Users) > 0 {
		if _, err := chores.ValidateUsers(c.householdUsers()); err != nil {
			return err
		}
	}
	return nil
}

// Engine returns a recurrence engine anchored at the configured epoch.
func (c *Config) Engine() recurrence.Engine {
	epoch, ok := recurrence.ParseDate(c.Epoch)
	if !ok {
		epoch = recurrence.MustParseDate(DefaultEpoch)
	}
	return recurrence.New(epoch)
}

// HouseholdUsers returns the configured users, or nil if none are set.
func (c *Config) HouseholdUsers() []chores.User {
	if len(c.Users) == 0 {
		return nil
	}
	users, err := chores.ValidateUsers(c.householdUsers())
	if err != nil {
		return nil
	}
	return users
}

func (c *Config) householdUsers() []chores.User {
	users := make([]chores.User, len(c.Users))
	for i, u := range c.Users {
		users[i] = chores.User{ID: u.ID, Name: u.Name, Color: u.Color}
	}
	return users
}
