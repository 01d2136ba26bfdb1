// Package config persists the defaults an application embedding Dexios
// wants to reuse across runs: which header version, algorithm and mode to
// propose for a new encryption, and a short history of past operations.
// It carries no global state of its own. The domain orchestrators do not
// read a Config; callers load one and copy its defaults into the requests
// they build.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dexios-go/dexios/internal/header"
	"github.com/dexios-go/dexios/internal/primitives"
)

// Config holds the defaults proposed for a new encryption operation, plus a
// rolling history of past ones.
type Config struct {
	DefaultHeaderVersion header.Version       `json:"default_header_version"`
	DefaultAlgorithm     primitives.Algorithm `json:"default_algorithm"`
	DefaultMode          primitives.Mode      `json:"default_mode"`
	DefaultHashKind      header.HashKind      `json:"default_hash_kind"`
	History              []HistoryEntry       `json:"history"`
}

// HistoryEntry records one past encrypt or decrypt operation.
type HistoryEntry struct {
	FileName  string `json:"file_name"`
	Operation string `json:"operation"` // "encrypt" or "decrypt"
	Size      int64  `json:"size"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp
	Result    string `json:"result"`    // "success" or "error"
	Error     string `json:"error,omitempty"`
}

// DefaultConfig returns a Config proposing the latest header version,
// XChaCha20-Poly1305, stream mode, and BLAKE3-Balloon hashing — the
// strongest combination the format currently supports.
func DefaultConfig() *Config {
	return &Config{
		DefaultHeaderVersion: header.Latest,
		DefaultAlgorithm:     primitives.XChaCha20Poly1305,
		DefaultMode:          primitives.StreamMode,
		DefaultHashKind:      header.Blake3Balloon,
		History:              []HistoryEntry{},
	}
}

// GetConfigDir returns the directory Dexios stores its config file in.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".dexios"), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk, falling back to DefaultConfig if
// no config file exists yet.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return DefaultConfig(), err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// Save writes the configuration to disk, creating its directory if needed.
func (c *Config) Save() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// AddHistoryEntry appends entry, keeping only the most recent 100.
func (c *Config) AddHistoryEntry(entry HistoryEntry) {
	c.History = append(c.History, entry)
	if len(c.History) > 100 {
		c.History = c.History[len(c.History)-100:]
	}
}

// ClearHistory removes all history entries.
func (c *Config) ClearHistory() {
	c.History = []HistoryEntry{}
}
