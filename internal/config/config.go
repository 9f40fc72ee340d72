// Package config provides thread-safe configuration management for filelab.
// Settings are stored as key-value pairs in a file whose format is chosen by
// its extension: key=value (default), YAML (.yaml, .yml) or TOML (.toml).
// Saves are atomic and all operations are safe for concurrent use.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default configuration file location
const EnvConfigPath = "FILELAB_CONFIG"

// Format is an on-disk configuration format
type Format int

const (
	FormatKeyValue Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "key=value"
	}
}

// FormatFor picks the format from the file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatKeyValue
	}
}

// DefaultPath returns $FILELAB_CONFIG, or filelab/filelab.conf under the XDG
// config home
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "filelab", "filelab.conf")
}

// Config manages filelab configuration with thread-safe operations
type Config struct {
	filePath string
	format   Format
	data     map[string]string
	loaded   bool // Track if configuration has been loaded from disk
	mu       sync.RWMutex
}

// New creates a new Config instance. An empty path uses DefaultPath.
func New(filePath string) *Config {
	if filePath == "" {
		filePath = DefaultPath()
	}

	return &Config{
		filePath: filePath,
		format:   FormatFor(filePath),
		data:     make(map[string]string),
	}
}

// rlockLoaded acquires the read lock with the data loaded from disk.
// On success the caller must release c.mu.RUnlock.
func (c *Config) rlockLoaded() error {
	c.mu.RLock()
	if c.loaded {
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	var err error
	if !c.loaded {
		err = c.load()
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.mu.RLock()
	return nil
}

// Load reads configuration from file
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// load must be called with c.mu held for writing
func (c *Config) load() error {
	data, err := os.ReadFile(c.filePath)
	if os.IsNotExist(err) {
		// Created on first Save
		c.loaded = true
		return nil
	}
	if err != nil {
		return errors.Errorf("failed to open config file: %w", err)
	}

	var parsed map[string]string
	switch c.format {
	case FormatYAML:
		parsed, err = parseYAML(data)
	case FormatTOML:
		parsed, err = parseTOML(data)
	default:
		parsed, err = parseKeyValue(bytes.NewReader(data))
	}
	if err != nil {
		return errors.Errorf("failed to parse config file %s: %w", c.filePath, err)
	}

	for k, v := range parsed {
		c.data[k] = v
	}
	c.loaded = true
	return nil
}

func parseKeyValue(r io.Reader) (map[string]string, error) {
	data := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			data[key] = value
		}
	}
	return data, scanner.Err()
}

func parseYAML(raw []byte) (map[string]string, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return flatten(doc), nil
}

func parseTOML(raw []byte) (map[string]string, error) {
	var doc map[string]interface{}
	if _, err := toml.Decode(string(raw), &doc); err != nil {
		return nil, err
	}
	return flatten(doc), nil
}

// flatten turns a decoded document into config entries.
// Keys are upper-cased so retry_max_attempts and RETRY_MAX_ATTEMPTS are the
// same setting; lists are joined with commas.
func flatten(doc map[string]interface{}) map[string]string {
	data := make(map[string]string, len(doc))
	for k, v := range doc {
		key := strings.ToUpper(strings.TrimSpace(k))
		switch val := v.(type) {
		case nil:
			data[key] = ""
		case []interface{}:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, fmt.Sprint(item))
			}
			data[key] = strings.Join(items, ",")
		default:
			data[key] = fmt.Sprint(val)
		}
	}
	return data
}

// Save writes configuration to file using atomic write pattern
// This prevents data loss if the write operation fails midway
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.save()
}

func (c *Config) save() error {
	// Ensure directory exists
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := c.encode(&buf); err != nil {
		return errors.Errorf("failed to encode config: %w", err)
	}

	// Create temporary file in the same directory for atomic rename
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(c.filePath)+".tmp-*")
	if err != nil {
		return errors.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Cleanup on error

	if err := tmpFile.Chmod(0o600); err != nil {
		tmpFile.Close()
		return errors.Errorf("failed to set permissions on temp file: %w", err)
	}

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		tmpFile.Close()
		return errors.Errorf("failed to write temp file: %w", err)
	}

	// Sync to ensure data is written to disk
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return errors.Errorf("failed to sync temp file: %w", err)
	}

	// Explicitly check close error to prevent data loss
	if err := tmpFile.Close(); err != nil {
		return errors.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename - if this succeeds, the old config is replaced atomically
	if err := os.Rename(tmpPath, c.filePath); err != nil {
		return errors.Errorf("failed to rename temp file to config: %w", err)
	}

	return nil
}

func (c *Config) encode(w io.Writer) error {
	fmt.Fprintln(w, "# filelab configuration")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintln(w, "")

	switch c.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c.data); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c.data)
	default:
		keys := make([]string, 0, len(c.data))
		for key := range c.data {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "%s=%s\n", key, c.data[key])
		}
		return nil
	}
}

// Get retrieves a configuration value (thread-safe)
func (c *Config) Get(key string) (string, error) {
	if err := c.rlockLoaded(); err != nil {
		return "", errors.Errorf("failed to load config: %w", err)
	}
	defer c.mu.RUnlock()

	value, exists := c.data[key]
	if !exists {
		return "", errors.Errorf("config key not found: %s", key)
	}
	return value, nil
}

// GetOrDefault retrieves a value or returns default if not found (thread-safe)
// First checks the config, then the Defaults table, then the provided fallback
func (c *Config) GetOrDefault(key, defaultValue string) string {
	if err := c.rlockLoaded(); err != nil {
		return defaultValue
	}
	defer c.mu.RUnlock()

	if value, exists := c.data[key]; exists {
		return value
	}
	if tableDefault, exists := Defaults[key]; exists {
		return tableDefault
	}
	return defaultValue
}

// GetInt returns the value of key (or its default) as an integer
func (c *Config) GetInt(key string) (int, error) {
	raw := strings.TrimSpace(c.GetOrDefault(key, ""))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("config %s=%q is not an integer: %w", key, raw, err)
	}
	return n, nil
}

// GetList returns the comma separated value of key (or its default) with
// blank items dropped
func (c *Config) GetList(key string) []string {
	return SplitList(c.GetOrDefault(key, ""))
}

// SplitList splits a comma separated list, trimming items and dropping blanks
func SplitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Set sets a configuration value (thread-safe)
// Automatically loads existing configuration if not already loaded to prevent data loss
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		if err := c.load(); err != nil {
			return errors.Errorf("failed to load existing config before set: %w", err)
		}
	}

	c.data[key] = value
	return c.save()
}

// Exists checks if a key exists (thread-safe)
func (c *Config) Exists(key string) bool {
	if err := c.rlockLoaded(); err != nil {
		return false
	}
	defer c.mu.RUnlock()

	_, exists := c.data[key]
	return exists
}

// GetAll returns all configuration data (thread-safe)
func (c *Config) GetAll() map[string]string {
	if err := c.rlockLoaded(); err != nil {
		return map[string]string{}
	}
	defer c.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[string]string, len(c.data))
	for k, v := range c.data {
		result[k] = v
	}
	return result
}

// Effective returns every known key with its configured or default value,
// plus any extra keys present in the file
func (c *Config) Effective() map[string]string {
	result := make(map[string]string, len(Defaults))
	for k, v := range Defaults {
		result[k] = v
	}
	for k, v := range c.GetAll() {
		result[k] = v
	}
	return result
}

// Delete removes a configuration key (thread-safe)
// Automatically loads existing configuration if not already loaded to prevent data loss
func (c *Config) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		if err := c.load(); err != nil {
			return errors.Errorf("failed to load existing config before delete: %w", err)
		}
	}

	delete(c.data, key)
	return c.save()
}

// FilePath returns the configuration file path
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the on-disk format used for the configuration file
func (c *Config) Format() Format {
	return c.format
}
