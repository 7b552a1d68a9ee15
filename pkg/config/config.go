package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v3"
)

type Rotation struct {
	Enable     bool `yaml:"enable"`
	MaxSizeMB  int  `yaml:"max-size-mb"`
	MaxBackups int  `yaml:"max-backups"`
	MaxAgeDays int  `yaml:"max-age-days"`
	Compress   bool `yaml:"compress"`
}

type Log struct {
	Level       string   `yaml:"level"`
	Format      string   `yaml:"format"`
	Output      string   `yaml:"output"`
	Development bool     `yaml:"development"`
	Rotation    Rotation `yaml:"rotation"`
}

// Table names a transliteration table file.
type Table struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ResolvedPath expands a leading ~ in the table path.
func (t *Table) ResolvedPath() (string, error) {
	p, err := homedir.Expand(t.Path)
	if err != nil {
		return "", fmt.Errorf("expand table path %q: %w", t.Path, err)
	}
	return p, nil
}

type Config struct {
	CurrentTable  string   `yaml:"current-table"`
	TableOverride string   `yaml:"-"`
	DefaultCodec  string   `yaml:"default-codec,omitempty"`
	Tables        []*Table `yaml:"tables"`
	Log           Log      `yaml:"log,omitempty"`
	// configPath is the file path used for reading and writing this config.
	configPath string `yaml:"-"`
}

func (c *Config) HasTable(name string) bool {
	for _, table := range c.Tables {
		if table.Name == name {
			return true
		}
	}
	return false
}

func (c *Config) SetCurrentTable(name string) error {
	oldTable := c.CurrentTable
	for _, table := range c.Tables {
		if table.Name == name {
			c.CurrentTable = name

			if err := c.Write(); err != nil {
				// "Revert" change to the table selection, either
				// everything is successful or nothing.
				c.CurrentTable = oldTable
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("could not find table with name %v", name)
}

// SetDefaultCodec stores name as the codec used when none is given.
func (c *Config) SetDefaultCodec(name string) error {
	old := c.DefaultCodec
	c.DefaultCodec = name
	if err := c.Write(); err != nil {
		c.DefaultCodec = old
		return err
	}
	return nil
}

func (c *Config) ActiveTable() *Table {
	if c == nil {
		return nil
	}

	toSearch := c.TableOverride
	if c.TableOverride == "" {
		toSearch = c.CurrentTable
	}

	if toSearch == "" {
		return nil
	}

	for _, table := range c.Tables {
		if table.Name == toSearch {
			// Make copy of the table struct so callers cannot write back
			// into the config.
			t := *table
			return &t
		}
	}
	return nil
}

// Path returns the file this config is read from and written to.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) Write() error {
	configPath := c.configPath
	if configPath == "" {
		var err error
		configPath, err = getDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, "config.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encoder := yaml.NewEncoder(tmpFile)
	if err := encoder.Encode(c); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flush config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp config file: %w", err)
	}
	return nil
}

func ReadConfig(cfgPath string) (c Config, err error) {
	resolvedPath, err := resolveConfigPath(cfgPath)
	if err != nil {
		return Config{}, err
	}

	file, err := os.OpenFile(resolvedPath, os.O_RDONLY, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{configPath: resolvedPath}, nil
		}
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Config{}, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > 0 {
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	c.configPath = resolvedPath
	return c, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func resolveConfigPath(cfgPath string) (string, error) {
	if cfgPath == "" {
		return getDefaultConfigPath()
	}
	cfgPath, err := homedir.Expand(cfgPath)
	if err != nil {
		return "", fmt.Errorf("expand config path: %w", err)
	}
	if !fileExists(cfgPath) {
		return "", fmt.Errorf("config file %q does not exist", cfgPath)
	}
	return cfgPath, nil
}

func getDefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(home, ".romtext", "config"), nil
}
