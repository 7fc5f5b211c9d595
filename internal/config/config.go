package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the user editable settings stored in .sprites/config.toml.
type Config struct {
	Python  string       `toml:"python"`
	VenvDir string       `toml:"venv_dir"`
	Script  string       `toml:"script"`
	Imaging ImagingBlock `toml:"imaging"`
	Extract ExtractBlock `toml:"extract"`
}

// ImagingBlock names the Python imaging dependency and how to detect it.
type ImagingBlock struct {
	Package     string `toml:"package"`
	ProbeModule string `toml:"probe_module"`
}

// ExtractBlock governs native extraction output.
type ExtractBlock struct {
	OutputDir string `toml:"output_dir"`
	Optipng   string `toml:"optipng"`
}

// Optipng modes.
const (
	OptipngAuto    = "auto"
	OptipngOff     = "off"
	OptipngRequire = "require"
)

var (
	// ErrMissingPython indicates the config omitted the base interpreter.
	ErrMissingPython = errors.New("config.python must be set")
	// ErrInvalidOptipngMode indicates the optipng setting is not recognized.
	ErrInvalidOptipngMode = errors.New("config.extract.optipng must be auto, off, or require")
)

// Default returns a baseline configuration for a workspace.
func Default() Config {
	cfg := Config{Python: "python3"}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.VenvDir == "" {
		c.VenvDir = "venv"
	}
	if c.Script == "" {
		c.Script = filepath.Join("src", "extract_sprites.py")
	}
	c.Imaging.applyDefaults()
	c.Extract.applyDefaults()
}

func (i *ImagingBlock) applyDefaults() {
	if i.Package == "" {
		i.Package = "Pillow"
	}
	if i.ProbeModule == "" {
		i.ProbeModule = "PIL"
	}
}

func (e *ExtractBlock) applyDefaults() {
	if e.OutputDir == "" {
		e.OutputDir = "extracted_sprites"
	}
	if e.Optipng == "" {
		e.Optipng = OptipngAuto
	} else {
		e.Optipng = strings.ToLower(e.Optipng)
	}
}

// Validate ensures the configuration can guide the bootstrapper.
func (c Config) Validate() error {
	if c.Python == "" {
		return ErrMissingPython
	}
	switch c.Extract.Optipng {
	case OptipngAuto, OptipngOff, OptipngRequire:
	default:
		return ErrInvalidOptipngMode
	}
	return nil
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
