package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hiddenist/chress-sprites/internal/config"
)

// ErrNotFound indicates that no sprites workspace could be discovered.
var ErrNotFound = errors.New("run `chress-sprites init` to create a workspace in this directory")

// Workspace encapsulates a sprites-enabled directory discovered on disk.
type Workspace struct {
	Root       string
	ConfigPath string
	Config     config.Config

	// Paths resolved against Root from the loaded config.
	VenvPath   string
	ScriptPath string
}

// Discover walks upward from start until it finds a workspace marker:
// either a .sprites directory or the extraction script at its default path.
func Discover(start string) (*Workspace, error) {
	root, err := locateRoot(start)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Load constructs a Workspace from a known root directory.
func Load(root string) (*Workspace, error) {
	cfgPath := filepath.Join(root, ".sprites", "config.toml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Root:       root,
		ConfigPath: cfgPath,
		Config:     cfg,
		VenvPath:   resolve(root, cfg.VenvDir),
		ScriptPath: resolve(root, cfg.Script),
	}, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func locateRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if isDir(filepath.Join(cur, ".sprites")) || isFile(filepath.Join(cur, "src", "extract_sprites.py")) {
			return cur, nil
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return "", ErrNotFound
}

// EnsureConfig ensures a baseline config file exists, writing when missing.
func EnsureConfig(root string) (config.Config, error) {
	path := filepath.Join(root, ".sprites", "config.toml")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		if err := config.Save(path, cfg); err != nil {
			return config.Config{}, err
		}
		return cfg, nil
	}
	return config.Load(path)
}

// ConfigExists reports whether the workspace config file is already on disk.
func ConfigExists(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".sprites", "config.toml"))
	return err == nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
