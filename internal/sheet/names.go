package sheet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadNames reads the character names sidecar for a sheet: a text file
// with the same base name and a .txt extension, one name per line.
// A missing sidecar returns nil without error.
func LoadNames(sheetPath string) ([]string, error) {
	sidecar := strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath)) + ".txt"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

// SanitizeName converts a character name into a filename-safe token:
// spaces become underscores and anything outside [A-Za-z0-9_-] is
// dropped.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
