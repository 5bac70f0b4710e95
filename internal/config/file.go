package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalFile is the per-project config file name.
const LocalFile = ".octocheck.yaml"

// DefaultFilePaths lists the YAML files consulted, in order. Only the first
// one that exists is read.
func DefaultFilePaths() []string {
	paths := []string{LocalFile}
	configHome, err := os.UserConfigDir()
	if err == nil && configHome != "" && configHome != "/" {
		paths = append(paths, filepath.Join(configHome, "octocheck", "config.yaml"))
	}
	return paths
}

// fileValues maps option keys to raw values from a YAML file.
type fileValues map[string]any

// loadFile reads the first existing file in paths. It returns the path read,
// or "" when none exists.
func loadFile(paths []string) (fileValues, string, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("read config file: %w", err)
		}
		values := fileValues{}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, "", fmt.Errorf("parse config file %s: %w", path, err)
		}
		return values, path, nil
	}
	return nil, "", nil
}

// str renders a scalar YAML value as a string. Numbers are common for
// app_id.
func (v fileValues) str(key string) (string, bool) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return "", false
	}
	switch t := raw.(type) {
	case string:
		return t, t != ""
	case []any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}

func (v fileValues) list(key string) ([]string, bool) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return nil, false
	}
	switch t := raw.(type) {
	case string:
		items := splitList(t)
		return items, len(items) > 0
	case []any:
		var items []string
		for _, item := range t {
			if item == nil {
				continue
			}
			if s := fmt.Sprint(item); s != "" {
				items = append(items, s)
			}
		}
		return items, len(items) > 0
	default:
		return []string{fmt.Sprint(t)}, true
	}
}
