package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig reads a json5 configuration file and, when present, merges a
// `<name>.local.<ext>` sibling over it so checked-in defaults can be
// overridden per machine. Returns os.ErrNotExist when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T

	base, err := readJSON5[T](name)
	found := err == nil
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if found {
		out = base
	}

	localPath := localVariant(name)
	override, err := readJSON5[T](localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		if mergeErr := mergo.Merge(&out, override, mergo.WithOverride); mergeErr != nil {
			return out, mergeErr
		}
		slog.Info("merging config with local overrides", "local", localPath)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig but it walks up from the cwd towards the
// filesystem root until a matching config file is found.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return zero, os.ErrNotExist
		}
		current = parent
	}
}

func readJSON5[T any](path string) (T, error) {
	var out T
	contents, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if len(contents) == 0 {
		return out, os.ErrNotExist
	}
	err = json5.Unmarshal(contents, &out)
	return out, err
}

// config.json5 -> config.local.json5
func localVariant(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}
