package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// WatchDirs lists the directories whose changes can affect what
// ResolvePaths returns. For a glob that is the pattern's fixed base
// directory and every directory below it, so files added to new
// subdirectories are noticed.
func WatchDirs(path string) ([]string, error) {
	if !containsWildcards(path) {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing config path: %w", err)
		}
		if fi.IsDir() {
			return []string{path}, nil
		}
		return []string{filepath.Dir(path)}, nil
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(path))
	base = filepath.FromSlash(base)
	var dirs []string
	err := filepath.WalkDir(base, func(dir string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			dirs = append(dirs, dir)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan config directory %s: %w", base, err)
	}
	return dirs, nil
}

// ResolvePaths expands a config path into the files it names, sorted. A
// file is returned as is. A directory yields its .yaml, .yml, and .json
// entries. Anything containing glob metacharacters is expanded with
// doublestar, so "**" matches across directories.
func ResolvePaths(path string) ([]string, error) {
	if containsWildcards(path) {
		matches, err := doublestar.FilepathGlob(path)
		if err != nil {
			return nil, fmt.Errorf("invalid config pattern %s: %w", path, err)
		}
		files := slices.DeleteFunc(matches, func(match string) bool {
			return !isConfigFile(match)
		})
		if len(files) == 0 {
			return nil, fmt.Errorf("no config files match pattern: %s", path)
		}
		slices.Sort(files)
		return files, nil
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing config path: %w", err)
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && isConfigFile(entry.Name()) {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no yaml or json files found in directory: %s", path)
	}
	slices.Sort(files)
	return files, nil
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml", ".json":
		return true
	}
	return false
}

func containsWildcards(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
