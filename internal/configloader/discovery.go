package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for one invocation.
// Missing files are empty strings.
type ConfigPaths struct {
	// System is the machine-wide file, e.g. /etc/gomdtask/config.yaml.
	System string

	// User is the per-user file, e.g. ~/.config/gomdtask/config.yaml.
	User string

	// Project is the nearest .gomdtask.{yml,yaml,toml} above the working
	// directory.
	Project string

	// Shadowed lists project files in the same directory as Project that
	// lost to it by name preference.
	Shadowed []string

	// Explicit is the file named by --config.
	Explicit string
}

// projectConfigFiles are searched in order of preference.
//
//nolint:gochecknoglobals // read-only lookup table
var projectConfigFiles = []string{
	".gomdtask.yml",
	".gomdtask.yaml",
	".gomdtask.toml",
	"gomdtask.yml",
	"gomdtask.yaml",
	"gomdtask.toml",
}

//nolint:gochecknoglobals // read-only lookup table
var dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

//nolint:gochecknoglobals // read-only lookup table
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files.
// lookup resolves XDG_CONFIG_HOME; nil means os.LookupEnv.
func DiscoverPaths(ctx context.Context, workDir string, lookup LookupFunc) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	paths := &ConfigPaths{
		System: findConfigInDir(systemConfigDir(lookup)),
		User:   findConfigInDir(userConfigDir(lookup)),
	}

	project, shadowed, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project
	paths.Shadowed = shadowed

	return paths, nil
}

func systemConfigDir(lookup LookupFunc) string {
	if runtime.GOOS == "windows" {
		programData, ok := lookup("ProgramData")
		if !ok || programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "gomdtask")
	}
	return "/etc/gomdtask"
}

func userConfigDir(lookup LookupFunc) string {
	configHome, ok := lookup("XDG_CONFIG_HOME")
	if !ok || configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gomdtask")
}

func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range dirConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at a VCS root, the home directory or the filesystem root.
// The second result lists other config files in the winning directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, []string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", nil, fmt.Errorf("context cancelled: %w", err)
		}

		var found []string
		for _, name := range projectConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				found = append(found, path)
			}
		}
		if len(found) > 0 {
			return found[0], found[1:], nil
		}

		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
