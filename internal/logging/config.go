package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/courtside/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	// Command names the subcommand; it becomes part of the file name.
	Command string
	PID     int
	// Dir overrides the log directory; empty means {state_dir}/logs.
	Dir string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig creates a logging Config from the global configuration.
// debug=true forces the debug level.
func FromGlobalConfig(command string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", "info")
	cfg.MaxFiles = config.GetInt("logging_max_files", 10)
	if command != "" {
		cfg.Command = command
	}
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	}
	return cfg
}

// LogDir returns the directory where log files are written, falling back to
// {os.TempDir()}/courtside/logs when the state directory is not writable.
func LogDir(cfg Config) (string, error) {
	dir := cfg.Dir
	if dir == "" {
		if stateDir := config.Get("state_dir", ""); stateDir != "" {
			dir = filepath.Join(stateDir, "logs")
		}
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err == nil && writable(dir) {
			return dir, nil
		}
	}
	fallback := filepath.Join(os.TempDir(), "courtside", "logs")
	if err := os.MkdirAll(fallback, 0700); err != nil {
		return "", err
	}
	return fallback, nil
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
