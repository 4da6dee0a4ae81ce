package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cek/rclonebb/internal/config"
)

// loadConfigFile reads the config file layer. A missing file is not an
// error; it simply means defaults and flags carry the run.
func loadConfigFile() (*config.File, error) {
	f, err := config.Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}
