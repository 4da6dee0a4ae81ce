// Package retention prunes old run logs from the log directory.
package retention

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LogPrefix is the naming convention for run log files. Only files carrying
// this prefix are ever considered for deletion.
const LogPrefix = "rclone_log_"

// Result reports what a pruning pass did. Deletion failures are collected,
// never returned as a hard error, so the caller can fold them into the run
// summary and continue.
type Result struct {
	Removed []string
	Errors  []error
}

type logFile struct {
	path    string
	modTime time.Time
}

// Prune deletes run logs oldest-first until at most max remain. max <= 0
// disables retention entirely.
func Prune(dir string, max int) Result {
	var res Result
	if max <= 0 {
		return res
	}

	files, err := listLogFiles(dir)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	excess := len(files) - max
	for i := 0; i < excess; i++ {
		if err := os.Remove(files[i].path); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("removing %s: %w", files[i].path, err))
			continue
		}
		res.Removed = append(res.Removed, files[i].path)
	}

	return res
}

func listLogFiles(dir string) ([]logFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing log directory: %w", err)
	}

	var files []logFile
	for _, e := range entries {
		if e.IsDir() || len(e.Name()) < len(LogPrefix) || e.Name()[:len(LogPrefix)] != LogPrefix {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // deleted between list and stat
		}
		files = append(files, logFile{
			path:    filepath.Join(dir, e.Name()),
			modTime: info.ModTime(),
		})
	}
	return files, nil
}
