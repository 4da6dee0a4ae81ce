// Package backup orchestrates one unattended rclone backup run: it builds
// the rclone invocations, supervises the subprocesses, digests the JSON log
// they produce, and folds everything into a single deliverable summary.
package backup

import "fmt"

// Mode selects the rclone operation performed by a run.
type Mode string

const (
	ModeSync       Mode = "sync"
	ModeCheck      Mode = "check"
	ModeCryptcheck Mode = "cryptcheck"
)

// ParseMode validates a mode string. Anything outside the three supported
// operations is rejected before a subprocess is ever started.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSync, ModeCheck, ModeCryptcheck:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (must be sync, check or cryptcheck)", s)
}

// Request describes one backup run. It is constructed once by configuration
// resolution and never mutated afterwards.
type Request struct {
	Mode          Mode
	Binary        string // rclone executable, usually just "rclone"
	LocalDir      string
	RemoteBucket  string
	Transfers     int
	MinAge        string // rclone duration string, passed through opaquely
	ExcludeFrom   string // empty = no exclude file
	RcloneConfig  string // empty = rclone's own default config
	DryRun        bool
	CleanupRemote string // empty = no cleanup pass
}
