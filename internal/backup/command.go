package backup

import (
	"fmt"
	"strconv"
	"strings"
)

// Invocation is one concrete rclone command: an argument vector plus the log
// file the process writes to. Invocations are argument vectors end to end;
// nothing here ever passes through a shell.
type Invocation struct {
	Args    []string // Args[0] is the executable
	LogFile string
}

// String renders the command line for display in the summary.
func (inv Invocation) String() string {
	return strings.Join(inv.Args, " ")
}

// BuildCommands derives the primary invocation and, when a cleanup remote is
// configured, the cleanup invocation template from a request. The cleanup
// invocation appends to the primary run's log file so both passes land in
// one stream. Whether cleanup actually executes is decided later, from the
// primary exit code.
func BuildCommands(req Request, logFile string) (Invocation, *Invocation, error) {
	if _, err := ParseMode(string(req.Mode)); err != nil {
		return Invocation{}, nil, err
	}

	binary := req.Binary
	if binary == "" {
		binary = "rclone"
	}

	// Fixed flags guarantee deterministic, machine-parsable output:
	// untruncated stats, JSON log lines, hard-delete on the remote, fast
	// listing, symlink preservation.
	args := []string{
		binary, string(req.Mode),
		"--stats-file-name-length", "0",
		"--transfers", strconv.Itoa(req.Transfers),
		"--log-level", "INFO",
		"--log-file", logFile,
		"--use-json-log",
		"--fast-list",
		"--links",
		"--b2-hard-delete",
		"--min-age", req.MinAge,
	}

	if req.DryRun {
		args = append(args, "--dry-run")
	}
	if req.RcloneConfig != "" {
		args = append(args, fmt.Sprintf("--config=%s", req.RcloneConfig))
	}
	if req.ExcludeFrom != "" {
		args = append(args, fmt.Sprintf("--exclude-from=%s", req.ExcludeFrom))
	}

	args = append(args, req.LocalDir, req.RemoteBucket)
	primary := Invocation{Args: args, LogFile: logFile}

	if req.CleanupRemote == "" {
		return primary, nil, nil
	}

	cleanupArgs := []string{
		binary, "cleanup",
		"--log-level", "INFO",
		"--log-file", logFile,
		"--use-json-log",
	}
	if req.RcloneConfig != "" {
		cleanupArgs = append(cleanupArgs, fmt.Sprintf("--config=%s", req.RcloneConfig))
	}
	cleanupArgs = append(cleanupArgs, req.CleanupRemote)

	return primary, &Invocation{Args: cleanupArgs, LogFile: logFile}, nil
}
