package backup

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Outcome is the observed result of one invocation. A non-zero exit code is
// a normal outcome, not an error: the orchestrator still reads and
// summarizes whatever log the tool produced.
type Outcome struct {
	Invocation Invocation
	ExitCode   int
	Output     string // combined stdout and stderr
}

// Runner executes invocations. The only error path is failing to launch the
// process at all (missing executable, permissions).
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*Outcome, error)
}

// ExecRunner runs invocations as real child processes.
type ExecRunner struct{}

// Run executes the invocation and waits for it. The tool writes its own log
// file as a side effect; only the short stdout/stderr remainder is captured
// here.
func (ExecRunner) Run(ctx context.Context, inv Invocation) (*Outcome, error) {
	if len(inv.Args) == 0 {
		return nil, errors.New("empty invocation")
	}

	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	out, err := cmd.CombinedOutput()

	outcome := &Outcome{Invocation: inv, Output: string(out)}
	if err == nil {
		return outcome, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		outcome.ExitCode = exitErr.ExitCode()
		return outcome, nil
	}

	return nil, fmt.Errorf("launching %s: %w", inv.Args[0], err)
}
