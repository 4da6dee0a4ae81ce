package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cek/rclonebb/internal/archive"
	"github.com/cek/rclonebb/internal/notify"
	"github.com/cek/rclonebb/internal/rclonelog"
	"github.com/cek/rclonebb/internal/report"
	"github.com/cek/rclonebb/internal/retention"
)

// StepError associates a recoverable failure with the orchestration step it
// happened in. Steps never abort the run; their errors accumulate and end up
// in the summary text.
type StepError struct {
	Step string
	Err  error
}

func (e StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e StepError) Unwrap() error {
	return e.Err
}

// Notifier delivers the finished summary. Satisfied by *notify.Mailer.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Options carries the post-run behavior around one request: where logs live,
// how many to keep, whether to gzip, and who to tell.
type Options struct {
	LogDir      string
	MaxLogFiles int // <= 0 disables retention
	CompressLog bool
	Email       string // empty skips notification entirely
}

// RunReport is the engine's account of one completed run.
type RunReport struct {
	RunID      string
	Summary    string
	LogFile    string
	Attachment string
	ExitCode   int
	CleanupRan bool
	Notified   bool
	Exceptions []string
}

// Engine wires the run pipeline together. All fields must be set.
type Engine struct {
	Runner Runner
	Mailer Notifier
	Log    zerolog.Logger

	// Now is the clock; tests pin it. Nil means time.Now.
	Now func() time.Time
}

// Run executes one backup run end to end: build commands, run the primary
// transfer, conditionally run cleanup, digest the log, render the summary,
// compress, prune retention, notify. Recoverable failures downgrade to
// summary annotations; only request validation and notification delivery can
// fail the run.
func (e *Engine) Run(ctx context.Context, req Request, opts Options) (*RunReport, error) {
	now := e.Now
	if now == nil {
		now = time.Now
	}

	runID := uuid.NewString()
	log := e.Log.With().Str("run_id", runID).Str("mode", string(req.Mode)).Logger()

	var exceptions []string
	fail := func(step string, err error) {
		se := StepError{Step: step, Err: err}
		log.Error().Err(err).Str("step", step).Msg("step failed")
		exceptions = append(exceptions, se.Error())
	}

	start := now()
	logFile := filepath.Join(opts.LogDir, fmt.Sprintf("%s%s.txt", retention.LogPrefix, start.Format("20060102_150405")))

	if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
		fail("creating log directory", err)
	}

	primary, cleanup, err := BuildCommands(req, logFile)
	if err != nil {
		return nil, err
	}

	rep := &RunReport{RunID: runID, LogFile: logFile}

	log.Info().Str("log_file", logFile).Msg("starting rclone")
	outcome, err := e.Runner.Run(ctx, primary)
	if err != nil {
		fail("running rclone", err)
	} else {
		rep.ExitCode = outcome.ExitCode
		log.Info().Int("exit_code", outcome.ExitCode).Msg("rclone finished")
	}

	cleanupNote := ""
	var cleanupCmd string
	switch {
	case cleanup == nil:
		// No cleanup configured; nothing to report.
	case outcome == nil:
		cleanupNote = "primary run failed to launch"
	case outcome.ExitCode != 0:
		cleanupNote = fmt.Sprintf("primary exit code %d", outcome.ExitCode)
	default:
		log.Info().Str("remote", req.CleanupRemote).Msg("starting cleanup")
		cleanupOutcome, cleanupErr := e.Runner.Run(ctx, *cleanup)
		if cleanupErr != nil {
			fail("running cleanup", cleanupErr)
			cleanupNote = "cleanup failed to launch"
		} else {
			rep.CleanupRan = true
			cleanupCmd = cleanup.String()
			log.Info().Int("exit_code", cleanupOutcome.ExitCode).Msg("cleanup finished")
		}
	}

	end := now()

	stream, err := rclonelog.Read(logFile)
	if err != nil {
		fail("reading log file", err)
	}
	digest := rclonelog.Summarize(stream)

	rep.Attachment = logFile
	if opts.CompressLog {
		if gz, err := archive.CompressLog(logFile); err != nil {
			fail("compressing log", err)
		} else {
			rep.Attachment = gz
		}
	}

	pruned := retention.Prune(opts.LogDir, opts.MaxLogFiles)
	for _, err := range pruned.Errors {
		fail("pruning log directory", err)
	}
	if len(pruned.Removed) > 0 {
		log.Info().Int("removed", len(pruned.Removed)).Msg("pruned old logs")
	}

	var notes []rclonelog.ParseNote
	if stream != nil {
		notes = stream.Notes
	}

	rep.Exceptions = exceptions
	rep.Summary = report.Render(report.Input{
		RunID:       runID,
		Mode:        string(req.Mode),
		Start:       start,
		End:         end,
		Primary:     primary.String(),
		Cleanup:     cleanupCmd,
		CleanupNote: cleanupNote,
		Digest:      digest,
		ParseNotes:  notes,
		LogEmpty:    stream.Empty(),
		Exceptions:  exceptions,
	})

	if opts.Email == "" {
		log.Info().Msg("no recipient configured, skipping notification")
		return rep, nil
	}

	msg := notify.Message{
		To:      opts.Email,
		Subject: fmt.Sprintf("rclonebb %s summary - %s", req.Mode, now().Format("2006-01-02 15:04:05")),
		Body:    rep.Summary,
	}
	if _, err := os.Stat(rep.Attachment); err == nil {
		msg.AttachmentPath = rep.Attachment
	}

	if err := e.Mailer.Send(ctx, msg); err != nil {
		return rep, fmt.Errorf("sending notification: %w", err)
	}
	rep.Notified = true
	log.Info().Str("to", opts.Email).Msg("summary sent")

	return rep, nil
}
