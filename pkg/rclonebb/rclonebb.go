// Package rclonebb provides the public Go API for embedding rclonebb runs
// in other programs, for example a custom scheduler that wants the summary
// text back instead of an email.
//
//	client, err := rclonebb.New(rclonebb.Options{ConfigPath: "rclonebb.yaml"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := client.Run(ctx, rclonebb.RunOptions{Mode: "sync", DryRun: true})
package rclonebb

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/cek/rclonebb/internal/backup"
	"github.com/cek/rclonebb/internal/config"
	"github.com/cek/rclonebb/internal/notify"
)

// RunReport re-exports the engine's run report as the public result type.
type RunReport = backup.RunReport

// Options configures a client.
type Options struct {
	// ConfigPath is the path to the config file. Default: "rclonebb.yaml".
	// A missing file is not an error; built-in defaults apply.
	ConfigPath string

	// Logger receives operational log events. Default: discard.
	Logger *zerolog.Logger
}

// RunOptions configures one run.
type RunOptions struct {
	// Mode is the rclone operation: sync, check or cryptcheck.
	Mode string

	// DryRun makes no changes (effective in sync mode).
	DryRun bool
}

// Client executes backup runs from a resolved configuration.
type Client struct {
	settings config.Settings
	log      zerolog.Logger
}

// New resolves and validates configuration and returns a Client.
func New(opts Options) (*Client, error) {
	path := opts.ConfigPath
	if path == "" {
		path = "rclonebb.yaml"
	}

	file, err := config.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	settings := config.Resolve(file, config.Overrides{})
	if err := config.Validate(settings); err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Client{settings: settings, log: log}, nil
}

// Settings exposes the resolved configuration.
func (c *Client) Settings() config.Settings {
	return c.settings
}

// Run executes one backup run end to end and returns its report. The report
// is returned even when the run's notification step fails.
func (c *Client) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	mode, err := backup.ParseMode(opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid run options: %w", err)
	}

	s := c.settings
	eng := &backup.Engine{
		Runner: backup.ExecRunner{},
		Mailer: notify.NewMailer(notify.SMTPConfig{
			Host:     s.SMTP.Host,
			Port:     s.SMTP.Port,
			Sender:   s.SMTP.Sender,
			Password: s.SMTP.Password,
		}),
		Log: c.log,
	}

	return eng.Run(ctx, backup.Request{
		Mode:          mode,
		Binary:        s.RcloneBinary,
		LocalDir:      s.LocalDir,
		RemoteBucket:  s.RemoteBucket,
		Transfers:     s.Transfers,
		MinAge:        s.MinAge,
		ExcludeFrom:   s.ExcludeFrom,
		RcloneConfig:  s.RcloneConfig,
		DryRun:        opts.DryRun,
		CleanupRemote: s.CleanupRemote,
	}, backup.Options{
		LogDir:      s.LogDir,
		MaxLogFiles: s.MaxLogFiles,
		CompressLog: s.CompressLog,
		Email:       s.Email,
	})
}
