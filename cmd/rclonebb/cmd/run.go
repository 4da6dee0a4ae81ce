package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cek/rclonebb/internal/backup"
	"github.com/cek/rclonebb/internal/config"
	"github.com/cek/rclonebb/internal/notify"
)

// newRunCmd builds one of the three run subcommands. They share the same
// flag set and pipeline; only the rclone mode differs.
func newRunCmd(mode backup.Mode, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(mode),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(cmd, mode)
		},
	}

	f := c.Flags()
	f.String("local-dir", "", "local directory to back up")
	f.String("remote-bucket", "", "remote bucket to sync against")
	f.Int("transfers", 0, "number of simultaneous transfers")
	f.String("min-age", "", "minimum file age to include (avoids open files)")
	f.String("exclude-from", "", "file of exclude patterns (empty disables)")
	f.String("rclone-config", "", "path to the rclone configuration file")
	f.String("cleanup-remote", "", "remote to run 'rclone cleanup' against after a clean run")
	f.String("log-dir", "", "directory for run log files")
	f.Int("max-log-files", 0, "retained log file cap, 0 disables pruning")
	f.Bool("compress-log", false, "gzip the log before attaching it")
	f.String("email", "", "summary recipient (empty skips email)")
	f.Bool("dry-run", false, "make no changes (effective in sync mode)")

	return c
}

func runBackup(cmd *cobra.Command, mode backup.Mode) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	req := backup.Request{
		Mode:          mode,
		Binary:        settings.RcloneBinary,
		LocalDir:      settings.LocalDir,
		RemoteBucket:  settings.RemoteBucket,
		Transfers:     settings.Transfers,
		MinAge:        settings.MinAge,
		ExcludeFrom:   settings.ExcludeFrom,
		RcloneConfig:  settings.RcloneConfig,
		DryRun:        dryRun,
		CleanupRemote: settings.CleanupRemote,
	}

	eng := &backup.Engine{
		Runner: backup.ExecRunner{},
		Mailer: notify.NewMailer(notify.SMTPConfig{
			Host:     settings.SMTP.Host,
			Port:     settings.SMTP.Port,
			Sender:   settings.SMTP.Sender,
			Password: settings.SMTP.Password,
		}),
		Log: logger,
	}

	rep, err := eng.Run(cmd.Context(), req, backup.Options{
		LogDir:      settings.LogDir,
		MaxLogFiles: settings.MaxLogFiles,
		CompressLog: settings.CompressLog,
		Email:       settings.Email,
	})
	if rep != nil {
		info("%s", rep.Summary)
	}
	if err != nil {
		return err
	}

	if rep.Notified {
		info("Summary sent to %s.", settings.Email)
	} else {
		detail("No recipient configured; summary not emailed.")
	}
	if len(rep.Exceptions) > 0 {
		info("Run completed with %d exception(s); see summary above.", len(rep.Exceptions))
	}
	return nil
}

// resolveSettings layers defaults, the optional config file, and any flags
// the user set explicitly, then validates the result.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	file, err := loadConfigFile()
	if err != nil {
		return config.Settings{}, err
	}

	settings := config.Resolve(file, flagOverrides(cmd))
	if err := config.Validate(settings); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// flagOverrides captures only flags the user changed, so unset flags never
// shadow config-file values.
func flagOverrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	f := cmd.Flags()

	str := func(name string, dst **string) {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			*dst = &v
		}
	}
	num := func(name string, dst **int) {
		if f.Changed(name) {
			v, _ := f.GetInt(name)
			*dst = &v
		}
	}

	str("local-dir", &o.LocalDir)
	str("remote-bucket", &o.RemoteBucket)
	num("transfers", &o.Transfers)
	str("min-age", &o.MinAge)
	str("exclude-from", &o.ExcludeFrom)
	str("rclone-config", &o.RcloneConfig)
	str("cleanup-remote", &o.CleanupRemote)
	str("log-dir", &o.LogDir)
	num("max-log-files", &o.MaxLogFiles)
	str("email", &o.Email)

	if f.Changed("compress-log") {
		v, _ := f.GetBool("compress-log")
		o.CompressLog = &v
	}

	return o
}

func init() {
	rootCmd.AddCommand(
		newRunCmd(backup.ModeSync, "Sync the local directory to the remote bucket"),
		newRunCmd(backup.ModeCheck, "Verify the remote matches the local directory"),
		newRunCmd(backup.ModeCryptcheck, "Verify an encrypted remote against the local directory"),
	)
}
