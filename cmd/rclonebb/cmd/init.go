package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default rclonebb.yaml scaffold.
const initTemplate = `# rclonebb configuration
# Precedence: built-in defaults < this file < command-line flags.

# Directory to back up and the B2 bucket to back it up to.
local_dir: /mnt/data
remote_bucket: "secret:/"

# Simultaneous transfers passed through to rclone.
transfers: 8

# Skip files modified more recently than this (avoids syncing open files).
min_age: 30m

# rclone's own config and the exclude-pattern file.
# Set exclude_from to "" to disable excludes.
rclone_config: /mnt/data/rclonebb/rclone.conf
exclude_from: /mnt/data/rclonebb/rclone_excludes.txt

# Run 'rclone cleanup' against this remote after a clean run.
# cleanup_remote: "secret:"

# Where run logs go and how many to keep (0 = keep everything).
log_dir: /mnt/media/rclonebb/logs
max_log_files: 120
compress_log: true

# Summary email. Leave email empty (or omit it) to skip notification.
# email: me@example.com
smtp:
  host: smtp.example.com
  port: 587
  sender: me@example.com
  password: secret
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter rclonebb.yaml configuration",
	Long: `Creates an rclonebb.yaml file with a commented template covering every
setting. Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0600); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Edit the file to point at your directories and bucket")
		info("  2. Run 'rclonebb sync --dry-run' to preview a backup")
		info("  3. Schedule 'rclonebb sync' from cron")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
