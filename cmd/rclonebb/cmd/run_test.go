package cmd

import (
	"testing"

	"github.com/cek/rclonebb/internal/backup"
)

func TestFlagOverridesOnlyChangedFlags(t *testing.T) {
	c := newRunCmd(backup.ModeSync, "test")
	if err := c.Flags().Set("transfers", "16"); err != nil {
		t.Fatal(err)
	}
	if err := c.Flags().Set("exclude-from", ""); err != nil {
		t.Fatal(err)
	}

	o := flagOverrides(c)
	if o.Transfers == nil || *o.Transfers != 16 {
		t.Errorf("transfers override = %v, want 16", o.Transfers)
	}
	if o.ExcludeFrom == nil || *o.ExcludeFrom != "" {
		t.Error("explicitly cleared exclude-from should override as empty")
	}
	if o.LocalDir != nil {
		t.Errorf("untouched local-dir must not override, got %v", *o.LocalDir)
	}
	if o.CompressLog != nil {
		t.Error("untouched compress-log must not override")
	}
}

func TestRunSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"sync", "check", "cryptcheck", "init", "version"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
