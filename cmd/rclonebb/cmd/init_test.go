package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/cek/rclonebb/internal/config"
)

func TestInitTemplateIsValidConfig(t *testing.T) {
	var f config.File
	if err := yaml.Unmarshal([]byte(initTemplate), &f); err != nil {
		t.Fatalf("init template does not parse: %v", err)
	}

	settings := config.Resolve(&f, config.Overrides{})
	if err := config.Validate(settings); err != nil {
		t.Errorf("init template does not validate: %v", err)
	}
	if settings.LocalDir != "/mnt/data" {
		t.Errorf("local_dir = %q", settings.LocalDir)
	}
	if settings.MaxLogFiles != 120 {
		t.Errorf("max_log_files = %d", settings.MaxLogFiles)
	}
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rclonebb.yaml")
	if err := os.WriteFile(path, []byte("local_dir: /elsewhere\n"), 0644); err != nil {
		t.Fatal(err)
	}

	oldPath, oldForce := configPath, initForce
	defer func() { configPath, initForce = oldPath, oldForce }()
	configPath = path
	initForce = false

	if err := initCmd.RunE(initCmd, nil); err == nil {
		t.Fatal("init must refuse to overwrite without --force")
	}

	initForce = true
	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != initTemplate {
		t.Error("init --force should write the template")
	}
}
