// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/toeirei/devcheck/config"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only steers os.UserConfigDir on linux")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Chdir(t.TempDir())
	return tmp
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	withConfigHome(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		t.Fatalf("expected ConfigFileNotFoundError, got: %T %v", err, err)
	}
	if got.Language != "en" {
		t.Fatalf("expected default language en, got %q", got.Language)
	}
	if got.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", got.Timeout)
	}
	if got.SSH.Dir != "~/.ssh" {
		t.Fatalf("unexpected ssh dir %q", got.SSH.Dir)
	}
	if got.Files.Hosts != "/etc/hosts" {
		t.Fatalf("unexpected hosts path %q", got.Files.Hosts)
	}
	if len(got.Tools) != len(cfg.DefaultTools) {
		t.Fatalf("expected default tools, got %v", got.Tools)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	withConfigHome(t)
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "language: de\ntimeout: 3s\nssh:\n  dir: /srv/ssh\ntools:\n  - git\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got.Language != "de" || got.Timeout != 3*time.Second || got.SSH.Dir != "/srv/ssh" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if len(got.Tools) != 1 || got.Tools[0] != "git" {
		t.Fatalf("expected tools [git], got %v", got.Tools)
	}
	if got.Files.DoctlConfig == "" {
		t.Fatalf("defaults should fill keys missing from the file")
	}
}

func TestLoadConfig_EnvVarParsing(t *testing.T) {
	withConfigHome(t)
	t.Setenv("DEVCHECK_LANGUAGE", "de")
	t.Setenv("DEVCHECK_SSH_DIR", "/env/ssh")

	got, _ := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if got.Language != "de" {
		t.Fatalf("expected de from env, got %q", got.Language)
	}
	if got.SSH.Dir != "/env/ssh" {
		t.Fatalf("expected /env/ssh from env, got %q", got.SSH.Dir)
	}
}

func TestLoadConfig_FlagBindingOverridesEnv(t *testing.T) {
	withConfigHome(t)
	t.Setenv("DEVCHECK_LANGUAGE", "fr")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "", "language")
	cmd.Flags().Bool("online", false, "online")
	if err := cmd.Flags().Set("language", "de"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := cmd.Flags().Set("online", "true"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if got.Language != "de" {
		t.Fatalf("expected de from flag (not fr from env), got %q", got.Language)
	}
	if !got.Online {
		t.Fatalf("expected online from flag")
	}
}

func TestLoadConfig_BrokenConfig_ReturnsParseError(t *testing.T) {
	withConfigHome(t)
	file := filepath.Join(t.TempDir(), "broken.yaml")
	content := "language: en\n" + string([]byte{0x01}) + "\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write broken file: %v", err)
	}

	_, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err == nil {
		t.Fatalf("expected parse error for broken yaml, got nil")
	}
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		t.Fatalf("parse error must not look like a missing file: %v", err)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	home := withConfigHome(t)

	c := cfg.Config{Language: "de", Timeout: 5 * time.Second, Tools: []string{"git", "docker"}}
	c.SSH.Dir = "/data/ssh"
	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	if want := filepath.Join(home, "devcheck", "devcheck.yaml"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %o", info.Mode().Perm())
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig after write failed: %v", err)
	}
	if got.Language != "de" || got.SSH.Dir != "/data/ssh" || got.Timeout != 5*time.Second {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetConfigPath(t *testing.T) {
	home := withConfigHome(t)

	user, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath(false) failed: %v", err)
	}
	if want := filepath.Join(home, "devcheck", "devcheck.yaml"); user != want {
		t.Fatalf("expected %s, got %s", want, user)
	}
	system, err := cfg.GetConfigPath(true)
	if err != nil {
		t.Fatalf("GetConfigPath(true) failed: %v", err)
	}
	if system != "/etc/devcheck/devcheck.yaml" {
		t.Fatalf("unexpected system path %s", system)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := cfg.ExpandHome("~/.ssh"); got != filepath.Join(home, ".ssh") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := cfg.ExpandHome("/etc/hosts"); got != "/etc/hosts" {
		t.Fatalf("absolute paths must be unchanged, got %q", got)
	}
	if got := cfg.ExpandHome("~user/x"); !strings.HasPrefix(got, "~user") {
		t.Fatalf("~user paths must be unchanged, got %q", got)
	}
}
