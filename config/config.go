// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the devcheck configuration. Paths may start with "~/".
type Config struct {
	Language string        `mapstructure:"language" yaml:"language"`
	Online   bool          `mapstructure:"online" yaml:"online"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	SSH      SSHConfig     `mapstructure:"ssh" yaml:"ssh"`
	Files    FilesConfig   `mapstructure:"files" yaml:"files"`
	Tools    []string      `mapstructure:"tools" yaml:"tools"`
}

// SSHConfig locates the SSH directory to analyze.
type SSHConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// FilesConfig lists the files inspected by the file and cloud checks.
type FilesConfig struct {
	Hosts               string `mapstructure:"hosts" yaml:"hosts"`
	AWSCredentials      string `mapstructure:"aws_credentials" yaml:"aws_credentials"`
	AWSConfig           string `mapstructure:"aws_config" yaml:"aws_config"`
	GCPCredentials      string `mapstructure:"gcp_credentials" yaml:"gcp_credentials"`
	DoctlConfig         string `mapstructure:"doctl_config" yaml:"doctl_config"`
	AnsibleConfig       string `mapstructure:"ansible_config" yaml:"ansible_config"`
	AnsibleGlobalConfig string `mapstructure:"ansible_global_config" yaml:"ansible_global_config"`
	TerraformRC         string `mapstructure:"terraformrc" yaml:"terraformrc"`
}

// DefaultTools are the command line tools checked when none are configured.
var DefaultTools = []string{"git", "docker", "ssh", "ansible", "terraform", "aws", "gcloud", "doctl"}

// Defaults returns the default settings keyed the way viper expects them.
func Defaults() map[string]any {
	return map[string]any{
		"language":                    "en",
		"online":                      false,
		"timeout":                     "10s",
		"ssh.dir":                     "~/.ssh",
		"files.hosts":                 "/etc/hosts",
		"files.aws_credentials":       "~/.aws/credentials",
		"files.aws_config":            "~/.aws/config",
		"files.gcp_credentials":       "~/.config/gcloud/application_default_credentials.json",
		"files.doctl_config":          "~/.config/doctl/config.yaml",
		"files.ansible_config":        "~/.ansible.cfg",
		"files.ansible_global_config": "/etc/ansible/ansible.cfg",
		"files.terraformrc":           "~/.terraformrc",
		"tools":                       DefaultTools,
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "devcheck")
		default: // Linux, macOS, etc.
			configDir = "/etc/devcheck"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "devcheck")
	}

	return filepath.Join(configDir, "devcheck.yaml"), nil
}

// LoadConfig builds a T from defaults, the first devcheck.yaml found (or
// explicitPath), DEVCHECK_* environment variables and the flags of cmd, in
// increasing precedence. When no file was found the decoded value is still
// returned together with a viper.ConfigFileNotFoundError.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("devcheck")
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("devcheck")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

// WriteConfigFile writes c as YAML to the user or system config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

// ExpandHome replaces a leading "~/" in path with the user's home directory.
func ExpandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok && path != "~" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
