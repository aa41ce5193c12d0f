// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/devcheck/config"
	"github.com/toeirei/devcheck/core/checks"
	"github.com/toeirei/devcheck/core/doctor"
	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/sshaudit"
	"github.com/toeirei/devcheck/core/sshconfig"
	"github.com/toeirei/devcheck/internal/agent"
	"github.com/toeirei/devcheck/internal/i18n"
	"github.com/toeirei/devcheck/internal/logging"
)

const defaultTimeout = 10 * time.Second

type checkOptions struct {
	json   bool
	strict bool
}

// addCheckFlags registers the flags shared by the root command and `check`.
// `online` and `timeout` are read back through the loaded config.
func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	cmd.Flags().Bool("online", false, "Probe cloud provider connectivity through their CLIs")
	cmd.Flags().Duration("timeout", defaultTimeout, "Timeout for each external command")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Write the report as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero on warnings too")
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: i18n.T("cli.check.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
	addCheckFlags(cmd, opts)
	return cmd
}

// runner is swapped in tests.
var runner = func(timeout time.Duration) checks.Runner {
	return checks.ExecRunner{Timeout: timeout}
}

// agentLister is swapped in tests.
var agentLister checks.AgentLister = agent.List

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	rep, err := doctor.Run(cmd.Context(), doctor.Options{
		Config: appConfig,
		Runner: runner(appConfig.Timeout),
		Agent:  agentLister,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		if err := writeJSON(out, rep); err != nil {
			return err
		}
	} else {
		newRenderer(out).checks(rep.Checks, rep.Summary)
	}
	if rep.Failed(opts.strict) {
		return ErrChecksFailed
	}
	return nil
}

func newSSHCmd() *cobra.Command {
	var (
		dir    string
		host   string
		asJSON bool
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "ssh",
		Short: i18n.T("cli.ssh.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = appConfig.SSH.Dir
			}
			rep := sshaudit.AnalyzeDir(config.ExpandHome(dir))
			logging.Debugf("ssh analysis of %s: %d groups, %d warnings", rep.KeyRoot, len(rep.KeyGroups), len(rep.Warnings))
			if host != "" {
				rep.HostBlocks = sshconfig.Find(rep.HostBlocks, host)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, rep); err != nil {
					return err
				}
			} else {
				r := newRenderer(out)
				r.ssh(rep)
				if host != "" {
					r.hostBlocks(host, rep.HostBlocks)
				}
			}
			if rep.Fatal != "" || (strict && rep.Status() != model.StatusOK) {
				return ErrChecksFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "SSH directory to analyze (default from config, ~/.ssh)")
	cmd.Flags().StringVar(&host, "host", "", "Only keep the config host blocks that apply to this host")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any key pair needs attention")
	return cmd
}

func newInitConfigCmd() *cobra.Command {
	var system, force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: i18n.T("cli.init_config.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath(system)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(i18n.T("cli.init_config.exists", path))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("could not inspect %s: %w", path, err)
			}
			written, err := config.WriteConfigFile(&appConfig, system)
			if err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.init_config.written", written))
			return nil
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "Write the system-wide config instead of the user config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
