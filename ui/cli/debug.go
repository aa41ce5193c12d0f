// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toeirei/devcheck/config"
	"github.com/toeirei/devcheck/internal/i18n"
	"github.com/toeirei/devcheck/internal/logging"
)

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: i18n.T("cli.debug.short"),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--- DEVCHECK DEBUG ---")

			for _, system := range []bool{false, true} {
				path, err := config.GetConfigPath(system)
				if err != nil {
					continue
				}
				state := "absent"
				if _, err := os.Stat(path); err == nil {
					state = "present"
				}
				fmt.Fprintf(out, "Config candidate: %s (%s)\n", path, state)
			}

			fmt.Fprintln(out, "-- effective config --")
			if b, err := yaml.Marshal(appConfig); err != nil {
				logging.Errorf("could not marshal config: %v", err)
			} else {
				fmt.Fprint(out, string(b))
			}

			fmt.Fprintln(out, "-- flags --")
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				fmt.Fprintf(out, "%s = %s\n", f.Name, f.Value.String())
			})

			fmt.Fprintln(out, "-- environment (DEVCHECK_*, SSH_AUTH_SOCK) --")
			for _, e := range os.Environ() {
				if strings.HasPrefix(e, "DEVCHECK_") || strings.HasPrefix(e, "SSH_AUTH_SOCK=") {
					fmt.Fprintln(out, e)
				}
			}

			fmt.Fprintf(out, "Language: %s (available: %s)\n", i18n.GetLang(), strings.Join(i18n.AvailableLocales(), ", "))
			fmt.Fprintf(out, "Version: %s\n", compositeVersion())
			fmt.Fprintln(out, "--- END DEBUG ---")
		},
	}
}
