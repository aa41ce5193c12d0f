// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for devcheck.
//
// Usage:
//
//	go run . [flags]
//	./devcheck [command] [flags]
//
// Without a command all checks run. See --help for options.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/toeirei/devcheck/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrChecksFailed) {
			fmt.Fprintf(os.Stderr, "devcheck: %v\n", err)
		}
		os.Exit(1)
	}
}
