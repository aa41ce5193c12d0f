// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for devcheck using Cobra.
// It wires configuration, logging and localization, and provides commands
// that delegate to the `core` packages. CLI code should remain thin: it
// renders reports and maps their outcome to an exit status.
package cli
