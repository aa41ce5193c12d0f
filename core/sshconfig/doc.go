// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
// Package sshconfig summarizes an OpenSSH client config as one block per
// `Host` line. It does not evaluate SSH's first-match precedence across
// blocks; each block only reports the settings written below it.
package sshconfig
