// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

// Package checks holds the individual environment checks: file presence,
// command line tools and their versions, cloud provider credentials, custom
// /etc/hosts entries and the SSH agent. Every check returns model.Check rows
// and never fails the run; problems become ERROR, MISSING or WARNING rows.
package checks
