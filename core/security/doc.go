// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package security holds the Secret type used for credentials read from
// cloud tool configuration. A Secret never renders its content through fmt,
// JSON, text or YAML encoding, so report and debug output cannot leak it.
package security
