// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
// Package knownhosts turns the content of an OpenSSH known_hosts file into an
// ordered list of host/key-type records. Parsing is field based and never
// fails: lines that do not fit the expected layout are kept with an unknown
// key type so callers can report them.
package knownhosts
