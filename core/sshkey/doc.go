// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
// Package sshkey scans an SSH directory for key files, pairs private and
// public halves by directory and base name, infers each pair's algorithm and
// size, and assigns one security verdict per pair. Classification relies on
// file names, headers and key sizes only; it never proves key strength.
package sshkey
