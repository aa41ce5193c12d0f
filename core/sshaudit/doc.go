// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.
// Package sshaudit composes the known_hosts parser, the SSH config parser and
// the key scanner into a single Report. It adds no parsing logic of its own;
// it threads results and warnings through in a fixed order and derives the
// tallies the renderers need.
package sshaudit
