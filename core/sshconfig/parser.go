// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/toeirei/devcheck/core/model"
)

// Parse returns one HostBlock per `Host` line, in file order. Lines before the
// first Host line are ignored. Within a block a repeated key overwrites the
// earlier value.
func Parse(content string) []model.HostBlock {
	var blocks []model.HostBlock
	var current *model.HostBlock

	flush := func() {
		if current != nil {
			blocks = append(blocks, *current)
			current = nil
		}
	}

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value := splitDirective(line)
		switch strings.ToLower(key) {
		case "host":
			flush()
			patterns := strings.Fields(value)
			if len(patterns) == 0 {
				continue
			}
			current = &model.HostBlock{
				Patterns: patterns,
				Settings: make(map[string]string),
				Line:     i + 1,
			}
		case "match":
			flush()
		default:
			if current == nil {
				continue
			}
			current.Settings[strings.ToLower(key)] = value
		}
	}
	flush()
	return blocks
}

// splitDirective separates a config line into its keyword and the trimmed
// rest of the line. Both "Key value" and "Key=value" forms are accepted.
func splitDirective(line string) (key, value string) {
	idx := strings.IndexAny(line, " \t=")
	if idx < 0 {
		return line, ""
	}
	key = line[:idx]
	value = strings.TrimSpace(line[idx:])
	value = strings.TrimSpace(strings.TrimPrefix(value, "="))
	return key, value
}

// ParseFile reads and parses an SSH client config. A missing file yields no
// blocks and no warning; other read errors become a warning.
func ParseFile(path string) ([]model.HostBlock, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("ssh config %s: %v", path, err)}
	}
	return Parse(string(data)), nil
}

// Find returns the blocks whose patterns match host, in file order.
func Find(blocks []model.HostBlock, host string) []model.HostBlock {
	var out []model.HostBlock
	for _, b := range blocks {
		if b.Matches(host) {
			out = append(out, b)
		}
	}
	return out
}

// IdentityFiles returns the distinct IdentityFile values across blocks.
func IdentityFiles(blocks []model.HostBlock) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range blocks {
		if v, ok := b.Get("identityfile"); ok && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
