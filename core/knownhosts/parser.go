// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package knownhosts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/toeirei/devcheck/core/model"
)

const hashedPrefix = "|1|"

// Parse splits known_hosts content into entries. Blank lines and comments are
// skipped, as are lines with fewer than two fields. A line with exactly two
// fields is kept with KeyType set to model.UnknownKeyType. A leading marker
// counts toward the field total but not toward the key type: "@revoked host"
// is an unknown entry for host, and a marker line needs host, type and key
// after the marker to carry a key type.
func Parse(content string) []model.KnownHostEntry {
	var entries []model.KnownHostEntry
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		var marker string
		if strings.HasPrefix(fields[0], "@") {
			marker = fields[0]
			fields = fields[1:]
		}

		entry := model.KnownHostEntry{
			HostToken: fields[0],
			KeyType:   model.UnknownKeyType,
			Marker:    marker,
			Hashed:    strings.HasPrefix(fields[0], hashedPrefix),
			Line:      i + 1,
		}
		if len(fields) >= 3 {
			entry.KeyType = fields[1]
		}
		entries = append(entries, entry)
	}
	return entries
}

// ParseFile reads and parses a known_hosts file. A missing file is not an
// error and yields no entries and no warning. Any other read failure is
// reported as a warning string.
func ParseFile(path string) ([]model.KnownHostEntry, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("known_hosts %s: %v", path, err)}
	}
	return Parse(string(data)), nil
}

// Tally counts entries per key type. Malformed lines are counted under
// model.UnknownKeyType.
func Tally(entries []model.KnownHostEntry) map[string]int {
	return lo.CountValuesBy(entries, func(e model.KnownHostEntry) string { return e.KeyType })
}

// Malformed returns the number of entries whose key type could not be read.
func Malformed(entries []model.KnownHostEntry) int {
	return lo.CountBy(entries, model.KnownHostEntry.Malformed)
}

// KeyTypes returns the distinct key types in lexicographic order.
func KeyTypes(entries []model.KnownHostEntry) []string {
	types := lo.Keys(Tally(entries))
	sort.Strings(types)
	return types
}
