// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package sshaudit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/toeirei/devcheck/core/knownhosts"
	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/sshkey"
)

// Checks converts the report into rows of the SSH category.
func (r Report) Checks() []model.Check {
	var out []model.Check
	add := func(item string, status model.Status, details string) {
		out = append(out, model.Check{Category: model.CategorySSH, Item: item, Status: status, Details: details})
	}

	if len(r.KnownHosts) == 0 {
		add("known_hosts", model.StatusInfo, "no entries")
	} else {
		add("known_hosts", model.StatusOK, fmt.Sprintf("%d entries (%s)", len(r.KnownHosts), formatTally(r.KnownHostTypes)))
	}
	if r.MalformedKnownHosts > 0 {
		add("known_hosts", model.StatusWarning, fmt.Sprintf("%d malformed lines", r.MalformedKnownHosts))
	}
	for _, kt := range knownhosts.KeyTypes(r.KnownHosts) {
		if w := sshkey.HostKeyWarning(kt); w != "" {
			add("known_hosts "+kt, model.StatusWarning, fmt.Sprintf("%d hosts: %s", r.KnownHostTypes[kt], w))
		}
	}

	if len(r.HostBlocks) == 0 {
		add("config", model.StatusInfo, "no host blocks")
	} else {
		patterns := lo.FlatMap(r.HostBlocks, func(b model.HostBlock, _ int) []string { return b.Patterns })
		add("config", model.StatusOK, fmt.Sprintf("%d host blocks: %s", len(r.HostBlocks), strings.Join(lo.Uniq(patterns), ", ")))
	}

	if r.Fatal != "" {
		add("key scan", model.StatusError, r.Fatal)
	} else {
		add("key pairs", r.Status(), fmt.Sprintf("%d groups (%s)", len(r.KeyGroups), r.verdictSummary()))
		for _, g := range r.KeyGroups {
			name := g.Name(r.KeyRoot)
			if g.Verdict.NeedsAttention() {
				add(name, model.StatusWarning, fmt.Sprintf("%s %s %s bits", g.Verdict, g.Algorithm, g.BitLength))
			}
			for _, n := range g.Notes {
				add(name, model.StatusInfo, n)
			}
		}
	}

	for _, w := range r.Warnings {
		add("scan", model.StatusWarning, w)
	}
	return out
}

func (r Report) verdictSummary() string {
	parts := make([]string, 0, len(model.Verdicts))
	for _, v := range model.Verdicts {
		parts = append(parts, fmt.Sprintf("%s %d", v, r.ByVerdict[v]))
	}
	return strings.Join(parts, ", ")
}

func formatTally(m map[string]int) string {
	keys := sortedKeys(m)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]int) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
