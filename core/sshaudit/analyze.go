// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package sshaudit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/toeirei/devcheck/core/knownhosts"
	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/sshconfig"
	"github.com/toeirei/devcheck/core/sshkey"
)

// Input carries the raw material of one analysis run.
type Input struct {
	KnownHosts string
	Config     string
	KeyRoot    string
}

// Report is the display-independent result of an SSH analysis.
type Report struct {
	KeyRoot    string                 `json:"key_root"`
	KnownHosts []model.KnownHostEntry `json:"known_hosts"`
	HostBlocks []model.HostBlock      `json:"host_blocks"`
	KeyGroups  []model.KeyPairGroup   `json:"key_groups"`

	KnownHostTypes      map[string]int          `json:"known_host_types"`
	MalformedKnownHosts int                     `json:"malformed_known_hosts"`
	ByVerdict           map[model.Verdict]int   `json:"by_verdict"`
	ByAlgorithm         map[model.Algorithm]int `json:"by_algorithm"`

	// Warnings lists per-item problems in the order known_hosts, config, key scan.
	Warnings []string `json:"warnings"`
	// Fatal is set when the key scan root itself could not be scanned.
	Fatal string `json:"fatal,omitempty"`
}

// Analyze parses the given known_hosts and config content and scans KeyRoot.
func Analyze(in Input) Report {
	return assemble(
		knownhosts.Parse(in.KnownHosts), nil,
		sshconfig.Parse(in.Config), nil,
		in.KeyRoot,
	)
}

// AnalyzeDir analyzes an SSH directory: it reads known_hosts and config from
// dir and scans dir for keys. Missing files are treated as empty.
func AnalyzeDir(dir string) Report {
	entries, khWarnings := knownhosts.ParseFile(filepath.Join(dir, "known_hosts"))
	blocks, cfgWarnings := sshconfig.ParseFile(filepath.Join(dir, "config"))
	cfgWarnings = append(cfgWarnings, missingIdentityFiles(blocks)...)
	return assemble(entries, khWarnings, blocks, cfgWarnings, dir)
}

func assemble(entries []model.KnownHostEntry, khWarnings []string, blocks []model.HostBlock, cfgWarnings []string, root string) Report {
	r := Report{
		KeyRoot:             root,
		KnownHosts:          entries,
		HostBlocks:          blocks,
		KnownHostTypes:      knownhosts.Tally(entries),
		MalformedKnownHosts: knownhosts.Malformed(entries),
	}
	r.Warnings = append(r.Warnings, khWarnings...)
	r.Warnings = append(r.Warnings, cfgWarnings...)

	groups, scanWarnings, err := sshkey.ScanAndGroup(root)
	r.Warnings = append(r.Warnings, scanWarnings...)
	if err != nil {
		r.Fatal = err.Error()
	}
	r.KeyGroups = groups

	r.ByVerdict = make(map[model.Verdict]int, len(model.Verdicts))
	for _, v := range model.Verdicts {
		r.ByVerdict[v] = 0
	}
	for v, n := range lo.CountValuesBy(groups, func(g model.KeyPairGroup) model.Verdict { return g.Verdict }) {
		r.ByVerdict[v] = n
	}
	r.ByAlgorithm = lo.CountValuesBy(groups, func(g model.KeyPairGroup) model.Algorithm { return g.Algorithm })
	return r
}

// Status is WARNING when any key pair needs attention or the scan failed,
// OK otherwise.
func (r Report) Status() model.Status {
	if r.Fatal != "" {
		return model.StatusWarning
	}
	if lo.SomeBy(r.KeyGroups, func(g model.KeyPairGroup) bool { return g.Verdict.NeedsAttention() }) {
		return model.StatusWarning
	}
	return model.StatusOK
}

// missingIdentityFiles reports IdentityFile paths that do not exist. Paths
// with ssh tokens such as %d are skipped since they cannot be resolved here.
func missingIdentityFiles(blocks []model.HostBlock) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	var out []string
	for _, p := range sshconfig.IdentityFiles(blocks) {
		if strings.Contains(p, "%") {
			continue
		}
		path := strings.Trim(p, `"`)
		if rest, ok := strings.CutPrefix(path, "~/"); ok {
			path = filepath.Join(home, rest)
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			out = append(out, fmt.Sprintf("IdentityFile %s does not exist", p))
		}
	}
	return out
}
