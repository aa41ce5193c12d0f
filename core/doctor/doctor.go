// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

// Package doctor runs every check category and the SSH analysis and merges
// the results into one deterministic report.
package doctor

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/toeirei/devcheck/config"
	"github.com/toeirei/devcheck/core/checks"
	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/sshaudit"
	"github.com/toeirei/devcheck/internal/logging"
	"golang.org/x/sync/errgroup"
)

// CategoryOrder is the order categories appear in a report. Unknown
// categories sort last.
var CategoryOrder = []string{
	model.CategorySystem,
	model.CategorySSH,
	model.CategoryTools,
	model.CategoryAWS,
	model.CategoryGCP,
	model.CategoryDigitalOcean,
	model.CategoryAnsible,
	model.CategoryTerraform,
}

// Options configures a doctor run.
type Options struct {
	Config config.Config
	Runner checks.Runner
	Agent  checks.AgentLister
}

// Report is the outcome of a doctor run.
type Report struct {
	Checks  []model.Check   `json:"checks"`
	SSH     sshaudit.Report `json:"ssh"`
	Summary model.Summary   `json:"summary"`
}

type stage struct {
	name string
	run  func(ctx context.Context) []model.Check
}

// Run executes all stages concurrently. It only fails when ctx is done; every
// other problem is reported as a check row.
func Run(ctx context.Context, opts Options) (Report, error) {
	var rep Report
	cfg := opts.Config
	cloud := checks.CloudOptions{Runner: opts.Runner, Files: cfg.Files, Online: cfg.Online}

	stages := []stage{
		{"system", func(context.Context) []model.Check {
			return append(checks.Files(checks.SystemFiles(cfg)), checks.Hosts(cfg.Files.Hosts))
		}},
		{"ssh", func(context.Context) []model.Check {
			rep.SSH = sshaudit.AnalyzeDir(config.ExpandHome(cfg.SSH.Dir))
			rows := rep.SSH.Checks()
			if opts.Agent != nil {
				rows = append(rows, checks.Agent(opts.Agent)...)
			}
			return rows
		}},
		{"tools", func(ctx context.Context) []model.Check {
			return checks.Commands(ctx, opts.Runner, cfg.Tools)
		}},
		{"aws", func(ctx context.Context) []model.Check { return checks.AWS(ctx, cloud) }},
		{"gcp", func(ctx context.Context) []model.Check { return checks.GCP(ctx, cloud) }},
		{"digitalocean", func(ctx context.Context) []model.Check { return checks.DigitalOcean(ctx, cloud) }},
		{"ansible", func(context.Context) []model.Check { return checks.Files(checks.AnsibleFiles(cfg)) }},
		{"terraform", func(context.Context) []model.Check { return checks.TerraformFiles(cfg) }},
	}

	results := make([][]model.Check, len(stages))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range stages {
		g.Go(func() error {
			start := time.Now()
			results[i] = s.run(gctx)
			logging.Debugf("stage %s: %d checks in %s", s.name, len(results[i]), time.Since(start))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}

	rep.Checks = SortByCategory(lo.Flatten(results))
	rep.Summary = model.Summarize(rep.Checks)
	return rep, nil
}

// SortByCategory orders checks by CategoryOrder, keeping the relative order
// of checks within a category.
func SortByCategory(in []model.Check) []model.Check {
	rank := make(map[string]int, len(CategoryOrder))
	for i, c := range CategoryOrder {
		rank[c] = i
	}
	rankOf := func(c string) int {
		if r, ok := rank[c]; ok {
			return r
		}
		return len(CategoryOrder)
	}
	out := append([]model.Check(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i].Category) < rankOf(out[j].Category)
	})
	return out
}

// Failed reports whether the report should make the process exit non-zero.
// With strict set, warnings count as failures too.
func (r Report) Failed(strict bool) bool {
	return r.Summary.Failed > 0 || (strict && r.Summary.Warnings > 0)
}
