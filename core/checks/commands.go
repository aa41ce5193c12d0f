// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package checks

import (
	"context"
	"errors"

	"github.com/toeirei/devcheck/core/model"
)

// Tool describes how one command line tool is checked.
type Tool struct {
	Command     string
	Category    string
	Description string
	VersionArgs []string
}

// KnownTools maps command names to their check description. Commands not
// listed here are checked in the Tools category with --version.
var KnownTools = map[string]Tool{
	"git":       {Command: "git", Category: model.CategoryTools, Description: "Git", VersionArgs: []string{"--version"}},
	"docker":    {Command: "docker", Category: model.CategoryTools, Description: "Docker", VersionArgs: []string{"--version"}},
	"ssh":       {Command: "ssh", Category: model.CategorySSH, Description: "OpenSSH client", VersionArgs: []string{"-V"}},
	"ansible":   {Command: "ansible", Category: model.CategoryAnsible, Description: "Ansible", VersionArgs: []string{"--version"}},
	"terraform": {Command: "terraform", Category: model.CategoryTerraform, Description: "Terraform", VersionArgs: []string{"version"}},
	"aws":       {Command: "aws", Category: model.CategoryAWS, Description: "AWS CLI", VersionArgs: []string{"--version"}},
	"gcloud":    {Command: "gcloud", Category: model.CategoryGCP, Description: "gcloud CLI", VersionArgs: []string{"--version"}},
	"doctl":     {Command: "doctl", Category: model.CategoryDigitalOcean, Description: "doctl CLI", VersionArgs: []string{"version"}},
	"kubectl":   {Command: "kubectl", Category: model.CategoryTools, Description: "kubectl", VersionArgs: []string{"version", "--client"}},
}

// LookupTool returns the Tool for name, falling back to a generic entry.
func LookupTool(name string) Tool {
	if t, ok := KnownTools[name]; ok {
		return t
	}
	return Tool{Command: name, Category: model.CategoryTools, Description: name, VersionArgs: []string{"--version"}}
}

// Installed reports whether the tool's command is on PATH.
func Installed(r Runner, t Tool) (model.Check, bool) {
	c := model.Check{Category: t.Category, Item: t.Description + " (installed)"}
	path, err := r.LookPath(t.Command)
	if err != nil {
		c.Status = model.StatusMissing
		c.Details = "Command not found"
		return c, false
	}
	c.Status = model.StatusOK
	c.Details = "Path: " + path
	return c, true
}

// Command checks that the tool is installed and reports the first line of
// its version output. Some tools (ssh -V) print their version on stderr.
func Command(ctx context.Context, r Runner, t Tool) []model.Check {
	installed, ok := Installed(r, t)
	out := []model.Check{installed}
	if !ok {
		return out
	}

	c := model.Check{Category: t.Category, Item: t.Description + " (version)"}
	res, err := r.Run(ctx, t.Command, t.VersionArgs...)
	switch {
	case errors.Is(err, ErrTimeout):
		c.Status, c.Details = model.StatusError, "Command timeout"
	case err != nil:
		c.Status, c.Details = model.StatusError, err.Error()
	case res.ExitCode != 0:
		c.Status, c.Details = model.StatusError, failureDetails(res)
	default:
		version := firstLine(res.Stdout)
		if version == "" {
			version = firstLine(res.Stderr)
		}
		c.Status, c.Details = model.StatusOK, version
	}
	return append(out, c)
}

// Commands checks each named tool in order.
func Commands(ctx context.Context, r Runner, names []string) []model.Check {
	var out []model.Check
	for _, n := range names {
		out = append(out, Command(ctx, r, LookupTool(n))...)
	}
	return out
}
