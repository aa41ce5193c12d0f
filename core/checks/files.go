// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package checks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toeirei/devcheck/config"
	"github.com/toeirei/devcheck/core/model"
)

// FileSpec names one file whose presence is checked.
type FileSpec struct {
	Category string
	Item     string
	Path     string
}

// File reports whether path exists. Present files are OK with their size,
// absent ones MISSING with the expanded path.
func File(spec FileSpec) model.Check {
	path := config.ExpandHome(spec.Path)
	c := model.Check{Category: spec.Category, Item: spec.Item}
	info, err := os.Stat(path)
	switch {
	case err == nil:
		c.Status = model.StatusOK
		c.Details = fmt.Sprintf("Size: %d bytes", info.Size())
	case errors.Is(err, fs.ErrNotExist):
		c.Status = model.StatusMissing
		c.Details = "Path: " + path
	default:
		c.Status = model.StatusError
		c.Details = err.Error()
	}
	return c
}

// Files checks every spec in order.
func Files(specs []FileSpec) []model.Check {
	out := make([]model.Check, 0, len(specs))
	for _, s := range specs {
		out = append(out, File(s))
	}
	return out
}

// SystemFiles are the System and SSH category file checks.
func SystemFiles(cfg config.Config) []FileSpec {
	return []FileSpec{
		{model.CategorySystem, "/etc/hosts", cfg.Files.Hosts},
		{model.CategorySSH, "SSH config", filepath.Join(cfg.SSH.Dir, "config")},
		{model.CategorySSH, "Known hosts", filepath.Join(cfg.SSH.Dir, "known_hosts")},
	}
}

// AnsibleFiles are the Ansible category file checks.
func AnsibleFiles(cfg config.Config) []FileSpec {
	return []FileSpec{
		{model.CategoryAnsible, "Config file", cfg.Files.AnsibleConfig},
		{model.CategoryAnsible, "Global config", cfg.Files.AnsibleGlobalConfig},
	}
}

// TerraformFiles are the Terraform category file checks. A missing
// .terraformrc is normal, so it is reported as INFO rather than MISSING.
func TerraformFiles(cfg config.Config) []model.Check {
	c := File(FileSpec{model.CategoryTerraform, "CLI config", cfg.Files.TerraformRC})
	if c.Status == model.StatusMissing {
		c.Status = model.StatusInfo
	}
	return []model.Check{c}
}
