// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package checks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/toeirei/devcheck/config"
	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/security"
	"gopkg.in/ini.v1"
)

// CloudOptions configures the cloud provider checks.
type CloudOptions struct {
	Runner Runner
	Files  config.FilesConfig
	// Online enables connectivity probes through the providers' CLIs.
	Online bool
}

// AWS inspects the shared credentials and config files and, when online,
// asks the AWS CLI for the caller identity. Secrets are never reported.
func AWS(ctx context.Context, opts CloudOptions) []model.Check {
	var out []model.Check

	creds := File(FileSpec{model.CategoryAWS, "Credentials file", opts.Files.AWSCredentials})
	if creds.Status == model.StatusOK {
		creds = iniProfilesCheck(creds, opts.Files.AWSCredentials, "")
	}
	out = append(out, creds)

	cfg := File(FileSpec{model.CategoryAWS, "Config file", opts.Files.AWSConfig})
	if cfg.Status == model.StatusOK {
		cfg = iniProfilesCheck(cfg, opts.Files.AWSConfig, "profile ")
	}
	out = append(out, cfg)

	if !opts.Online {
		return out
	}
	cli, ok := Installed(opts.Runner, LookupTool("aws"))
	out = append(out, cli)
	if !ok {
		return out
	}
	c := model.Check{Category: model.CategoryAWS, Item: "API connectivity"}
	res, err := opts.Runner.Run(ctx, "aws", "sts", "get-caller-identity", "--output", "json")
	if c.Status, c.Details = probeFailure(res, err); c.Status == "" {
		var identity struct {
			Arn string `json:"Arn"`
		}
		c.Status, c.Details = model.StatusOK, "Unknown user"
		if json.Unmarshal([]byte(res.Stdout), &identity) == nil && identity.Arn != "" {
			c.Details = identity.Arn
		}
	}
	return append(out, c)
}

// GCP inspects the application default credentials and, when online, lists
// the gcloud accounts to find an active one.
func GCP(ctx context.Context, opts CloudOptions) []model.Check {
	var out []model.Check

	creds := File(FileSpec{model.CategoryGCP, "Application credentials", opts.Files.GCPCredentials})
	if creds.Status == model.StatusOK {
		creds = gcpCredentialsCheck(creds, opts.Files.GCPCredentials)
	}
	out = append(out, creds)

	if !opts.Online {
		return out
	}
	cli, ok := Installed(opts.Runner, LookupTool("gcloud"))
	out = append(out, cli)
	if !ok {
		return out
	}
	c := model.Check{Category: model.CategoryGCP, Item: "Authentication"}
	res, err := opts.Runner.Run(ctx, "gcloud", "auth", "list", "--format=json")
	if c.Status, c.Details = probeFailure(res, err); c.Status == "" {
		var accounts []gcloudAccount
		if err := json.Unmarshal([]byte(res.Stdout), &accounts); err != nil {
			c.Status, c.Details = model.StatusError, fmt.Sprintf("unexpected gcloud output: %v", err)
		} else if active, found := lo.Find(accounts, gcloudAccount.active); found {
			c.Status, c.Details = model.StatusOK, "Active: "+active.Account
		} else {
			c.Status, c.Details = model.StatusWarning, "No active accounts"
		}
	}
	return append(out, c)
}

type gcloudAccount struct {
	Account string `json:"account"`
	Status  string `json:"status"`
}

func (a gcloudAccount) active() bool { return a.Status == "ACTIVE" }

// DigitalOcean inspects the doctl config and, when online, asks doctl for
// the account.
func DigitalOcean(ctx context.Context, opts CloudOptions) []model.Check {
	var out []model.Check

	cfg := File(FileSpec{model.CategoryDigitalOcean, "Config file", opts.Files.DoctlConfig})
	if cfg.Status == model.StatusOK {
		cfg = doctlConfigCheck(cfg, opts.Files.DoctlConfig)
	}
	out = append(out, cfg)

	if !opts.Online {
		return out
	}
	cli, ok := Installed(opts.Runner, LookupTool("doctl"))
	out = append(out, cli)
	if !ok {
		return out
	}
	c := model.Check{Category: model.CategoryDigitalOcean, Item: "API connectivity"}
	res, err := opts.Runner.Run(ctx, "doctl", "account", "get")
	if c.Status, c.Details = probeFailure(res, err); c.Status == "" {
		c.Status, c.Details = model.StatusOK, "Account accessible"
	}
	return append(out, c)
}

// probeFailure maps a failed probe to ERROR. It returns an empty status when
// the command succeeded.
func probeFailure(res Result, err error) (model.Status, string) {
	switch {
	case errors.Is(err, ErrTimeout):
		return model.StatusError, "Request timeout"
	case err != nil:
		return model.StatusError, err.Error()
	case res.ExitCode != 0:
		return model.StatusError, failureDetails(res)
	}
	return "", ""
}

// iniProfilesCheck lists the section names of an AWS style ini file. For the
// config file sections are named "profile x" except for "default".
func iniProfilesCheck(c model.Check, path, prefix string) model.Check {
	data, err := os.ReadFile(config.ExpandHome(path))
	if err != nil {
		c.Status, c.Details = model.StatusError, err.Error()
		return c
	}
	profiles, err := iniSections(data)
	if err != nil {
		c.Status, c.Details = model.StatusError, fmt.Sprintf("invalid ini file: %v", err)
		return c
	}
	if prefix != "" {
		profiles = lo.Map(profiles, func(s string, _ int) string { return strings.TrimPrefix(s, prefix) })
	}
	if len(profiles) == 0 {
		c.Status, c.Details = model.StatusWarning, "no profiles defined"
		return c
	}
	c.Details = fmt.Sprintf("%s; profiles: %s", c.Details, strings.Join(profiles, ", "))
	return c
}

// iniSections returns the section names of an ini file in file order,
// without the implicit default section of the ini package.
func iniSections(data []byte) ([]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{SkipUnrecognizableLines: true}, data)
	if err != nil {
		return nil, err
	}
	return lo.Without(f.SectionStrings(), ini.DefaultSection), nil
}

// gcpCredentialsCheck reads the credential type and identity from an
// application default credentials file.
func gcpCredentialsCheck(c model.Check, path string) model.Check {
	v := viper.New()
	v.SetConfigFile(config.ExpandHome(path))
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		c.Status, c.Details = model.StatusError, fmt.Sprintf("invalid credentials file: %v", err)
		return c
	}
	kind := v.GetString("type")
	if kind == "" {
		c.Status, c.Details = model.StatusWarning, "credentials file has no type"
		return c
	}
	details := "type: " + kind
	if email := v.GetString("client_email"); email != "" {
		details += ", " + email
	}
	if project := v.GetString("quota_project_id"); project != "" {
		details += ", project: " + project
	}
	c.Details = details
	return c
}

type doctlConfig struct {
	AccessToken  security.Secret            `yaml:"access-token"`
	Context      string                     `yaml:"context"`
	AuthContexts map[string]security.Secret `yaml:"auth-contexts"`
}

// doctlConfigCheck reports the active doctl context and whether any token
// is configured.
func doctlConfigCheck(c model.Check, path string) model.Check {
	data, err := os.ReadFile(config.ExpandHome(path))
	if err != nil {
		c.Status, c.Details = model.StatusError, err.Error()
		return c
	}
	var dc doctlConfig
	if err := yaml.Unmarshal(data, &dc); err != nil {
		c.Status, c.Details = model.StatusError, fmt.Sprintf("invalid doctl config: %v", err)
		return c
	}
	tokens := lo.CountBy(lo.Values(dc.AuthContexts), security.Secret.Set)
	if dc.AccessToken.Set() {
		tokens++
	}
	if tokens == 0 {
		c.Status, c.Details = model.StatusWarning, "no access token configured"
		return c
	}
	active := dc.Context
	if active == "" {
		active = "default"
	}
	c.Details = fmt.Sprintf("context: %s, %d token(s)", active, tokens)
	return c
}
