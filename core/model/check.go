// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// Status is the outcome of a single check.
type Status string

const (
	StatusOK      Status = "OK"
	StatusMissing Status = "MISSING"
	StatusError   Status = "ERROR"
	StatusWarning Status = "WARNING"
	StatusInfo    Status = "INFO"
)

// Failed reports whether the status counts as a failure in the summary.
func (s Status) Failed() bool { return s == StatusError || s == StatusMissing }

// Check categories, in report order.
const (
	CategorySystem       = "System"
	CategorySSH          = "SSH"
	CategoryTools        = "Tools"
	CategoryAWS          = "AWS"
	CategoryGCP          = "GCP"
	CategoryDigitalOcean = "DigitalOcean"
	CategoryAnsible      = "Ansible"
	CategoryTerraform    = "Terraform"
)

// Check is one row of the diagnostic report.
type Check struct {
	Category string `json:"category"`
	Item     string `json:"item"`
	Status   Status `json:"status"`
	Details  string `json:"details,omitempty"`
}

// Summary aggregates check outcomes.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// Summarize counts the outcomes of checks. INFO rows count toward Total only.
func Summarize(checks []Check) Summary {
	s := Summary{Total: len(checks)}
	for _, c := range checks {
		switch {
		case c.Status == StatusOK:
			s.Passed++
		case c.Status.Failed():
			s.Failed++
		case c.Status == StatusWarning:
			s.Warnings++
		}
	}
	return s
}
