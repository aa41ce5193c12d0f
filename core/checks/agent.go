// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package checks

import (
	"errors"
	"fmt"

	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/sshkey"
	"github.com/toeirei/devcheck/internal/agent"
)

// AgentLister returns the keys held by the SSH agent; agent.List in
// production.
type AgentLister func() ([]agent.LoadedKey, error)

// Agent reports the keys loaded in the SSH agent and flags weak ones. A
// missing agent is informational.
func Agent(list AgentLister) []model.Check {
	keys, err := list()
	if errors.Is(err, agent.ErrNoAgent) {
		return []model.Check{{Category: model.CategorySSH, Item: "SSH agent", Status: model.StatusInfo, Details: "no agent running"}}
	}
	if err != nil {
		return []model.Check{{Category: model.CategorySSH, Item: "SSH agent", Status: model.StatusWarning, Details: err.Error()}}
	}

	out := []model.Check{{Category: model.CategorySSH, Item: "SSH agent", Status: model.StatusOK, Details: fmt.Sprintf("%d keys loaded", len(keys))}}
	for _, k := range keys {
		algo, bits := sshkey.DescribePublicKey(k.Key)
		if !sshkey.Weak(algo, bits) {
			continue
		}
		name := k.Comment
		if name == "" {
			name = k.Fingerprint
		}
		out = append(out, model.Check{
			Category: model.CategorySSH,
			Item:     "agent key " + name,
			Status:   model.StatusWarning,
			Details:  fmt.Sprintf("%s %s %s bits", model.VerdictWeak, algo, bits),
		})
	}
	return out
}
