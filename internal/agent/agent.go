// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

// Package agent lists the keys held by the local SSH agent. Connecting is
// platform specific; see agent_unix.go and agent_windows.go.
package agent // import "github.com/toeirei/devcheck/internal/agent"

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// ErrNoAgent is returned when no SSH agent could be reached.
var ErrNoAgent = errors.New("no ssh agent available")

// LoadedKey describes one identity held by the agent.
type LoadedKey struct {
	Type        string
	Comment     string
	Fingerprint string
	Key         ssh.PublicKey
}

// Lister is the subset of agent.Agent used here.
type Lister interface {
	List() ([]*agent.Key, error)
}

// dialFunc is replaced in tests.
var dialFunc = dial

// List connects to the local agent and returns its keys.
func List() ([]LoadedKey, error) {
	a, closeFn := dialFunc()
	if a == nil {
		return nil, ErrNoAgent
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}
	return ListFrom(a)
}

// ListFrom returns the keys held by an already connected agent.
func ListFrom(a Lister) ([]LoadedKey, error) {
	keys, err := a.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list agent keys: %w", err)
	}
	out := make([]LoadedKey, 0, len(keys))
	for _, k := range keys {
		lk := LoadedKey{Type: k.Format, Comment: k.Comment, Key: k}
		lk.Fingerprint = ssh.FingerprintSHA256(k)
		out = append(out, lk)
	}
	return out, nil
}
