//go:build !windows
// +build !windows

// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package agent // import "github.com/toeirei/devcheck/internal/agent"

import (
	"net"
	"os"

	"golang.org/x/crypto/ssh/agent"
)

// dial connects to a running SSH agent on Unix-like systems through the socket
// named by SSH_AUTH_SOCK. It returns nil when no agent is reachable.
func dial() (agent.Agent, func() error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, nil
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, nil
	}
	return agent.NewClient(conn), conn.Close
}
