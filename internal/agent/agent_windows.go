//go:build windows
// +build windows

// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package agent // import "github.com/toeirei/devcheck/internal/agent"

import (
	"net"
	"os"

	"github.com/Microsoft/go-winio"
	"github.com/davidmz/go-pageant"
	"golang.org/x/crypto/ssh/agent"
)

// dial connects to a running SSH agent on Windows. Pageant-compatible agents
// (PuTTY, gpg-agent) are tried first, then the OpenSSH agent named pipe from
// SSH_AUTH_SOCK or its default name.
func dial() (agent.Agent, func() error) {
	if pageant.Available() {
		return pageant.New(), nil
	}

	pipe := os.Getenv("SSH_AUTH_SOCK")
	if pipe == "" {
		pipe = `\\.\pipe\openssh-ssh-agent`
	}
	var conn net.Conn
	conn, err := winio.DialPipe(pipe, nil)
	if err != nil || conn == nil {
		return nil, nil
	}
	return agent.NewClient(conn), conn.Close
}
