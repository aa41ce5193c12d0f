// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer verifies the package helper functions write
// formatted messages to the package-level logger `L`. The test swaps `L` with
// a buffer-backed logger and restores it afterwards.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestSetup_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	defer func() { L = prev }()

	Setup(&buf, false)
	Debugf("hidden")
	Infof("also hidden")
	Warnf("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug/info should be suppressed; got: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn should be shown; got: %s", out)
	}

	buf.Reset()
	Setup(&buf, true)
	Debugf("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug should be shown when verbose; got: %s", buf.String())
	}
}
