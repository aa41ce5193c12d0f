// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadKeysFlattensNestedAndDotted(t *testing.T) {
	p := filepath.Join(t.TempDir(), "active.en.yaml")
	writeFile(t, p, "report.title: Report\nstatus:\n  ok: OK\n  nested:\n    deep: x\n")
	got, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale: %v", err)
	}
	for _, want := range []string{"report.title", "status.ok", "status.nested.deep"} {
		if _, ok := got[want]; !ok {
			t.Fatalf("expected key %s in %v", want, got)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 keys, got %v", got)
	}
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ui", "a.go"), `package ui
func f() {
	_ = i18n.T("report.title")
	_ = i18n.T("report.undefined")
	_ = i18n.T("status."+name)
	cols := []string{"report.col.item"}
}`)
	writeFile(t, filepath.Join(root, "ui", "a_test.go"), `package ui
func g() { _ = i18n.T("test.only") }`)
	writeFile(t, filepath.Join(root, "tools", "x.go"), `package x
func h() { _ = i18n.T("tools.ignored") }`)

	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "active.en.yaml"), "report.title: Report\nreport.col.item: Item\nstatus.ok: OK\nssh.title: SSH\n")
	writeFile(t, filepath.Join(locales, "active.de.yaml"), "report.title: Bericht\nstatus.ok: OK\nssh.title: SSH\n")

	r, err := lint(root, locales)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if strings.Join(r.Undefined, ",") != "report.undefined" {
		t.Fatalf("unexpected undefined keys: %v", r.Undefined)
	}
	if strings.Join(r.Orphaned, ",") != "ssh.title" {
		t.Fatalf("unexpected orphaned keys: %v", r.Orphaned)
	}
	if strings.Join(r.Missing["active.de.yaml"], ",") != "report.col.item" {
		t.Fatalf("unexpected missing keys: %v", r.Missing)
	}
	if !r.failed() {
		t.Fatalf("expected lint to fail")
	}
}

func TestLintConsistent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), `package a
func f() { _ = i18n.T("ssh.title") }`)
	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "active.en.yaml"), "ssh.title: SSH\n")
	writeFile(t, filepath.Join(locales, "active.de.yaml"), "ssh.title: SSH\n")

	r, err := lint(root, locales)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if r.failed() {
		t.Fatalf("expected consistent locales, got %+v", r)
	}
}
