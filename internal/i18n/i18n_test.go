// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"io/fs"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	av := AvailableLocales()
	want := map[string]bool{"en": false, "de": false}
	for _, tag := range av {
		if _, ok := want[tag]; ok {
			want[tag] = true
		}
	}
	for tag, seen := range want {
		if !seen {
			t.Fatalf("expected locale %q in %v", tag, av)
		}
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("status.missing"); got != "MISSING" {
		t.Fatalf("expected 'MISSING', got %q", got)
	}
	if got := T("report.total", 7); got != "Total checks: 7" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer Init("en")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("status.missing"); got != "FEHLT" {
		t.Fatalf("expected German 'FEHLT', got %q", got)
	}
}

func TestT_UnknownIDAndLanguageFallback(t *testing.T) {
	Init("xx")
	defer Init("en")
	if got := T("status.error"); got != "ERROR" {
		t.Fatalf("unknown language should fall back to English, got %q", got)
	}
	if got := T("no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown id should be returned as-is, got %q", got)
	}
}

func TestLocalesHaveSameKeys(t *testing.T) {
	load := func(name string) map[string]string {
		data, err := fs.ReadFile(localeFS, "locales/"+name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		m := map[string]string{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		return m
	}
	en, de := load("active.en.yaml"), load("active.de.yaml")
	for k := range en {
		if _, ok := de[k]; !ok {
			t.Fatalf("key %q missing from active.de.yaml", k)
		}
	}
	for k := range de {
		if _, ok := en[k]; !ok {
			t.Fatalf("key %q missing from active.en.yaml", k)
		}
	}
}
