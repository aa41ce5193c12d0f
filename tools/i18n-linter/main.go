// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the translation keys used in
// the Go sources. It fails when a key used in code is absent from the primary
// locale or when another locale lacks a key of the primary one. Keys defined
// but never referenced are reported as orphans without failing. A call such
// as i18n.T("status."+name) references every key under the status. prefix.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
	projectRoot   = "."
)

// keyPattern matches i18n.T("some.key") calls and bare dotted literals such
// as "report.col.item" that are passed to T indirectly. Bare literals only
// count as references; they never make a key undefined since file names and
// config keys look the same.
var keyPattern = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z_]+\.[a-z_.]+)"`)

// result is the outcome of one lint run.
type result struct {
	Undefined []string            // used in code, absent from the primary locale
	Orphaned  []string            // in the primary locale, never referenced
	Missing   map[string][]string // per secondary locale file, keys it lacks
}

func (r result) failed() bool {
	return len(r.Undefined) > 0 || lo.SomeBy(lo.Values(r.Missing), func(keys []string) bool { return len(keys) > 0 })
}

func main() {
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	report(r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (result, error) {
	called, literals, err := findUsedKeys(root)
	if err != nil {
		return result{}, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return result{}, fmt.Errorf("load %s: %w", primaryLocale, err)
	}
	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return result{}, err
	}

	used := lo.Assign(called, literals)
	prefixes := lo.Filter(lo.Keys(called), func(k string, _ int) bool { return strings.HasSuffix(k, ".") })
	for k := range primary {
		if lo.SomeBy(prefixes, func(p string) bool { return strings.HasPrefix(k, p) }) {
			used[k] = struct{}{}
		}
	}
	for _, p := range prefixes {
		delete(called, p)
	}
	r := result{
		Undefined: difference(called, primary),
		Orphaned:  difference(primary, used),
		Missing:   make(map[string][]string),
	}
	for _, f := range files {
		if filepath.Base(f) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return result{}, fmt.Errorf("load %s: %w", f, err)
		}
		r.Missing[filepath.Base(f)] = difference(primary, keys)
	}
	return r, nil
}

func report(r result) {
	section := func(title string, keys []string) {
		fmt.Printf("--- %s ---\n", title)
		if len(keys) == 0 {
			fmt.Println("  none")
		}
		for _, k := range keys {
			fmt.Printf("  - %s\n", k)
		}
	}
	section("Used in code but not defined in "+primaryLocale, r.Undefined)
	section("Defined in "+primaryLocale+" but not referenced literally", r.Orphaned)
	names := lo.Keys(r.Missing)
	sort.Strings(names)
	for _, name := range names {
		section("Missing from "+name, r.Missing[name])
	}
	if r.failed() {
		fmt.Println("FAIL: locale files are inconsistent")
	} else {
		fmt.Println("OK: locale files are consistent")
	}
}

// findUsedKeys scans non-test .go files below root, skipping tools/ and
// hidden or underscore-prefixed directories. It returns the keys passed to
// i18n.T and the bare dotted literals separately.
func findUsedKeys(root string) (called, literals map[string]struct{}, err error) {
	called = make(map[string]struct{})
	literals = make(map[string]struct{})
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name() == "tools" || strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyPattern.FindAllStringSubmatch(string(content), -1) {
			switch {
			case m[1] != "":
				called[m[1]] = struct{}{}
			case m[2] != "":
				literals[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return called, literals, err
}

// loadKeysFromLocale reads a YAML locale and returns its keys flattened to
// dotted form, so nested and flat dotted layouts compare equal.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flatten("", data, keys)
	return keys, nil
}

func flatten(prefix string, node any, keys map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flatten(k, v, keys)
	}
}

// difference returns the sorted keys of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	out := lo.Filter(lo.Keys(a), func(k string, _ int) bool {
		_, ok := b[k]
		return !ok
	})
	sort.Strings(out)
	return out
}
