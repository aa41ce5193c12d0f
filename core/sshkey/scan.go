// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toeirei/devcheck/core/model"
)

// PublicSuffix marks the public half of a key pair.
const PublicSuffix = ".pub"

// maxKeyFileSize bounds how much of a file is read. Key files are a few KiB
// at most; anything larger is not a key.
const maxKeyFileSize = 64 << 10

var (
	// ErrRootNotFound is returned when the scan root does not exist.
	ErrRootNotFound = errors.New("scan root does not exist")
	// ErrRootNotDirectory is returned when the scan root is not a directory.
	ErrRootNotDirectory = errors.New("scan root is not a directory")
)

// nonKeyFiles are well-known files of an SSH directory that are never keys.
var nonKeyFiles = map[string]bool{
	"config":           true,
	"known_hosts":      true,
	"known_hosts.old":  true,
	"known_hosts2":     true,
	"authorized_keys":  true,
	"authorized_keys2": true,
	"environment":      true,
}

// ScanResult holds the candidate key files found below Root and any per-file
// problems met on the way.
type ScanResult struct {
	Root     string
	Records  []model.KeyFileRecord
	Warnings []string
}

// Scan walks root recursively and returns every private or public key
// candidate. Unreadable files and directories, and files that are neither a
// public key nor start with a private key header, are recorded as warnings
// and the walk continues. Only a missing or non-directory root is an error.
// A symlinked root is followed; paths in the result stay below root as given.
func Scan(root string) (ScanResult, error) {
	res := ScanResult{Root: root}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf("cannot access %s: %v", root, err))
		return res, nil
	}
	if !info.IsDir() {
		return res, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	walkRoot := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		walkRoot = resolved
	}
	shown := func(path string) string {
		if walkRoot == root {
			return path
		}
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}
		return filepath.Join(root, rel)
	}

	walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("cannot read %s: %v", shown(path), err))
			if d != nil && d.IsDir() && path != walkRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rec, ok, warn := readCandidate(path, shown(path), d)
		if warn != "" {
			res.Warnings = append(res.Warnings, warn)
		}
		if ok {
			res.Records = append(res.Records, rec)
		}
		return nil
	})
	if walkErr != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("scan of %s stopped: %v", root, walkErr))
	}
	return res, nil
}

// readCandidate classifies the file at path, reporting it as shown. It
// returns ok=false for files that are not key candidates, with a warning for
// files that could not be read or failed the private key header check.
func readCandidate(path, shown string, d fs.DirEntry) (model.KeyFileRecord, bool, string) {
	name := d.Name()
	if nonKeyFiles[name] {
		return model.KeyFileRecord{}, false, ""
	}

	info, err := os.Stat(path)
	if err != nil {
		// The file vanished or a symlink dangles.
		return model.KeyFileRecord{}, false, fmt.Sprintf("cannot stat %s: %v", shown, err)
	}
	if !info.Mode().IsRegular() {
		return model.KeyFileRecord{}, false, ""
	}
	if info.Size() > maxKeyFileSize {
		return model.KeyFileRecord{}, false, fmt.Sprintf("skipped %s: too large for a key file", shown)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.KeyFileRecord{}, false, fmt.Sprintf("cannot read %s: %v", shown, err)
	}

	rec := model.KeyFileRecord{
		Path:      shown,
		Directory: filepath.Dir(shown),
		CreatedAt: info.ModTime(),
		Mode:      info.Mode().Perm(),
		Body:      data,
	}

	if base, ok := strings.CutSuffix(name, PublicSuffix); ok {
		if base == "" {
			return model.KeyFileRecord{}, false, ""
		}
		rec.BaseName = base
		rec.IsPublicCandidate = true
		if fields := strings.Fields(string(data)); len(fields) > 0 {
			rec.PublicAlgoToken = fields[0]
		}
		return rec, true, ""
	}

	header := firstLine(data)
	if !isPrivateHeader(header) {
		return model.KeyFileRecord{}, false, fmt.Sprintf("skipped %s: no private key header", shown)
	}
	rec.BaseName = name
	rec.IsPrivateCandidate = true
	rec.Header = header
	return rec, true, ""
}

func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
