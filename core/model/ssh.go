// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// UnknownKeyType is recorded for known_hosts lines that do not carry a key type
// in the expected position.
const UnknownKeyType = "unknown"

// HostBlock is one `Host` stanza of an SSH client config.
type HostBlock struct {
	Patterns []string          `json:"patterns"`
	Settings map[string]string `json:"settings"`
	Line     int               `json:"line"`
}

// Get returns the value of a setting. Lookup is case-insensitive.
func (b HostBlock) Get(key string) (string, bool) {
	v, ok := b.Settings[strings.ToLower(key)]
	return v, ok
}

// HasWildcard reports whether any pattern of the block is a glob.
func (b HostBlock) HasWildcard() bool {
	for _, p := range b.Patterns {
		if strings.ContainsAny(p, "*?") {
			return true
		}
	}
	return false
}

// Matches reports whether host matches one of the block's patterns. Negated
// patterns (`!pattern`) exclude the host even when another pattern matches.
func (b HostBlock) Matches(host string) bool {
	matched := false
	for _, p := range b.Patterns {
		negate := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		ok, err := path.Match(p, host)
		if err != nil || !ok {
			continue
		}
		if negate {
			return false
		}
		matched = true
	}
	return matched
}

// KnownHostEntry is one non-comment line of a known_hosts file.
type KnownHostEntry struct {
	HostToken string `json:"host"`
	KeyType   string `json:"key_type"`
	Marker    string `json:"marker,omitempty"`
	Hashed    bool   `json:"hashed,omitempty"`
	Line      int    `json:"line"`
}

// Malformed reports whether the line did not match the host/type/key layout.
func (e KnownHostEntry) Malformed() bool { return e.KeyType == UnknownKeyType }

// Algorithm is the key family of a key pair. The zero value is AlgorithmUnknown.
type Algorithm int

const (
	AlgorithmUnknown Algorithm = iota
	AlgorithmED25519
	AlgorithmRSA
	AlgorithmDSA
	AlgorithmECDSA
)

var algorithmNames = map[Algorithm]string{
	AlgorithmUnknown: "UNKNOWN",
	AlgorithmED25519: "ED25519",
	AlgorithmRSA:     "RSA",
	AlgorithmDSA:     "DSA",
	AlgorithmECDSA:   "ECDSA",
}

func (a Algorithm) String() string {
	if n, ok := algorithmNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// BitLength is a key size in bits. Zero means the size could not be determined.
type BitLength int

// UnknownBits marks a key whose size could not be determined.
const UnknownBits BitLength = 0

// Known reports whether the size was determined.
func (b BitLength) Known() bool { return b > 0 }

func (b BitLength) String() string {
	if !b.Known() {
		return "unknown"
	}
	return strconv.Itoa(int(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b BitLength) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Verdict is the security classification of a key pair group.
type Verdict string

const (
	VerdictSecure          Verdict = "SECURE"
	VerdictWeak            Verdict = "WEAK"
	VerdictOrphanedPrivate Verdict = "ORPHANED_PRIVATE"
	VerdictOrphanedPublic  Verdict = "ORPHANED_PUBLIC"
)

// Verdicts lists every verdict in report order.
var Verdicts = []Verdict{VerdictSecure, VerdictWeak, VerdictOrphanedPrivate, VerdictOrphanedPublic}

// NeedsAttention reports whether the verdict should raise the SSH category to WARNING.
func (v Verdict) NeedsAttention() bool { return v != VerdictSecure }

// KeyFileRecord is one candidate key file found below the scan root.
type KeyFileRecord struct {
	Path               string      `json:"path"`
	Directory          string      `json:"directory"`
	BaseName           string      `json:"base_name"`
	IsPrivateCandidate bool        `json:"is_private"`
	IsPublicCandidate  bool        `json:"is_public"`
	CreatedAt          time.Time   `json:"created_at"`
	Mode               fs.FileMode `json:"mode"`
	// Header is the first line of a private candidate.
	Header string `json:"header,omitempty"`
	// PublicAlgoToken is the first field of a public candidate.
	PublicAlgoToken string `json:"public_algo,omitempty"`
	// Body holds the raw file content for bit length inference.
	Body []byte `json:"-"`
}

// KeyPairGroup is the unit of classification: every record sharing a
// directory and base name.
type KeyPairGroup struct {
	Directory   string    `json:"directory"`
	BaseName    string    `json:"base_name"`
	HasPrivate  bool      `json:"has_private"`
	HasPublic   bool      `json:"has_public"`
	Algorithm   Algorithm `json:"algorithm"`
	BitLength   BitLength `json:"bits"`
	Verdict     Verdict   `json:"verdict"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Notes       []string  `json:"notes,omitempty"`
}

// Name returns the group's display name relative to root.
func (g KeyPairGroup) Name(root string) string {
	rel, err := filepath.Rel(root, g.Directory)
	if err != nil || rel == "." {
		return g.BaseName
	}
	return filepath.Join(rel, g.BaseName)
}
