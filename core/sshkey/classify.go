// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/toeirei/devcheck/core/model"
)

// MinRSABits is the smallest RSA modulus not reported as weak.
const MinRSABits = 2048

// checkPermissions is off on Windows, which reports 0666 for every writable
// file; access there is governed by ACLs, not mode bits.
var checkPermissions = runtime.GOOS != "windows"

// Note texts attached to groups.
const (
	NoteBitsUnknown = "bit length unknown"
	NoteEncrypted   = "private key is passphrase protected"
)

// Group pairs records sharing a directory and base name and classifies each
// pair. Groups are ordered by directory, then base name, so repeated scans of
// an unchanged tree give identical results.
func Group(records []model.KeyFileRecord) []model.KeyPairGroup {
	type groupKey struct{ dir, base string }
	type members struct {
		private *model.KeyFileRecord
		public  *model.KeyFileRecord
	}

	byKey := make(map[groupKey]*members)
	var order []groupKey
	for i := range records {
		r := &records[i]
		k := groupKey{r.Directory, r.BaseName}
		m, ok := byKey[k]
		if !ok {
			m = &members{}
			byKey[k] = m
			order = append(order, k)
		}
		switch {
		case r.IsPublicCandidate:
			m.public = r
		case r.IsPrivateCandidate:
			m.private = r
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].dir != order[j].dir {
			return order[i].dir < order[j].dir
		}
		return order[i].base < order[j].base
	})

	groups := make([]model.KeyPairGroup, 0, len(order))
	for _, k := range order {
		m := byKey[k]
		groups = append(groups, buildGroup(k.dir, k.base, m.private, m.public))
	}
	return groups
}

func buildGroup(dir, base string, private, public *model.KeyFileRecord) model.KeyPairGroup {
	g := model.KeyPairGroup{
		Directory:  dir,
		BaseName:   base,
		HasPrivate: private != nil,
		HasPublic:  public != nil,
	}

	var priv keyInfo
	if private != nil {
		priv = inferPrivate(private.Header, private.Body)
		g.CreatedAt = private.CreatedAt
	}

	if public != nil {
		pub, fingerprint := inferPublic(public.PublicAlgoToken, public.Body)
		g.Fingerprint = fingerprint
		if g.CreatedAt.IsZero() {
			g.CreatedAt = public.CreatedAt
		}
		g.Algorithm, g.BitLength = pub.Algorithm, pub.Bits
		if g.Algorithm == model.AlgorithmUnknown && private != nil {
			g.Algorithm, g.BitLength = priv.Algorithm, priv.Bits
		} else if priv.Algorithm == g.Algorithm && priv.Bits.Known() && g.Algorithm != model.AlgorithmED25519 {
			g.BitLength = priv.Bits
		}
	} else {
		g.Algorithm, g.BitLength = priv.Algorithm, priv.Bits
	}

	if g.Algorithm == model.AlgorithmRSA && !g.BitLength.Known() {
		g.Notes = append(g.Notes, NoteBitsUnknown)
	}
	if priv.Encrypted {
		g.Notes = append(g.Notes, NoteEncrypted)
	}
	if private != nil && checkPermissions && private.Mode&0o077 != 0 {
		g.Notes = append(g.Notes, fmt.Sprintf("private key permissions %04o are too open", private.Mode))
	}

	g.Verdict = Classify(g)
	return g
}

// Classify returns the single verdict for a group. Missing halves take
// precedence over algorithm weakness. An RSA key of unknown size is not
// reported as weak.
func Classify(g model.KeyPairGroup) model.Verdict {
	switch {
	case g.HasPrivate && !g.HasPublic:
		return model.VerdictOrphanedPrivate
	case g.HasPublic && !g.HasPrivate:
		return model.VerdictOrphanedPublic
	case Weak(g.Algorithm, g.BitLength):
		return model.VerdictWeak
	default:
		return model.VerdictSecure
	}
}

// Weak reports whether a key of the given algorithm and size is weak: any DSA
// key, or an RSA key known to be shorter than MinRSABits.
func Weak(algo model.Algorithm, bits model.BitLength) bool {
	switch algo {
	case model.AlgorithmDSA:
		return true
	case model.AlgorithmRSA:
		return bits.Known() && bits < MinRSABits
	}
	return false
}

// ScanAndGroup scans root and classifies the key pairs found.
func ScanAndGroup(root string) ([]model.KeyPairGroup, []string, error) {
	res, err := Scan(root)
	if err != nil {
		return nil, res.Warnings, err
	}
	return Group(res.Records), res.Warnings, nil
}
