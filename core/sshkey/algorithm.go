// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"errors"
	"strings"

	cssh "github.com/toeirei/devcheck/core/crypto/ssh"
	"github.com/toeirei/devcheck/core/model"
)

const certSuffix = "-cert-v01@openssh.com"

// keyInfo is what could be learned about one half of a key pair.
type keyInfo struct {
	Algorithm model.Algorithm
	Bits      model.BitLength
	Encrypted bool
}

// AlgorithmFromPublicToken maps the first field of a public key line to an
// algorithm. Only fixed-size families carry a bit length; RSA and DSA sizes
// are not encoded in the token.
func AlgorithmFromPublicToken(token string) (model.Algorithm, model.BitLength) {
	token = strings.TrimSuffix(token, certSuffix)
	switch token {
	case "ssh-ed25519", "sk-ssh-ed25519@openssh.com":
		return model.AlgorithmED25519, 256
	case "ssh-rsa", "rsa-sha2-256", "rsa-sha2-512":
		return model.AlgorithmRSA, model.UnknownBits
	case "ssh-dss":
		return model.AlgorithmDSA, model.UnknownBits
	case "sk-ecdsa-sha2-nistp256@openssh.com":
		return model.AlgorithmECDSA, 256
	}
	if curve, ok := strings.CutPrefix(token, "ecdsa-sha2-nistp"); ok {
		switch curve {
		case "256":
			return model.AlgorithmECDSA, 256
		case "384":
			return model.AlgorithmECDSA, 384
		case "521":
			return model.AlgorithmECDSA, 521
		}
		return model.AlgorithmECDSA, model.UnknownBits
	}
	return model.AlgorithmUnknown, model.UnknownBits
}

// isPrivateHeader reports whether the first line of a file looks like the
// start of a private key.
func isPrivateHeader(header string) bool {
	if strings.HasPrefix(header, "PuTTY-User-Key-File-") {
		return true
	}
	return strings.HasPrefix(header, "-----BEGIN ") && strings.Contains(header, "PRIVATE KEY")
}

// inferPrivate derives the algorithm from a private key header and, where
// possible, the key size from the body. Body parsing is best effort: an
// encrypted or unparseable body leaves the size unknown.
func inferPrivate(header string, body []byte) keyInfo {
	if rest, ok := strings.CutPrefix(header, "PuTTY-User-Key-File-"); ok {
		_, token, _ := strings.Cut(rest, ":")
		algo, bits := AlgorithmFromPublicToken(strings.TrimSpace(token))
		return keyInfo{Algorithm: algo, Bits: bits}
	}

	parsedAlgo, parsedBits, err := cssh.PrivateKeyBits(body)
	encrypted := errors.Is(err, cssh.ErrEncrypted)
	measured := parsedAlgo != ""

	switch {
	case strings.Contains(header, "DSA"):
		info := keyInfo{Algorithm: model.AlgorithmDSA, Encrypted: encrypted}
		if measured {
			info.Bits = model.BitLength(parsedBits)
		}
		return info
	case strings.Contains(header, "RSA"):
		info := keyInfo{Algorithm: model.AlgorithmRSA, Encrypted: encrypted}
		if measured {
			info.Bits = model.BitLength(parsedBits)
		}
		return info
	case strings.Contains(header, "EC PRIVATE KEY"):
		info := keyInfo{Algorithm: model.AlgorithmECDSA, Encrypted: encrypted}
		if measured {
			info.Bits = model.BitLength(parsedBits)
		}
		return info
	case strings.Contains(header, "OPENSSH"):
		if measured {
			algo, bits := AlgorithmFromPublicToken(parsedAlgo)
			if !bits.Known() {
				bits = model.BitLength(parsedBits)
			}
			return keyInfo{Algorithm: algo, Bits: bits, Encrypted: encrypted}
		}
		// Nothing readable in the body; ED25519 is what ssh-keygen
		// produces by default.
		return keyInfo{Algorithm: model.AlgorithmED25519, Bits: 256, Encrypted: encrypted}
	}

	// PKCS#8 "BEGIN PRIVATE KEY" carries no algorithm in the header.
	if measured {
		algo, bits := AlgorithmFromPublicToken(parsedAlgo)
		if !bits.Known() {
			bits = model.BitLength(parsedBits)
		}
		return keyInfo{Algorithm: algo, Bits: bits, Encrypted: encrypted}
	}
	return keyInfo{Algorithm: model.AlgorithmUnknown, Encrypted: encrypted}
}

// inferPublic derives the algorithm from the public key token and measures
// the key body when the token alone does not carry a size.
func inferPublic(token string, body []byte) (keyInfo, string) {
	algo, bits := AlgorithmFromPublicToken(token)
	info := keyInfo{Algorithm: algo, Bits: bits}

	pub, _, _, _, err := cssh.ParseAuthorizedKey(body)
	if err != nil {
		return info, ""
	}
	if !info.Bits.Known() {
		if n, err := cssh.PublicKeyBits(pub); err == nil {
			info.Bits = model.BitLength(n)
		}
	}
	return info, cssh.FingerprintSHA256(pub)
}

// DescribePublicKey returns the algorithm and size of a parsed public key,
// such as one listed by an SSH agent.
func DescribePublicKey(pub cssh.PublicKey) (model.Algorithm, model.BitLength) {
	algo, bits := AlgorithmFromPublicToken(pub.Type())
	if !bits.Known() {
		if n, err := cssh.PublicKeyBits(pub); err == nil {
			bits = model.BitLength(n)
		}
	}
	return algo, bits
}

// HostKeyWarning returns a warning for a known_hosts key type that should be
// replaced, or "" when the type is fine.
func HostKeyWarning(keyType string) string {
	switch strings.TrimSuffix(keyType, certSuffix) {
	case "ssh-dss":
		return "DSA host key: disabled by default since OpenSSH 7.0"
	case "ssh-rsa":
		return "RSA host key: prefer an ed25519 host key where the server offers one"
	}
	return ""
}
