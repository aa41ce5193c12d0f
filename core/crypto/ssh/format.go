// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

// package ssh provides convenience wrappers around the golang.org/x/crypto/ssh package
// for reading key material and measuring key sizes.
package ssh // import "github.com/toeirei/devcheck/core/crypto/ssh"

import (
	"crypto/dsa" //nolint:staticcheck // legacy DSA keys still need to be measured
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// The following variables are re-exported from golang.org/x/crypto/ssh for convenience,
// centralizing the SSH-related utilities used throughout devcheck.

// PublicKey is an SSH public key.
type PublicKey = ssh.PublicKey

// ParseAuthorizedKey parses a public key in authorized_keys format.
var ParseAuthorizedKey = ssh.ParseAuthorizedKey

// FingerprintSHA256 returns the SHA256 fingerprint of the public key.
var FingerprintSHA256 = ssh.FingerprintSHA256

// ErrEncrypted is returned by PrivateKeyBits when the key is protected by a
// passphrase. The algorithm and size are still returned when the key format
// exposes its public half, and are empty otherwise.
var ErrEncrypted = errors.New("private key is encrypted")

// PrivateKeyBits parses a PEM or OpenSSH private key and returns the key's
// algorithm name (as used in public key lines) and its size in bits.
func PrivateKeyBits(pemBytes []byte) (string, int, error) {
	raw, err := ssh.ParseRawPrivateKey(pemBytes)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			// The OpenSSH format stores the public half unencrypted.
			if missing.PublicKey != nil {
				if bits, err := PublicKeyBits(missing.PublicKey); err == nil {
					return missing.PublicKey.Type(), bits, ErrEncrypted
				}
			}
			return "", 0, ErrEncrypted
		}
		return "", 0, fmt.Errorf("failed to parse private key: %w", err)
	}
	return rawKeyBits(raw)
}

// PublicKeyBits returns the size in bits of a parsed public key.
func PublicKeyBits(pub ssh.PublicKey) (int, error) {
	cpk, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return 0, fmt.Errorf("public key type %s does not expose its crypto key", pub.Type())
	}
	_, bits, err := rawKeyBits(cpk.CryptoPublicKey())
	return bits, err
}

func rawKeyBits(key any) (string, int, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return ssh.KeyAlgoRSA, k.N.BitLen(), nil
	case *rsa.PublicKey:
		return ssh.KeyAlgoRSA, k.N.BitLen(), nil
	case *dsa.PrivateKey:
		return ssh.KeyAlgoDSA, k.P.BitLen(), nil
	case *dsa.PublicKey:
		return ssh.KeyAlgoDSA, k.P.BitLen(), nil
	case *ecdsa.PrivateKey:
		return ecdsaAlgo(k.Curve.Params().BitSize), k.Curve.Params().BitSize, nil
	case *ecdsa.PublicKey:
		return ecdsaAlgo(k.Curve.Params().BitSize), k.Curve.Params().BitSize, nil
	case ed25519.PrivateKey, *ed25519.PrivateKey, ed25519.PublicKey:
		return ssh.KeyAlgoED25519, 256, nil
	default:
		return "", 0, fmt.Errorf("unsupported key type %T", key)
	}
}

func ecdsaAlgo(bits int) string {
	switch bits {
	case 384:
		return ssh.KeyAlgoECDSA384
	case 521:
		return ssh.KeyAlgoECDSA521
	default:
		return ssh.KeyAlgoECDSA256
	}
}
