// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestSecretRedaction(t *testing.T) {
	s := FromString("dop_v1_abcdef")
	for _, verb := range []string{"%v", "%s", "%q", "%#v", "%x"} {
		if got := fmt.Sprintf(verb, s); got != Placeholder {
			t.Fatalf("%s: unexpected fmt output %q", verb, got)
		}
	}
	b, err := json.Marshal(map[string]Secret{"token": s})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if bytes.Contains(b, []byte("dop_v1")) {
		t.Fatalf("json leaked the secret: %s", b)
	}
}

func TestSecretYAMLRoundTrip(t *testing.T) {
	var doc struct {
		Token   Secret            `yaml:"access-token"`
		Context map[string]Secret `yaml:"auth-contexts"`
	}
	in := "access-token: dop_v1_abc\nauth-contexts:\n  work: dop_v1_def\n  empty: \"\"\n"
	if err := yaml.Unmarshal([]byte(in), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(doc.Token) != "dop_v1_abc" {
		t.Fatalf("unexpected token bytes %q", string(doc.Token.Bytes()))
	}
	if !doc.Context["work"].Set() || doc.Context["empty"].Set() {
		t.Fatalf("unexpected auth contexts: %d entries", len(doc.Context))
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(out, []byte("dop_v1")) {
		t.Fatalf("yaml leaked the secret: %s", out)
	}
}

func TestSecretZero(t *testing.T) {
	s := FromString("abc123")
	s.Zero()
	for i, b := range s {
		if b != 0 {
			t.Fatalf("expected zeroed byte at index %d, got %d", i, b)
		}
	}
	var nilSecret *Secret
	nilSecret.Zero()
}

func TestSecretBytesIsCopy(t *testing.T) {
	s := FromString("sensitive")
	c := s.Bytes()
	c[0] = 'X'
	if s[0] != 's' {
		t.Fatalf("modifying the copy changed the secret")
	}
}
