package fingerprint_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/registro/internal/app/system/fingerprint"
)

func TestOf_Stable(t *testing.T) {
	h := fingerprint.New("secret")
	a := h.Of("203.0.113.5")
	b := h.Of("203.0.113.5")
	if a == "" || a != b {
		t.Fatalf("expected stable non-empty digest, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64", len(a))
	}
	if strings.Contains(a, "203.0.113.5") {
		t.Error("digest must not contain the input")
	}
}

func TestOf_KeyChangesDigest(t *testing.T) {
	if fingerprint.New("a").Of("x") == fingerprint.New("b").Of("x") {
		t.Error("different keys should give different digests")
	}
}

func TestOf_Blank(t *testing.T) {
	if got := fingerprint.New("k").Of("   "); got != "" {
		t.Errorf("Of(blank) = %q, want empty", got)
	}
}

func TestOf_LongKey(t *testing.T) {
	h := fingerprint.New(strings.Repeat("k", 100))
	if h.Of("x") == "" {
		t.Error("long keys should be truncated, not rejected")
	}
}

func TestOf_NilHasher(t *testing.T) {
	var h *fingerprint.Hasher
	if h.Of("x") == "" {
		t.Error("nil hasher should hash without a key")
	}
}
