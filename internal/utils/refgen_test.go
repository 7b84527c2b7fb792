package utils

import (
	"strings"
	"testing"
)

func TestReferenceFormats(t *testing.T) {
	ref := NewBookingRef()
	if !strings.HasPrefix(ref, "BK-") {
		t.Fatalf("booking ref missing prefix: %s", ref)
	}
	num := NewTicketNumber()
	if !strings.HasPrefix(num, "TKT-") {
		t.Fatalf("ticket number missing prefix: %s", num)
	}

	body := strings.TrimPrefix(ref, "BK-")
	if len(body) != 26 {
		t.Fatalf("expected 26-char body, got %d (%s)", len(body), body)
	}
	for _, ch := range body {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", ch) {
			t.Fatalf("unexpected character %q in %s", ch, body)
		}
	}
}

func TestReferencesDoNotRepeat(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		ref := NewBookingRef()
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference after %d draws: %s", i, ref)
		}
		seen[ref] = struct{}{}
	}
}
