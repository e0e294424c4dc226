package render

import (
	"testing"
	"time"
)

func TestEnhanceDigest_RewritesISOMarkers(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	in := "## 1. Go 1.25 released\n\n**Published:** 2025-04-10T07:00:00Z\n\n**Summary:** New release.\n"
	want := "## 1. Go 1.25 released\n\n**Published:** 5 hours ago\n\n**Summary:** New release.\n"

	if got := EnhanceDigest(in, now); got != want {
		t.Fatalf("EnhanceDigest() = %q, want %q", got, want)
	}
}

func TestEnhanceDigest_StripsOffsetFromHumanDates(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	in := "**Published:** Apr 3, 2025+06:00\n"
	want := "**Published:** Apr 3, 2025\n"

	if got := EnhanceDigest(in, now); got != want {
		t.Fatalf("EnhanceDigest() = %q, want %q", got, want)
	}

	// Already-clean human dates are not converted to relative form.
	clean := "**Published:** Apr 3, 2025\n"
	if got := EnhanceDigest(clean, now); got != clean {
		t.Fatalf("EnhanceDigest() mutated clean date: %q", got)
	}
}

func TestEnhanceDigest_IdentityWithoutMarkers(t *testing.T) {
	now := time.Now()
	in := "# Digest\n\nPlain text with a date 2025-04-03T12:00:00Z that is not a marker.\n"

	if got := EnhanceDigest(in, now); got != in {
		t.Fatalf("EnhanceDigest() = %q, want input unchanged", got)
	}
}

func TestEnhanceDigest_Idempotent(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	in := "**Published:** 2025-04-10T07:00:00Z\n\n**Published:** Apr 3, 2025+06:00\n"

	once := EnhanceDigest(in, now)
	twice := EnhanceDigest(once, now)
	if once != twice {
		t.Fatalf("second pass mutated output:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestEnhanceDigest_UnrecognizedValueLeftUntouched(t *testing.T) {
	now := time.Now()
	in := "**Published:**   sometime last week\n"

	if got := EnhanceDigest(in, now); got != in {
		t.Fatalf("EnhanceDigest() = %q, want input unchanged", got)
	}
}

func TestEnhanceDigest_MarkerAtEndOfInput(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	in := "**Published:** 2025-04-10T11:30:00Z"
	want := "**Published:** 30 minutes ago"

	if got := EnhanceDigest(in, now); got != want {
		t.Fatalf("EnhanceDigest() = %q, want %q", got, want)
	}
}

func TestEnhanceDigest_MultipleMarkers(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	in := "**Published:** 2025-04-10T11:00:00Z\n---\n**Published:** 2025-04-01T12:00:00Z\n"
	want := "**Published:** 1 hour ago\n---\n**Published:** Apr 1, 2025\n"

	if got := EnhanceDigest(in, now); got != want {
		t.Fatalf("EnhanceDigest() = %q, want %q", got, want)
	}
}
