package utils

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var referencePattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]+-[A-Z0-9]{4}$`)

func TestReferenceGeneratorDefaultFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		ref := ReferenceGenerator{}.Next()
		if !referencePattern.MatchString(ref) {
			t.Fatalf("reference %q does not match format", ref)
		}
		if !strings.HasPrefix(ref, "JW-") {
			t.Fatalf("reference %q missing default prefix", ref)
		}
	}
}

func TestReferenceGeneratorNoCollisionsAcrossTimestamps(t *testing.T) {
	tick := time.UnixMilli(1735689600000)
	g := ReferenceGenerator{Now: func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}}

	seen := make(map[string]bool, 2000)
	for i := 0; i < 2000; i++ {
		ref := g.Next()
		if seen[ref] {
			t.Fatalf("duplicate reference %q after %d generations", ref, i)
		}
		seen[ref] = true
	}
}

func TestReferenceGeneratorDeterministic(t *testing.T) {
	at := time.UnixMilli(1735689600000)
	g := ReferenceGenerator{
		Prefix: "tv",
		Now:    func() time.Time { return at },
		IntN:   func(n int) int { return n - 1 },
	}

	want := "TV-" + strings.ToUpper(strconv.FormatInt(1735689600000, 36)) + "-ZZZZ"
	if got := g.Next(); got != want {
		t.Fatalf("Next() = %q, want %q", got, want)
	}
}

func TestReferenceGeneratorRejectsMalformedPrefix(t *testing.T) {
	for _, prefix := range []string{"J-W", "JWX", "J1", "-"} {
		ref := ReferenceGenerator{Prefix: prefix}.Next()
		if !referencePattern.MatchString(ref) || !strings.HasPrefix(ref, "JW-") {
			t.Fatalf("prefix %q produced %q", prefix, ref)
		}
		if n := strings.Count(ref, "-"); n != 2 {
			t.Fatalf("prefix %q produced %d separators in %q", prefix, n, ref)
		}
	}
}
