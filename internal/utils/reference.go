package utils

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultReferencePrefix = "JW"
	referenceRandomLen     = 4
	base36Digits           = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var referencePrefixPattern = regexp.MustCompile(`^[A-Z]{2}$`)

// IsReferencePrefix reports whether s is two uppercase letters.
func IsReferencePrefix(s string) bool {
	return referencePrefixPattern.MatchString(s)
}

// ReferenceGenerator builds booking references of the form PP-TTTTTTTT-RRRR:
// prefix, base-36 millisecond timestamp, and four random base-36 chars.
// It does not check the store for collisions.
type ReferenceGenerator struct {
	Prefix string
	Now    func() time.Time
	IntN   func(n int) int
}

// Next returns a new reference.
func (g ReferenceGenerator) Next() string {
	prefix := strings.ToUpper(strings.TrimSpace(g.Prefix))
	if !IsReferencePrefix(prefix) {
		prefix = DefaultReferencePrefix
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	intN := rand.Intn
	if g.IntN != nil {
		intN = g.IntN
	}

	ts := strings.ToUpper(strconv.FormatInt(now().UnixMilli(), 36))

	var suffix [referenceRandomLen]byte
	for i := range suffix {
		suffix[i] = base36Digits[intN(len(base36Digits))]
	}

	return prefix + "-" + ts + "-" + string(suffix[:])
}
