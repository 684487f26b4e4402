// Package slug derives URL-safe course identifiers from titles.
package slug

import (
	"fmt"
	"strings"
)

// Generate lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen. The result matches
// ^[a-z0-9]+(-[a-z0-9]+)*$ or is empty when the title has no usable characters.
func Generate(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EnsureUnique returns base if it is absent from existing, otherwise the first
// free numbered variant (base-2, base-3, ...). existing maps slug to presence.
func EnsureUnique(base string, existing map[string]bool) string {
	if !existing[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !existing[candidate] {
			return candidate
		}
	}
}
