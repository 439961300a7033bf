package domain

import "strings"

// Slugify derives a URL-safe branch slug from a display name: lower-cased,
// [a-z0-9_] kept, every other run of characters collapsed into a single
// dash, dashes trimmed from both ends. May return "" for names without any
// usable character.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
