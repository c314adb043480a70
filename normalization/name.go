package normalization

import "strings"

// NormalizeName produces the resolution key for a display name: trimmed,
// inner whitespace collapsed to single spaces, lower-cased. Two names with
// the same key are treated as the same catalog entity within an import run.
func NormalizeName(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	return strings.ToLower(collapsed)
}

// CodePrefix returns the upper-cased alphanumeric prefix of a name, capped
// at maxLen runes, used when generating business codes.
func CodePrefix(name string, maxLen int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= maxLen {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "MED"
	}
	return b.String()
}
