package go_machinetalk

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "demo" becomes "Demo" and "my_comp2x" becomes "My_Comp2X".
func TitleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			sb.WriteRune(r)
			prevLetter = false
		}
	}

	return sb.String()
}
