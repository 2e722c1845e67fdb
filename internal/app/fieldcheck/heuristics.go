package fieldcheck

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fixed warnings produced without the text-quality service.
const (
	ShoutWarning    = "No uses solo mayúsculas."
	RepeatedWarning = "¡Ojo! Revisa la ortografía (caracteres repetidos)."
)

const (
	// MinLength is the shortest value that is ever evaluated.
	MinLength = 3
	// shoutLength is the length a value must exceed to count as shouting.
	shoutLength = 5
	// repeatRun is how many identical consecutive characters count as a typo.
	repeatRun = 3
)

// IsShouting reports whether s is longer than five characters, contains at
// least one letter and is entirely upper case.
func IsShouting(s string) bool {
	if utf8.RuneCountInString(s) <= shoutLength {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter && s == strings.ToUpper(s)
}

// HasRepeatedRun reports whether s contains three or more identical
// consecutive characters. Line breaks never form a run.
func HasRepeatedRun(s string) bool {
	var prev rune = -1
	n := 0
	for _, r := range s {
		if r == '\n' {
			prev, n = -1, 0
			continue
		}
		if r == prev {
			n++
			if n >= repeatRun {
				return true
			}
			continue
		}
		prev, n = r, 1
	}
	return false
}
