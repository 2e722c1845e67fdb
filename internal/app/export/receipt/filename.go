package receipt

import (
	"strings"
	"unicode"
)

// DefaultFilename is used when the title leaves nothing usable.
const DefaultFilename = "registro_recurso.pdf"

// maxTitleRunes bounds the title part of the filename.
const maxTitleRunes = 60

// Filename derives the receipt's filename from a title: characters that are
// unsafe in filenames are dropped, whitespace runs become single spaces and
// the result is cut to sixty characters.
func Filename(title string) string {
	var b strings.Builder
	space := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
			continue
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}

	name := []rune(b.String())
	if len(name) > maxTitleRunes {
		name = name[:maxTitleRunes]
	}
	clean := strings.Trim(string(name), " .")
	if clean == "" {
		return DefaultFilename
	}
	return clean + ".pdf"
}
