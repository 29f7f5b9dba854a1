package ticket

import (
	"regexp"
	"strings"
)

var (
	// OCR output mixes in unicode space variants and typographic
	// dashes; the scanners only ever see ASCII forms.
	charReplacer = strings.NewReplacer(
		" ", " ",
		" ", " ", " ", " ", " ", " ", " ", " ",
		" ", " ", " ", " ", " ", " ", " ", " ",
		" ", " ", " ", " ", " ", " ", "​", " ",
		" ", " ", " ", " ", "　", " ",
		"–", "-",
		"—", "-",
	)

	aroundNewlinePattern = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	inlineSpacePattern   = regexp.MustCompile(`[ \t]+`)
)

// Normalize rewrites raw extracted text into the canonical form the
// scanners operate on: LF line endings, ASCII spaces and hyphens, inline
// whitespace collapsed to single spaces, line breaks preserved.
// Normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = charReplacer.Replace(text)
	text = aroundNewlinePattern.ReplaceAllString(text, "\n")
	text = inlineSpacePattern.ReplaceAllString(text, " ")
	return text
}
