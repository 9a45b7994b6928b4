package report

import "strings"

// The core PDF fonts are latin-1 only. Drafts carry rupee signs, Devanagari
// plan names and a few decorative glyphs, so everything is normalized or
// dropped before layout.
var replacer = strings.NewReplacer(
	"₹", "Rs.",
	"–", "-",
	"—", "-",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"…", "...",
	"•", "-",
	"ॐ", "Om",
	"🙏", "",
	"✦", "",
	"✋", "",
	"🖐", "",
	"🪔", "",
)

// Sanitize normalizes punctuation and currency symbols and strips every
// rune the renderer's font cannot encode.
func Sanitize(s string) string {
	s = replacer.Replace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r >= 32 && r < 127:
			b.WriteRune(r)
		case r >= 160 && r <= 255:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
