package mt940

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that do not decompose into an ASCII base letter.
var transliterations = map[rune]string{
	'ß': "ss", 'æ': "ae", 'Æ': "AE", 'ø': "o", 'Ø': "O",
	'œ': "oe", 'Œ': "OE", 'ł': "l", 'Ł': "L", 'đ': "d",
	'Đ': "D", 'þ': "th", 'Þ': "TH", 'ð': "d", 'Ð': "D",
}

func isSwiftRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("/-?:().,'+{} \r\n", r)
}

// Sanitize converts s to the SWIFT MT101 character set. Accented letters are
// replaced by their base letter, everything else outside the set becomes a
// dot.
func Sanitize(s string) string {
	var (
		b    strings.Builder
		fold transform.Transformer
	)
	b.Grow(len(s))
	for _, r := range s {
		if isSwiftRune(r) {
			b.WriteRune(r)
			continue
		}
		if sub, ok := transliterations[r]; ok {
			b.WriteString(sub)
			continue
		}
		if fold == nil {
			fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		}
		b.WriteString(foldRune(fold, r))
	}
	return b.String()
}

func foldRune(fold transform.Transformer, r rune) string {
	folded, _, err := transform.String(fold, string(r))
	if err != nil || folded == "" {
		return "."
	}
	for _, fr := range folded {
		if !isSwiftRune(fr) {
			return "."
		}
	}
	return folded
}
