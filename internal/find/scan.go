package find

import (
	"github.com/dshills/boothium/internal/engine/buffer"
)

// Scan returns every non-overlapping occurrence of term in text, left to
// right, as code-point spans. The match is literal and case-sensitive. An
// empty term matches nothing.
func Scan(text, term string) []buffer.Range {
	if term == "" || text == "" {
		return nil
	}
	hay := []rune(text)
	needle := []rune(term)
	n := len(needle)

	var spans []buffer.Range
	for i := 0; i+n <= len(hay); {
		if hay[i] == needle[0] && equalRunes(hay[i:i+n], needle) {
			spans = append(spans, buffer.Range{Start: i, End: i + n})
			i += n
			continue
		}
		i++
	}
	return spans
}

func equalRunes(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
