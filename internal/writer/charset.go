package writer

import (
	"golang.org/x/text/encoding/charmap"
)

// EncodeLatin1 transcodes UTF-8 text to ISO-8859-1. Characters outside the
// charset become '?'.
func EncodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}
