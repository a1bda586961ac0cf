package helpers

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var lat = []*unicode.RangeTable{unicode.Letter, unicode.Number}
var nop = []*unicode.RangeTable{unicode.Mark, unicode.Sk, unicode.Lm}

// Truncate s to at most length runes.
func Truncate(s string, length int) string {
	var numRunes = 0
	for index := range s {
		numRunes++
		if numRunes > length {
			return s[:index]
		}
	}
	return s
}

func StrSlug(s string) string {

	// Trim before counting
	s = strings.Trim(s, " ")

	buf := make([]rune, 0, len(s))
	dash := false
	for _, r := range norm.NFKD.String(s) {
		switch {
		// unicode 'letters' like mandarin characters pass through
		case unicode.IsOneOf(lat, r):
			buf = append(buf, unicode.ToLower(r))
			dash = true
		case unicode.IsOneOf(nop, r):
			// skip
		case dash:
			buf = append(buf, '-')
			dash = false
		}
	}
	if i := len(buf) - 1; i >= 0 && buf[i] == '-' {
		buf = buf[:i]
	}
	return string(buf)
}
