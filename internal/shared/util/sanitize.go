package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFileName reduces a client-supplied file name to a flat ASCII name
// safe to join onto a storage directory. The result keeps letters, digits,
// '_', '-' and '.', never contains a path separator and never starts or
// ends with '.' or '_'. It may be empty.
func SecureFileName(name string) string {
	s := norm.NFKD.String(name)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeFileChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}
