// Package charset transcodes ASN.1 character string payloads between their
// declared encodings and the display encodings.
//
// Decoding is best-effort by policy: malformed input never fails, it decodes
// with U+FFFD replacement characters, so a damaged string still produces
// display output.
package charset

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Charset identifies the declared encoding of a string payload.
type Charset int

const (
	// Latin1 is ISO 8859-1. The ASCII-subset string types (printable,
	// numeric, IA5, visible) and T.61 strings are decoded under it: the
	// ASCII range is identical, and bytes above it map to the Latin-1
	// repertoire rather than failing.
	Latin1 Charset = iota
	// UTF8 is passed through after validation.
	UTF8
	// UTF16BE is big-endian UTF-16 without a byte order mark, the encoding
	// of BMP strings.
	UTF16BE
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// ToUTF8 decodes raw bytes in the given source charset to a UTF-8 string.
// Undecodable units become U+FFFD.
func ToUTF8(src Charset, raw []byte) string {
	switch src {
	case UTF8:
		return strings.ToValidUTF8(string(raw), "�")
	case UTF16BE:
		decoded, err := utf16be.NewDecoder().Bytes(raw)
		if err != nil {
			return strings.ToValidUTF8(string(decoded), "�")
		}
		return string(decoded)
	default:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			// ISO 8859-1 assigns every byte value; the decoder cannot fail.
			return string(raw)
		}
		return string(decoded)
	}
}

// ToLatin1 renders a UTF-8 string in ISO 8859-1 for Latin-1 display output.
// Runes outside the Latin-1 range render as '?'.
func ToLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0xFF {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte(r))
	}
	return b.String()
}
