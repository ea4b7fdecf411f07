package asn1scan

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/mvanek/asn1scan/internal/asn1time"
	"github.com/mvanek/asn1scan/internal/charset"
)

// intSignBit is the high bit of the leading INTEGER content byte; set means
// the two's-complement value is negative (X.690 section 8.3.3).
const intSignBit byte = 0x80

// smallIntegerBits is the magnitude size up to which INTEGER values display
// in decimal. Larger values display as hexadecimal.
const smallIntegerBits = 16

// maxOIDComponent caps a single object identifier subidentifier.
const maxOIDComponent uint64 = math.MaxUint64

// errUnknownType marks a primitive element whose type and class combination
// has no decode strategy. The walker reports it through the diagnostic
// channel and moves to the next sibling; it never escapes the package.
var errUnknownType = errors.New("unrecognized type and class combination")

// decoder interprets primitive value bytes under their type tags.
type decoder struct {
	cfg *config
}

// decodeFunc is the decode strategy for one primitive universal type.
type decodeFunc func(d *decoder, n Node) (string, error)

// universalDecoders maps each handled primitive universal tag to its decode
// strategy. Primitive universal tags outside the table (ENUMERATED, REAL,
// and the rest) surface as errUnknownType.
var universalDecoders = map[Tag]decodeFunc{
	TagBoolean:         (*decoder).decodeBoolean,
	TagInteger:         (*decoder).decodeInteger,
	TagBitString:       (*decoder).decodeBitString,
	TagOctetString:     (*decoder).decodeOctetString,
	TagNull:            (*decoder).decodeNull,
	TagOID:             (*decoder).decodeOID,
	TagUTF8String:      stringDecoder(charset.UTF8),
	TagNumericString:   stringDecoder(charset.Latin1),
	TagPrintableString: stringDecoder(charset.Latin1),
	TagT61String:       stringDecoder(charset.Latin1),
	TagIA5String:       stringDecoder(charset.Latin1),
	TagVisibleString:   stringDecoder(charset.Latin1),
	TagBMPString:       stringDecoder(charset.UTF16BE),
	TagUTCTime:         timeDecoder(asn1time.ParseUTC),
	TagGeneralizedTime: timeDecoder(asn1time.ParseGeneralized),
}

// decode produces the display label and display value for a primitive
// element. A returned error of category CodeValue means the label is still
// usable; the value bytes could not be interpreted.
func (d *decoder) decode(n Node) (label, value string, err error) {
	if n.Class != ClassUniversal {
		return leafLabel(n), displayBytes(n.Value), nil
	}
	fn, ok := universalDecoders[n.Tag]
	if !ok {
		return "", "", errUnknownType
	}
	value, err = fn(d, n)
	return typeName(n.Tag), value, err
}

func (d *decoder) decodeBoolean(n Node) (string, error) {
	if len(n.Value) != 1 {
		return "", newError(CodeValue, fmt.Sprintf("BOOLEAN value must be 1 byte, got %d", len(n.Value)))
	}
	if n.Value[0] == 0 {
		return "false", nil
	}
	return "true", nil
}

// decodeInteger interprets the content as a two's-complement big-endian
// integer of arbitrary precision. Values whose magnitude fits in
// smallIntegerBits display in decimal; larger ones display as the uppercase
// hexadecimal of the magnitude.
func (d *decoder) decodeInteger(n Node) (string, error) {
	v, err := parseInteger(n.Value)
	if err != nil {
		return "", err
	}
	if v.BitLen() <= smallIntegerBits {
		return v.String(), nil
	}
	return hexUpper(v.Bytes()), nil
}

// parseInteger builds a signed arbitrary-precision integer from DER
// two's-complement content bytes (X.690 section 8.3).
func parseInteger(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, newError(CodeValue, "INTEGER value is empty")
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&intSignBit != 0 {
		// Negative: subtract 2^(8n) to undo the two's-complement bias.
		bias := new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8)
		v.Sub(v, bias)
	}
	return v, nil
}

// decodeBitString renders the bits of the value window in stream byte order,
// least-significant bit first within each byte, suppressing leading zero
// bits. An all-zero value renders as the empty string.
func (d *decoder) decodeBitString(n Node) (string, error) {
	var sb strings.Builder
	sb.Grow(len(n.Value) * 8)
	seen := false
	for _, octet := range n.Value {
		for k := 0; k < 8; k++ {
			bit := octet >> k & 1
			if bit == 1 {
				seen = true
			}
			if seen {
				sb.WriteByte('0' + bit)
			}
		}
	}
	return sb.String(), nil
}

func (d *decoder) decodeOctetString(n Node) (string, error) {
	return displayBytes(n.Value), nil
}

func (d *decoder) decodeNull(n Node) (string, error) {
	return "", nil
}

// decodeOID resolves the content to dotted decimal form and consults the
// registry for a symbolic name. A miss is not an error; the dotted form
// stands alone.
func (d *decoder) decodeOID(n Node) (string, error) {
	dotted, err := dottedOID(n.Value)
	if err != nil {
		return "", err
	}
	if name, ok := d.cfg.registry.Lookup(dotted); ok && name != dotted {
		return name + " [" + dotted + "]", nil
	}
	return dotted, nil
}

// dottedOID decodes object identifier content into dot-joined decimal form
// (X.690 section 8.19). The first subidentifier packs the first two
// components as first*40+second, with the first component capped at 2.
func dottedOID(b []byte) (string, error) {
	if len(b) == 0 {
		return "", newError(CodeValue, "OBJECT IDENTIFIER value is empty")
	}
	var comps []uint64
	var cur uint64
	for i, c := range b {
		if cur > maxOIDComponent>>7 {
			return "", newError(CodeValue, "OBJECT IDENTIFIER component overflow")
		}
		cur = cur<<7 | uint64(c&0x7F)
		if c&0x80 == 0 {
			comps = append(comps, cur)
			cur = 0
		} else if i == len(b)-1 {
			return "", newError(CodeValue, "truncated OBJECT IDENTIFIER component")
		}
	}

	var first, second uint64
	switch {
	case comps[0] < 40:
		first, second = 0, comps[0]
	case comps[0] < 80:
		first, second = 1, comps[0]-40
	default:
		first, second = 2, comps[0]-80
	}

	parts := make([]string, 0, len(comps)+1)
	parts = append(parts, strconv.FormatUint(first, 10), strconv.FormatUint(second, 10))
	for _, c := range comps[1:] {
		parts = append(parts, strconv.FormatUint(c, 10))
	}
	return strings.Join(parts, "."), nil
}

// stringDecoder builds the decode strategy for a character string type whose
// content is declared in the given charset. Transcoding never hard-fails:
// undecodable input decodes with replacement characters.
func stringDecoder(cs charset.Charset) decodeFunc {
	return func(d *decoder, n Node) (string, error) {
		s := charset.ToUTF8(cs, n.Value)
		if d.cfg.latin1 {
			return charset.ToLatin1(s), nil
		}
		return s, nil
	}
}

// timeDecoder builds the decode strategy for a timestamp type with the given
// grammar parser.
func timeDecoder(parse func(string) (time.Time, error)) decodeFunc {
	return func(d *decoder, n Node) (string, error) {
		t, err := parse(string(n.Value))
		if err != nil {
			return "", wrapError(CodeValue, "invalid time value", err)
		}
		return asn1time.Readable(t), nil
	}
}

// displayBytes renders untyped bytes as text when every byte passes isText,
// as uppercase hexadecimal otherwise.
func displayBytes(b []byte) string {
	if isText(b) {
		return string(b)
	}
	return hexUpper(b)
}

// isText reports whether every byte is printable ASCII or ASCII whitespace.
// It is a display policy only, deciding text versus hex rendering for byte
// strings with no declared charset.
func isText(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= 0x21 && c <= 0x7E:
		case c == ' ', c == '\t', c == '\n', c == '\v', c == '\f', c == '\r':
		default:
			return false
		}
	}
	return true
}

func hexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
