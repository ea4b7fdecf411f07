// Package ber resolves BER indefinite-length encodings into definite form.
//
// The decoder in the parent package reports each element's declared length
// and value bytes exactly as they appear on the wire, so it only accepts
// definite lengths. Normalize rewrites indefinite-length elements (X.690
// section 8.1.3.6) into definite-length form and copies everything else
// through byte-for-byte: non-minimal length encodings, non-canonical
// BOOLEAN values, and redundant INTEGER padding all survive, because the
// whole point downstream is to show what the producer actually emitted.
package ber

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ASN.1 identifier octet constants (X.690 section 8.1.2).
const (
	tagConstructedBit byte = 0x20 // bit 6: constructed encoding flag
	tagNumMask        byte = 0x1F // bits 1-5: tag number within class
	tagLongFormMarker byte = 0x1F // all tag-number bits set indicates long-form tag
	tagMoreBytesBit   byte = 0x80 // set in long-form tag bytes when more bytes follow
)

// Length encoding constants (X.690 section 8.1.3).
const (
	lenIndefinite   byte = 0x80 // length byte value for BER indefinite-length encoding
	lenHighBit      byte = 0x80 // high bit of a length byte; set means long-form
	lenLongFormMask byte = 0x7F // masks the number-of-octets field in a long-form length byte
	lenShortFormMax      = 127  // maximum content length encodable in short-form (0-127)
	maxLenOctets         = 4    // largest long-form length field accepted
)

// End-of-contents constants (X.690 section 8.1.5).
// An indefinite-length element is terminated by two consecutive eocByte values.
const eocByte byte = 0x00

// maxNestingDepth bounds recursion through constructed elements. It is a
// resource guard against pathological nesting, set far above anything real
// encoders produce.
const maxNestingDepth = 1024

// Normalize reads BER-encoded elements from r until the input is exhausted
// and returns an equivalent stream in which every element carries a definite
// length. Indefinite-length elements are re-headered with the measured
// length of their resolved content; definite-length elements are copied
// through unchanged unless a nested indefinite element forces their length
// field to be recomputed.
//
// A zero-length element encoded with indefinite length is preserved as a
// present, zero-length definite element. This distinction matters for CMS
// SignedData, where an absent content field means a detached signature while
// a present zero-length field means a signed 0-byte payload.
func Normalize(r io.Reader) ([]byte, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ber: reading input: %w", err)
	}
	var buf bytes.Buffer
	pos := 0
	for pos < len(input) {
		n, _, err := resolve(input, pos, 0, &buf)
		if err != nil {
			return nil, err
		}
		pos += n
	}
	return buf.Bytes(), nil
}

// header holds one parsed identifier-and-length prefix.
type header struct {
	tag        byte // first identifier octet: class, constructed bit, low tag bits
	idLen      int  // identifier octet count; >1 for long-form tag numbers
	length     int  // content length; meaningful only when !indefinite
	headerLen  int  // total identifier plus length octets
	indefinite bool
}

func (h header) constructed() bool {
	return h.tag&tagConstructedBit != 0
}

// resolve rewrites the element at input[offset] into w with definite lengths
// only, returning the count of input bytes consumed and whether the output
// differs from the input. When nothing changed the element was copied
// verbatim, length encoding included.
func resolve(input []byte, offset, depth int, w *bytes.Buffer) (consumed int, rewritten bool, err error) {
	if depth > maxNestingDepth {
		return 0, false, errors.New("ber: nesting exceeds supported depth")
	}

	h, err := readHeader(input, offset)
	if err != nil {
		return 0, false, err
	}
	id := input[offset : offset+h.idLen]
	body := offset + h.headerLen

	if h.indefinite {
		// Only constructed elements may use indefinite length (X.690
		// section 8.1.3.2). Resolve the children up to the end-of-contents
		// marker, then emit a definite header for the measured content.
		if !h.constructed() {
			return 0, false, fmt.Errorf("ber: primitive element with indefinite length at offset %d", offset)
		}
		var inner bytes.Buffer
		pos := body
		for {
			if pos+1 >= len(input) {
				return 0, false, errors.New("ber: missing end-of-contents for indefinite-length element")
			}
			if input[pos] == eocByte && input[pos+1] == eocByte {
				pos += 2
				break
			}
			n, _, err := resolve(input, pos, depth+1, &inner)
			if err != nil {
				return 0, false, err
			}
			pos += n
		}
		writeHeader(w, id, inner.Len())
		w.Write(inner.Bytes())
		return pos - offset, true, nil
	}

	if h.length > len(input)-body {
		return 0, false, fmt.Errorf("ber: element length %d exceeds available input at offset %d", h.length, body)
	}
	end := body + h.length
	consumed = h.headerLen + h.length

	// Definite primitive: copy the element through untouched.
	if !h.constructed() {
		w.Write(input[offset:end])
		return consumed, false, nil
	}

	// Definite constructed: resolve the children to catch nested indefinite
	// elements. When none changed, copy the original element verbatim to
	// preserve its length encoding; otherwise the content size may have
	// changed, so re-emit the header with the measured length.
	var inner bytes.Buffer
	childRewritten := false
	pos := body
	for pos < end {
		n, rw, err := resolve(input[:end], pos, depth+1, &inner)
		if err != nil {
			return 0, false, err
		}
		childRewritten = childRewritten || rw
		pos += n
	}
	if !childRewritten {
		w.Write(input[offset:end])
		return consumed, false, nil
	}
	writeHeader(w, id, inner.Len())
	w.Write(inner.Bytes())
	return consumed, true, nil
}

// readHeader parses the identifier and length octets of the element starting
// at input[offset].
func readHeader(input []byte, offset int) (header, error) {
	if offset >= len(input) {
		return header{}, fmt.Errorf("ber: offset %d out of bounds (len %d)", offset, len(input))
	}

	h := header{tag: input[offset], idLen: 1}

	// Long-form tag numbers span multiple bytes; each byte has
	// tagMoreBytesBit set except the last.
	if h.tag&tagNumMask == tagLongFormMarker {
		for {
			if offset+h.idLen >= len(input) {
				return header{}, errors.New("ber: truncated long-form tag")
			}
			b := input[offset+h.idLen]
			h.idLen++
			if b&tagMoreBytesBit == 0 {
				break
			}
		}
	}
	h.headerLen = h.idLen

	if offset+h.headerLen >= len(input) {
		return header{}, errors.New("ber: truncated length field")
	}
	lenByte := input[offset+h.headerLen]
	h.headerLen++

	switch {
	case lenByte == lenIndefinite:
		h.indefinite = true
	case lenByte&lenHighBit == 0:
		// Short-form definite length (0-127).
		h.length = int(lenByte)
	default:
		// Long-form definite length: subsequent bytes encode the length value.
		numBytes := int(lenByte & lenLongFormMask)
		if numBytes > maxLenOctets {
			return header{}, fmt.Errorf("ber: unsupported length field: %d bytes", numBytes)
		}
		if offset+h.headerLen+numBytes > len(input) {
			return header{}, errors.New("ber: truncated long-form length")
		}
		for _, b := range input[offset+h.headerLen : offset+h.headerLen+numBytes] {
			h.length = h.length<<8 | int(b)
		}
		h.headerLen += numBytes
	}

	return h, nil
}

// writeHeader writes the identifier octets verbatim followed by a minimal
// definite-length encoding of length.
func writeHeader(w *bytes.Buffer, id []byte, length int) {
	w.Write(id)
	switch {
	case length <= lenShortFormMax:
		w.WriteByte(byte(length))
	case length < 1<<8:
		w.WriteByte(lenHighBit | 1)
		w.WriteByte(byte(length))
	case length < 1<<16:
		w.WriteByte(lenHighBit | 2)
		w.WriteByte(byte(length >> 8))
		w.WriteByte(byte(length))
	case length < 1<<24:
		w.WriteByte(lenHighBit | 3)
		w.WriteByte(byte(length >> 16))
		w.WriteByte(byte(length >> 8))
		w.WriteByte(byte(length))
	default:
		w.WriteByte(lenHighBit | 4)
		w.WriteByte(byte(length >> 24))
		w.WriteByte(byte(length >> 16))
		w.WriteByte(byte(length >> 8))
		w.WriteByte(byte(length))
	}
}
