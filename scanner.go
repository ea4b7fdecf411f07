package asn1scan

import "fmt"

// Identifier octet structure constants (X.690 section 8.1.2).
const (
	classMask      byte = 0xC0 // bits 7-8: tag class
	constructedBit byte = 0x20 // bit 6: constructed encoding flag
	tagNumMask     byte = 0x1F // bits 1-5: tag number within class
	longFormTag    byte = 0x1F // all tag-number bits set indicates long-form tag
	moreBytesBit   byte = 0x80 // set in long-form tag bytes when more bytes follow
)

// Length octet constants (X.690 section 8.1.3).
const (
	lenIndefinite   byte = 0x80 // indefinite-length marker; rejected here, see ber.Normalize
	lenHighBit      byte = 0x80 // high bit of a length byte; set means long-form
	lenLongFormMask byte = 0x7F // masks the number-of-octets field in a long-form length byte
	maxLenOctets         = 4    // largest long-form length field accepted
)

// maxTagNumber caps long-form tag numbers. Four base-128 continuation bytes
// cover every tag number that occurs in practice.
const maxTagNumber = 1 << 28

// Scanner reads successive tag/length/value elements from a definite-length
// encoded byte stream. The zero position is the start of the stream; Next
// advances past each element's header and value window.
//
// Indefinite-length encodings are not accepted: resolve them upstream with
// ber.Normalize before scanning.
type Scanner struct {
	data []byte
	pos  int
}

// NewScanner returns a Scanner positioned at the start of data. The scanner
// aliases data; value windows of returned Nodes share its backing array.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// More reports whether any bytes remain before the end of the stream.
func (s *Scanner) More() bool {
	return s.pos < len(s.data)
}

// Offset returns the current byte position within the stream.
func (s *Scanner) Offset() int {
	return s.pos
}

// Next reads the next element header and returns its Node with the value
// window attached, advancing the scanner past the whole element. It returns
// ErrMalformed when the header cannot be parsed or the declared length
// exceeds the remaining input; the scanner position is then undefined.
// Callers must check More before calling Next.
func (s *Scanner) Next() (Node, error) {
	start := s.pos
	if s.pos >= len(s.data) {
		return Node{}, newError(CodeMalformed, fmt.Sprintf("unexpected end of input at offset %d", start))
	}

	id := s.data[s.pos]
	s.pos++

	n := Node{
		Class:       Class(id & classMask),
		Tag:         Tag(id & tagNumMask),
		Constructed: id&constructedBit != 0,
	}

	// Long-form tag numbers span multiple bytes; each byte holds 7 value bits
	// and has moreBytesBit set except the last (X.690 section 8.1.2.4).
	if id&tagNumMask == longFormTag {
		num := 0
		for {
			if s.pos >= len(s.data) {
				return Node{}, newError(CodeMalformed, fmt.Sprintf("truncated long-form tag at offset %d", start))
			}
			b := s.data[s.pos]
			s.pos++
			num = num<<7 | int(b&^moreBytesBit)
			if num > maxTagNumber {
				return Node{}, newError(CodeMalformed, fmt.Sprintf("tag number too large at offset %d", start))
			}
			if b&moreBytesBit == 0 {
				break
			}
		}
		n.Tag = Tag(num)
	}

	if s.pos >= len(s.data) {
		return Node{}, newError(CodeMalformed, fmt.Sprintf("missing length field at offset %d", start))
	}
	lenByte := s.data[s.pos]
	s.pos++

	var length int
	switch {
	case lenByte == lenIndefinite:
		return Node{}, newError(CodeMalformed,
			fmt.Sprintf("indefinite length at offset %d; input must be normalized to definite lengths", start))
	case lenByte&lenHighBit == 0:
		// Short-form definite length (0-127).
		length = int(lenByte)
	default:
		// Long-form definite length: subsequent bytes encode the length value.
		numBytes := int(lenByte & lenLongFormMask)
		if numBytes > maxLenOctets {
			return Node{}, newError(CodeMalformed,
				fmt.Sprintf("unsupported length field of %d bytes at offset %d", numBytes, start))
		}
		if s.pos+numBytes > len(s.data) {
			return Node{}, newError(CodeMalformed, fmt.Sprintf("truncated long-form length at offset %d", start))
		}
		for _, b := range s.data[s.pos : s.pos+numBytes] {
			length = length<<8 | int(b)
		}
		s.pos += numBytes
	}

	if length > len(s.data)-s.pos {
		return Node{}, newError(CodeMalformed,
			fmt.Sprintf("declared length %d exceeds %d remaining bytes at offset %d", length, len(s.data)-s.pos, start))
	}

	n.Value = s.data[s.pos : s.pos+length]
	s.pos += length
	return n, nil
}
