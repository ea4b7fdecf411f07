package asn1scan

import "strconv"

// Class is the tag class of an ASN.1 element, held in the two high bits of
// the first identifier octet (X.690 section 8.1.2.2).
type Class byte

const (
	ClassUniversal   Class = 0x00
	ClassApplication Class = 0x40
	ClassContext     Class = 0x80
	ClassPrivate     Class = 0xC0
)

// String returns the conventional name of the tag class.
func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContext:
		return "CONTEXT-SPECIFIC"
	case ClassPrivate:
		return "PRIVATE"
	}
	return "UNKNOWN"
}

// Tag is an ASN.1 tag number. For ClassUniversal elements it selects the
// built-in type (X.680 table 1); for other classes it is an application-chosen
// number with no universal meaning.
type Tag int

const (
	TagBoolean         Tag = 1
	TagInteger         Tag = 2
	TagBitString       Tag = 3
	TagOctetString     Tag = 4
	TagNull            Tag = 5
	TagOID             Tag = 6
	TagUTF8String      Tag = 12
	TagSequence        Tag = 16
	TagSet             Tag = 17
	TagNumericString   Tag = 18
	TagPrintableString Tag = 19
	TagT61String       Tag = 20
	TagIA5String       Tag = 22
	TagUTCTime         Tag = 23
	TagGeneralizedTime Tag = 24
	TagVisibleString   Tag = 26
	TagBMPString       Tag = 30
)

// Node is one decoded tag/length/value element. A Node is ephemeral: the
// walker constructs it from the scanner, decodes or recurses into it, emits
// its line, and discards it. Value aliases the input buffer and must not be
// retained past the decode call that produced it.
type Node struct {
	Class       Class
	Tag         Tag
	Constructed bool
	Value       []byte
}

// Length returns the byte count of the element's value window.
func (n Node) Length() int {
	return len(n.Value)
}

// typeName returns the display label for a universal type tag.
func typeName(t Tag) string {
	switch t {
	case TagBoolean:
		return "BOOLEAN"
	case TagInteger:
		return "INTEGER"
	case TagBitString:
		return "BIT STRING"
	case TagOctetString:
		return "OCTET STRING"
	case TagNull:
		return "NULL"
	case TagOID:
		return "OBJECT"
	case TagUTF8String:
		return "UTF8 STRING"
	case TagSequence:
		return "SEQUENCE"
	case TagSet:
		return "SET"
	case TagNumericString:
		return "NUMERIC STRING"
	case TagPrintableString:
		return "PRINTABLE STRING"
	case TagT61String:
		return "T61 STRING"
	case TagIA5String:
		return "IA5 STRING"
	case TagUTCTime:
		return "UTC TIME"
	case TagGeneralizedTime:
		return "GENERALIZED TIME"
	case TagVisibleString:
		return "VISIBLE STRING"
	case TagBMPString:
		return "BMP STRING"
	}
	return "(UNKNOWN)"
}

// containerLabel returns the display label for a constructed element.
// SEQUENCE and SET keep their bare names. Other universal constructed types
// are marked "(cons)". Non-universal containers are labeled with the raw tag
// number plus one suffix per class bit set; the private class sets both bits,
// so it carries all three suffixes.
func containerLabel(n Node) string {
	if n.Class == ClassUniversal {
		switch n.Tag {
		case TagSequence:
			return "SEQUENCE"
		case TagSet:
			return "SET"
		}
		return typeName(n.Tag) + " (cons)"
	}
	label := "cons [" + strconv.Itoa(int(n.Tag)) + "]"
	if n.Class&ClassApplication != 0 {
		label += " appl"
	}
	if n.Class&ClassContext != 0 {
		label += " context"
	}
	if n.Class == ClassPrivate {
		label += " private"
	}
	return label
}

// leafLabel returns the display label for a primitive element: the type name
// for universal tags, the bracketed raw tag number otherwise.
func leafLabel(n Node) string {
	if n.Class == ClassUniversal {
		return typeName(n.Tag)
	}
	return "[" + strconv.Itoa(int(n.Tag)) + "]"
}
