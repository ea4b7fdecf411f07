package asn1scan

import (
	"fmt"
	"io"
	"strings"
)

// Display layout constants.
const (
	valueLimit    = 128 // longest display value printed on a line
	binValueLimit = 64  // tighter limit for OCTET STRING and BIT STRING values
	valueColumn   = 50  // minimum running width before the ":value" suffix
)

// formatter renders one output line per emitted element.
type formatter struct {
	w            io.Writer
	initialDepth int
}

// emit writes one line: a "  d=%2d, l=%4d: " prefix, one indent space per
// level below the initial depth, the label plus three trailing spaces, and,
// when a value is present, two-space padding until the running width reaches
// valueColumn (preceded by a single alignment space when the width is even)
// followed by ":value". Values over valueLimit characters are dropped,
// as are OCTET STRING and BIT STRING values over binValueLimit; the element
// then prints as a bare label line.
func (f *formatter) emit(label string, depth, length int, value string) error {
	if len(value) > valueLimit {
		value = ""
	}
	if len(value) > binValueLimit && (label == "OCTET STRING" || label == "BIT STRING") {
		value = ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  d=%2d, l=%4d: ", depth, length)
	written := b.Len()
	for i := 0; i < depth-f.initialDepth; i++ {
		b.WriteByte(' ')
		written++
	}
	b.WriteString(label)
	b.WriteString("   ")
	written += len(label) + 3

	if value != "" {
		if written%2 == 0 {
			b.WriteByte(' ')
		}
		for written < valueColumn {
			b.WriteString("  ")
			written += 2
		}
		b.WriteByte(':')
		b.WriteString(value)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(f.w, b.String())
	return err
}
