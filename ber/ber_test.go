package ber

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    []byte
		wantErr bool
	}{
		// --- Definite-length inputs copied through verbatim ---
		{
			name:  "definite: simple INTEGER",
			input: []byte{0x02, 0x01, 0x01},
			want:  []byte{0x02, 0x01, 0x01},
		},
		{
			name:  "definite: SEQUENCE with nested elements",
			input: []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02},
			want:  []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02},
		},
		{
			name:  "definite: empty SEQUENCE",
			input: []byte{0x30, 0x00},
			want:  []byte{0x30, 0x00},
		},
		{
			name:  "definite: two top-level elements both copied",
			input: []byte{0x02, 0x01, 0x2A, 0x04, 0x02, 0xAB, 0xCD},
			want:  []byte{0x02, 0x01, 0x2A, 0x04, 0x02, 0xAB, 0xCD},
		},

		// --- Wire quirks that must survive untouched ---
		// The output feeds a dump tool, so the original encoding is the
		// interesting part. Only indefinite lengths get rewritten.
		{
			name: "non-minimal long-form length preserved",
			// 0x81 0x03 is a needlessly long encoding of length 3. DER would
			// forbid it; the dump must still report l=3 with these exact bytes.
			input: []byte{0x04, 0x81, 0x03, 0x01, 0x02, 0x03},
			want:  []byte{0x04, 0x81, 0x03, 0x01, 0x02, 0x03},
		},
		{
			name:  "non-canonical BOOLEAN TRUE byte preserved",
			input: []byte{0x01, 0x01, 0x42},
			want:  []byte{0x01, 0x01, 0x42},
		},
		{
			name:  "INTEGER with redundant leading zero preserved",
			input: []byte{0x02, 0x03, 0x00, 0x00, 0x01},
			want:  []byte{0x02, 0x03, 0x00, 0x00, 0x01},
		},
		{
			name: "constructed OCTET STRING chunks preserved, not flattened",
			input: []byte{
				0x24, 0x08, // constructed OCTET STRING, length 8
				0x04, 0x03, 0x01, 0x02, 0x03, // chunk 1
				0x04, 0x01, 0x04, // chunk 2
			},
			want: []byte{
				0x24, 0x08,
				0x04, 0x03, 0x01, 0x02, 0x03,
				0x04, 0x01, 0x04,
			},
		},

		// --- Indefinite-length resolution ---
		{
			name: "indefinite-length SEQUENCE with content",
			input: []byte{
				0x30, 0x80, // SEQUENCE, indefinite length
				0x02, 0x01, 0x2A, // INTEGER 42
				0x00, 0x00, // end-of-contents
			},
			want: []byte{
				0x30, 0x03, // SEQUENCE, length 3
				0x02, 0x01, 0x2A, // INTEGER 42
			},
		},
		{
			// A zero-length value with indefinite encoding must be preserved
			// as a present-but-empty element, not dropped.
			name: "indefinite-length constructed OCTET STRING with zero-length content",
			input: []byte{
				0x24, 0x80, // constructed OCTET STRING, indefinite length
				0x00, 0x00, // end-of-contents
			},
			want: []byte{
				0x24, 0x00, // constructed OCTET STRING, length 0
			},
		},
		{
			// CMS eContent shape for a signed 0-byte payload: [0] EXPLICIT
			// wrapping a zero-length OCTET STRING, both indefinite.
			name: "indefinite-length explicit [0] wrapping zero-length OCTET STRING",
			input: []byte{
				0xA0, 0x80, // [0] EXPLICIT, indefinite length
				0x24, 0x80, // constructed OCTET STRING, indefinite length
				0x00, 0x00, // end-of-contents for OCTET STRING
				0x00, 0x00, // end-of-contents for [0]
			},
			want: []byte{
				0xA0, 0x02, // [0] EXPLICIT, length 2
				0x24, 0x00, // constructed OCTET STRING, length 0
			},
		},
		{
			name: "nested indefinite-length containers",
			input: []byte{
				0x30, 0x80, // SEQUENCE, indefinite
				0x30, 0x80, // nested SEQUENCE, indefinite
				0x02, 0x01, 0x07, // INTEGER 7
				0x00, 0x00, // end-of-contents inner
				0x00, 0x00, // end-of-contents outer
			},
			want: []byte{
				0x30, 0x05, // SEQUENCE, length 5
				0x30, 0x03, // nested SEQUENCE, length 3
				0x02, 0x01, 0x07, // INTEGER 7
			},
		},
		{
			// The definite outer length no longer matches once the inner
			// indefinite element shrinks, so the outer header is recomputed.
			name: "definite parent re-headered around resolved indefinite child",
			input: []byte{
				0x30, 0x07, // SEQUENCE, definite length 7
				0x30, 0x80, // nested SEQUENCE, indefinite
				0x02, 0x01, 0x07, // INTEGER 7
				0x00, 0x00, // end-of-contents
			},
			want: []byte{
				0x30, 0x05, // SEQUENCE, recomputed length 5
				0x30, 0x03, // nested SEQUENCE, length 3
				0x02, 0x01, 0x07, // INTEGER 7
			},
		},
		{
			// This models a real CMS message where the outer SEQUENCE uses BER
			// indefinite length but the signedAttrs SET is already DER-encoded.
			// The inner content bytes must come through verbatim.
			name: "outer indefinite-length with inner DER-encoded SET preserved",
			input: []byte{
				0x30, 0x80, // outer SEQUENCE, indefinite
				0x31, 0x06, // SET (signedAttrs), definite
				0x02, 0x01, 0x01, // INTEGER 1
				0x02, 0x01, 0x02, // INTEGER 2
				0x00, 0x00, // end-of-contents for outer SEQUENCE
			},
			want: []byte{
				0x30, 0x08, // outer SEQUENCE, definite
				0x31, 0x06, // SET preserved exactly as-is
				0x02, 0x01, 0x01,
				0x02, 0x01, 0x02,
			},
		},
		{
			// Long-form tag numbers: the identifier octets are copied into the
			// rewritten header unchanged.
			name: "indefinite-length element with long-form tag number",
			input: []byte{
				0xBF, 0x64, 0x80, // context-specific constructed tag 100, indefinite
				0x02, 0x01, 0x2A, // INTEGER 42
				0x00, 0x00, // end-of-contents
			},
			want: []byte{
				0xBF, 0x64, 0x03, // context-specific constructed tag 100, length 3
				0x02, 0x01, 0x2A,
			},
		},

		// --- Empty input ---
		{
			name:  "empty input yields empty output",
			input: []byte{},
			want:  nil,
		},

		// --- Error cases ---
		{
			name:    "truncated element value",
			input:   []byte{0x02, 0x05, 0x01},
			wantErr: true,
		},
		{
			name:    "truncated length field",
			input:   []byte{0x02},
			wantErr: true,
		},
		{
			name:    "trailing garbage after complete element",
			input:   []byte{0x02, 0x01, 0x01, 0x02},
			wantErr: true,
		},
		{
			name:    "missing end-of-contents for indefinite-length element",
			input:   []byte{0x30, 0x80, 0x02, 0x01, 0x01},
			wantErr: true,
		},
		{
			// X.690 section 8.1.3.2: indefinite length requires the
			// constructed bit.
			name:    "primitive element with indefinite length",
			input:   []byte{0x04, 0x80, 0x00, 0x00},
			wantErr: true,
		},
		{
			name:    "oversized length field",
			input:   []byte{0x04, 0x85, 0x01, 0x02, 0x03, 0x04, 0x05, 0xAA},
			wantErr: true,
		},
		{
			name:    "truncated long-form tag",
			input:   []byte{0xBF},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(bytes.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestNormalize_ZeroBytePayloadDistinction verifies that a zero-length value
// with indefinite encoding is never collapsed to absence. In CMS SignedData
// this distinguishes a signed 0-byte payload from a detached signature where
// the eContent field is missing entirely.
func TestNormalize_ZeroBytePayloadDistinction(t *testing.T) {
	berInput := []byte{
		0xA0, 0x80, // [0] EXPLICIT, indefinite
		0x24, 0x80, // constructed OCTET STRING, indefinite
		0x00, 0x00, // end-of-contents OCTET STRING
		0x00, 0x00, // end-of-contents [0]
	}

	got, err := Normalize(bytes.NewReader(berInput))
	require.NoError(t, err)

	want := []byte{
		0xA0, 0x02, // [0] EXPLICIT, length 2
		0x24, 0x00, // constructed OCTET STRING, length 0
	}
	assert.Equal(t, want, got, "zero-byte payload must stay present, not become absent")
	assert.NotEmpty(t, got, "normalized output must not be empty for a 0-byte payload")
}

var benchResult []byte

func BenchmarkNormalize(b *testing.B) {
	input := buildBenchmarkInput()

	var r []byte
	for i := 0; i < b.N; i++ {
		var err error
		r, err = Normalize(bytes.NewReader(input))
		if err != nil {
			b.Fatal(err)
		}
	}
	benchResult = r
}

// buildBenchmarkInput constructs a BER-encoded SEQUENCE with indefinite length
// containing 20 INTEGER elements.
func buildBenchmarkInput() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x30, 0x80}) // SEQUENCE, indefinite
	for i := 0; i < 20; i++ {
		buf.Write([]byte{0x02, 0x01, byte(i + 1)})
	}
	buf.Write([]byte{0x00, 0x00}) // end-of-contents
	return buf.Bytes()
}
