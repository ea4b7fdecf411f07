package asn1scan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerNext(t *testing.T) {
	tests := []struct {
		name            string
		input           []byte
		wantClass       Class
		wantTag         Tag
		wantConstructed bool
		wantValue       []byte
	}{
		{
			name:      "universal primitive INTEGER",
			input:     []byte{0x02, 0x01, 0x2A},
			wantClass: ClassUniversal,
			wantTag:   TagInteger,
			wantValue: []byte{0x2A},
		},
		{
			name:            "universal constructed SEQUENCE",
			input:           []byte{0x30, 0x03, 0x02, 0x01, 0x2A},
			wantClass:       ClassUniversal,
			wantTag:         TagSequence,
			wantConstructed: true,
			wantValue:       []byte{0x02, 0x01, 0x2A},
		},
		{
			name:      "zero-length NULL",
			input:     []byte{0x05, 0x00},
			wantClass: ClassUniversal,
			wantTag:   TagNull,
			wantValue: []byte{},
		},
		{
			name:      "context-specific primitive tag 0",
			input:     []byte{0x80, 0x01, 0xFF},
			wantClass: ClassContext,
			wantTag:   0,
			wantValue: []byte{0xFF},
		},
		{
			name:      "application primitive tag 1",
			input:     []byte{0x41, 0x01, 0x07},
			wantClass: ClassApplication,
			wantTag:   1,
			wantValue: []byte{0x07},
		},
		{
			name:            "private constructed tag 5",
			input:           []byte{0xE5, 0x00},
			wantClass:       ClassPrivate,
			wantTag:         5,
			wantConstructed: true,
			wantValue:       []byte{},
		},
		{
			// 0x5F marks a long-form tag; 0x21 = 33 fits in one base-128 byte.
			name:      "long-form tag in one continuation byte",
			input:     []byte{0x5F, 0x21, 0x01, 0x55},
			wantClass: ClassApplication,
			wantTag:   33,
			wantValue: []byte{0x55},
		},
		{
			// 0x81 0x00 = (1 << 7) | 0 = 128 across two base-128 bytes.
			name:      "long-form tag in two continuation bytes",
			input:     []byte{0x1F, 0x81, 0x00, 0x01, 0xAA},
			wantClass: ClassUniversal,
			wantTag:   128,
			wantValue: []byte{0xAA},
		},
		{
			// 0x82 0x01 0x00 is the long-form encoding of length 256.
			name:      "long-form length",
			input:     append([]byte{0x04, 0x82, 0x01, 0x00}, bytes.Repeat([]byte{0xEE}, 256)...),
			wantClass: ClassUniversal,
			wantTag:   TagOctetString,
			wantValue: bytes.Repeat([]byte{0xEE}, 256),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(tt.input)
			got, err := s.Next()
			require.NoError(t, err)

			assert.Equal(t, tt.wantClass, got.Class)
			assert.Equal(t, tt.wantTag, got.Tag)
			assert.Equal(t, tt.wantConstructed, got.Constructed)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, len(tt.wantValue), got.Length())
			assert.False(t, s.More(), "input should be fully consumed")
		})
	}
}

func TestScannerNext_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  "empty input",
			input: []byte{},
		},
		{
			name:  "missing length field",
			input: []byte{0x02},
		},
		{
			name:  "truncated long-form tag",
			input: []byte{0x1F, 0x81},
		},
		{
			// Five continuation bytes push the tag number past any value
			// real encoders produce.
			name:  "tag number overflow",
			input: []byte{0x1F, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F, 0x00},
		},
		{
			name:  "truncated long-form length",
			input: []byte{0x04, 0x82, 0x01},
		},
		{
			name:  "length field over four bytes",
			input: []byte{0x04, 0x85, 0x01, 0x02, 0x03, 0x04, 0x05},
		},
		{
			name:  "declared length exceeds remaining input",
			input: []byte{0x02, 0x05, 0x01},
		},
		{
			name:  "indefinite length rejected",
			input: []byte{0x30, 0x80, 0x02, 0x01, 0x01, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.input).Next()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), "offset")
		})
	}
}

// TestScannerNext_SiblingStream verifies position tracking across a stream of
// top-level siblings.
func TestScannerNext_SiblingStream(t *testing.T) {
	input := []byte{
		0x02, 0x01, 0x2A, // INTEGER 42
		0x05, 0x00, // NULL
		0x04, 0x02, 0xAB, 0xCD, // OCTET STRING
	}
	s := NewScanner(input)

	assert.Equal(t, 0, s.Offset())
	require.True(t, s.More())

	first, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, TagInteger, first.Tag)
	assert.Equal(t, 3, s.Offset())

	second, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, TagNull, second.Tag)
	assert.Equal(t, 5, s.Offset())

	require.True(t, s.More())
	third, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, TagOctetString, third.Tag)
	assert.Equal(t, []byte{0xAB, 0xCD}, third.Value)

	assert.False(t, s.More())
	assert.Equal(t, len(input), s.Offset())
}

// TestScannerNext_ValueAliasesInput verifies the documented aliasing: value
// windows share the input's backing array rather than copying.
func TestScannerNext_ValueAliasesInput(t *testing.T) {
	input := []byte{0x04, 0x02, 0x01, 0x02}
	s := NewScanner(input)

	n, err := s.Next()
	require.NoError(t, err)

	input[2] = 0xFF
	assert.Equal(t, []byte{0xFF, 0x02}, n.Value)
}
