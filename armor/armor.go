// Package armor detects and unwraps PEM-style textual armor.
//
// Binary DER structures are frequently shipped base64-encoded between
// "-----BEGIN X-----" and "-----END X-----" marker lines, often preceded by
// unrelated plain text such as a certificate dump or an email body. This
// package finds such a block, tolerates the surrounding noise, and returns
// the raw bytes.
package armor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	armorBegin = []byte("-----BEGIN ")
	armorEnd   = []byte("-----END ")
	armorTail  = []byte("-----")
)

// matchWindow bounds how far into the input Matches looks for a BEGIN
// marker. Armored files carry at most a short preamble before the block;
// scanning arbitrarily deep would misclassify large binary inputs that
// happen to embed the marker text.
const matchWindow = 4096

// ErrNoArmor is returned by Decode when the input contains no BEGIN marker.
var ErrNoArmor = errors.New("armor: no BEGIN marker found")

// Matches reports whether data appears to contain an armored block, looking
// for a BEGIN marker within the first matchWindow bytes.
func Matches(data []byte) bool {
	window := data
	if len(window) > matchWindow {
		window = window[:matchWindow]
	}
	return bytes.Contains(window, armorBegin)
}

// Decode extracts and decodes the first armored block in data. Text before
// the BEGIN line and after the END line is ignored. Lines between the
// markers containing a ':' are encapsulated headers (Proc-Type, DEK-Info and
// friends) and are skipped; ':' never occurs in base64, so this cannot eat
// payload. The END label must match the BEGIN label.
func Decode(data []byte) ([]byte, error) {
	begin := bytes.Index(data, armorBegin)
	if begin < 0 {
		return nil, ErrNoArmor
	}
	rest := data[begin+len(armorBegin):]

	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 {
		return nil, errors.New("armor: unterminated BEGIN line")
	}
	beginLine := bytes.TrimSuffix(rest[:nl], []byte("\r"))
	if !bytes.HasSuffix(beginLine, armorTail) {
		return nil, errors.New("armor: malformed BEGIN line")
	}
	label := string(beginLine[:len(beginLine)-len(armorTail)])
	if label == "" {
		return nil, errors.New("armor: empty label in BEGIN line")
	}
	body := rest[nl+1:]

	footer := append(append(append([]byte(nil), armorEnd...), label...), armorTail...)
	end := bytes.Index(body, footer)
	if end < 0 {
		return nil, fmt.Errorf("armor: missing END line for %q", label)
	}

	var b64 bytes.Buffer
	for _, line := range bytes.Split(body[:end], []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.IndexByte(line, ':') >= 0 {
			continue
		}
		b64.Write(line)
	}

	decoded, err := base64.StdEncoding.DecodeString(b64.String())
	if err != nil {
		return nil, fmt.Errorf("armor: invalid base64 payload: %w", err)
	}
	return decoded, nil
}
