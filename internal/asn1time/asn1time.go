/*
Package asn1time parses the ASN.1 time grammars, UTCTime and GeneralizedTime,
and renders parsed values in a fixed human-readable form.
*/
package asn1time

import (
	"fmt"
	"time"
)

// utcLayouts cover the UTCTime grammar (X.680 section 47): two-digit year,
// optional seconds, then Z, a numeric zone offset, or nothing (local time).
// Go's reference-time layouts accept "Z0700" for either Z or an offset.
var utcLayouts = []string{
	"060102150405Z0700",
	"0601021504Z0700",
	"060102150405",
	"0601021504",
}

// generalizedLayouts cover the GeneralizedTime grammar (X.680 section 46):
// four-digit year, hours with optional minutes and seconds, then Z, an
// offset, or nothing. Fractional seconds after the seconds field are
// accepted by the parser without appearing in the layout.
var generalizedLayouts = []string{
	"20060102150405Z0700",
	"200601021504Z0700",
	"2006010215Z0700",
	"20060102150405",
	"200601021504",
	"2006010215",
}

// ParseUTC parses a UTCTime string. Two-digit years follow the RFC 5280
// section 4.1.2.5.1 pivot: values from 50 are 19xx, values below are 20xx.
func ParseUTC(s string) (time.Time, error) {
	t, err := parse(utcLayouts, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid UTCTime %q", s)
	}
	// time.Parse pivots two-digit years at 69; move 2050-2068 back a century
	// to match the 50 pivot.
	if t.Year() >= 2050 {
		t = t.AddDate(-100, 0, 0)
	}
	return t, nil
}

// ParseGeneralized parses a GeneralizedTime string.
func ParseGeneralized(s string) (time.Time, error) {
	t, err := parse(generalizedLayouts, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid GeneralizedTime %q", s)
	}
	return t, nil
}

func parse(layouts []string, s string) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Readable renders a parsed time as "YYYY/MM/DD HH:MM:SS UTC".
func Readable(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d:%02d UTC",
		u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
}
