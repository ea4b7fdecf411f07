package asn1scan

import "io"

// Dump decodes the definite-length encoded elements in der and writes one
// formatted line per element to w. Top-level elements are decoded in order
// until the input is exhausted. Lines are written as elements are visited:
// when a malformed element aborts the decode partway, everything emitted for
// earlier elements has already been written and stands as valid output.
//
// Input carrying indefinite-length encodings must be resolved first; see the
// ber subpackage.
func Dump(w io.Writer, der []byte, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	wk := &walker{
		cfg: cfg,
		dec: &decoder{cfg: cfg},
		out: &textSink{f: &formatter{w: w, initialDepth: cfg.initialDepth}},
	}
	return wk.walk(der, cfg.initialDepth)
}

// Element is one decoded element in the tree produced by Parse. Unlike the
// line output of Dump, Element values are not length-truncated.
type Element struct {
	Type     string     `json:"type"`
	Depth    int        `json:"depth"`
	Length   int        `json:"length"`
	Value    string     `json:"value,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

// Parse decodes the definite-length encoded elements in der into a forest of
// Elements, one root per top-level element. Unlike Dump, nothing is returned
// when decoding fails partway.
func Parse(der []byte, opts ...Option) ([]*Element, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	t := &treeSink{}
	wk := &walker{cfg: cfg, dec: &decoder{cfg: cfg}, out: t}
	if err := wk.walk(der, cfg.initialDepth); err != nil {
		return nil, err
	}
	return t.roots, nil
}
