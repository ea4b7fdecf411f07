package asn1scan

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// sink receives the walker's emission events in document order. container is
// followed by the events of the nested stream and a matching endContainer.
type sink interface {
	container(n Node, label string, depth int) error
	endContainer() error
	leaf(n Node, label, value string, depth int) error
}

// walker drives the depth-first traversal of one decode. It owns the Nodes
// it scans; none survive past their emission.
type walker struct {
	cfg *config
	dec *decoder
	out sink
}

// walk decodes the stream of sibling elements in data at the given depth.
// Constructed elements emit a container event and recurse into their value
// window as an independent stream one level deeper. A malformed header or
// length aborts the entire decode; an undecodable value is local to its
// element, which is emitted with its label only, and traversal continues
// with the next sibling.
func (w *walker) walk(data []byte, depth int) error {
	if depth-w.cfg.initialDepth >= w.cfg.maxDepth {
		return newError(CodeDepthExceeded, fmt.Sprintf("nesting exceeds %d levels", w.cfg.maxDepth))
	}

	s := NewScanner(data)
	for s.More() {
		n, err := s.Next()
		if err != nil {
			return err
		}

		if n.Constructed {
			if err := w.out.container(n, containerLabel(n), depth); err != nil {
				return err
			}
			if err := w.walk(n.Value, depth+1); err != nil {
				return err
			}
			if err := w.out.endContainer(); err != nil {
				return err
			}
			continue
		}

		label, value, err := w.dec.decode(n)
		switch {
		case errors.Is(err, errUnknownType):
			w.cfg.diag.WithFields(logrus.Fields{
				"class": fmt.Sprintf("%02X", byte(n.Class)),
				"tag":   fmt.Sprintf("%02X", int(n.Tag)),
			}).Warn("unknown tag")
		case err != nil:
			w.cfg.diag.WithError(err).WithField("label", label).Warn("undecodable value")
			if err := w.out.leaf(n, label, "", depth); err != nil {
				return err
			}
		default:
			if err := w.out.leaf(n, label, value, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// textSink renders each event as one formatted output line.
type textSink struct {
	f *formatter
}

func (t *textSink) container(n Node, label string, depth int) error {
	return t.f.emit(label, depth, n.Length(), "")
}

func (t *textSink) endContainer() error {
	return nil
}

func (t *textSink) leaf(n Node, label, value string, depth int) error {
	return t.f.emit(label, depth, n.Length(), value)
}

// treeSink accumulates events into a forest of Elements for Parse.
type treeSink struct {
	roots []*Element
	stack []*Element
}

func (t *treeSink) add(e *Element) {
	if len(t.stack) == 0 {
		t.roots = append(t.roots, e)
		return
	}
	parent := t.stack[len(t.stack)-1]
	parent.Children = append(parent.Children, e)
}

func (t *treeSink) container(n Node, label string, depth int) error {
	e := &Element{Type: label, Depth: depth, Length: n.Length()}
	t.add(e)
	t.stack = append(t.stack, e)
	return nil
}

func (t *treeSink) endContainer() error {
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

func (t *treeSink) leaf(n Node, label, value string, depth int) error {
	t.add(&Element{Type: label, Depth: depth, Length: n.Length(), Value: value})
	return nil
}
