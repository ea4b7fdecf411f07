package asn1scan

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mvanek/asn1scan/internal/oid"
)

// DefaultMaxDepth is the nesting limit applied when WithMaxDepth is not
// given. The encoding itself places no bound on nesting; the limit guards
// against adversarially deep input.
const DefaultMaxDepth = 128

// config carries the resolved settings for one decode.
type config struct {
	initialDepth int
	maxDepth     int
	latin1       bool
	registry     *oid.Registry
	diag         *logrus.Logger
}

// defaultDiag receives diagnostics when WithDiagnostics is not given:
// warnings and up, to standard error, without timestamps.
var defaultDiag = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}()

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		maxDepth: DefaultMaxDepth,
		registry: oid.Default(),
		diag:     defaultDiag,
	}
	for _, o := range opts {
		if err := o.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Option configures a decode. Options apply in order; later options override
// earlier ones. Pass them to Dump or Parse.
type Option interface {
	apply(*config) error
}

// option is a concrete Option backed by a single function.
type option struct {
	f func(*config) error
}

func (o *option) apply(c *config) error {
	return o.f(c)
}

// WithInitialDepth sets the depth number assigned to top-level elements.
// Nested elements count up from it. Defaults to 0.
func WithInitialDepth(depth int) Option {
	return &option{f: func(c *config) error {
		if depth < 0 {
			return newConfigError("initial depth is negative")
		}
		c.initialDepth = depth
		return nil
	}}
}

// WithMaxDepth caps nesting at limit levels below the initial depth. Going
// deeper fails the decode with ErrDepthExceeded. Defaults to DefaultMaxDepth.
func WithMaxDepth(limit int) Option {
	return &option{f: func(c *config) error {
		if limit < 1 {
			return newConfigError("maximum depth must be at least 1")
		}
		c.maxDepth = limit
		return nil
	}}
}

// WithLatin1Output renders character string values as Latin-1 instead of
// UTF-8. Runes outside the Latin-1 range render as '?'.
func WithLatin1Output() Option {
	return &option{f: func(c *config) error {
		c.latin1 = true
		return nil
	}}
}

// WithRegistry supplies the object identifier registry consulted for
// symbolic names. Defaults to the built-in registry. The registry is read
// concurrently when decodes run in parallel; Registry values are immutable,
// so any registry may be shared.
func WithRegistry(r *oid.Registry) Option {
	return &option{f: func(c *config) error {
		if r == nil {
			return newConfigError("registry is nil")
		}
		c.registry = r
		return nil
	}}
}

// WithExtraOIDs consults a registry holding the built-in table plus the
// given dotted-form to name entries. Extra entries override built-in names
// for the same identifier.
func WithExtraOIDs(entries map[string]string) Option {
	return &option{f: func(c *config) error {
		c.registry = oid.New(entries)
		return nil
	}}
}

// WithDiagnostics supplies the logger that receives non-fatal diagnostics:
// unknown tag and class combinations, and values that could not be decoded
// under an intact header. Defaults to a warn-level stderr logger.
func WithDiagnostics(l *logrus.Logger) Option {
	return &option{f: func(c *config) error {
		if l == nil {
			return newConfigError("diagnostics logger is nil")
		}
		c.diag = l
		return nil
	}}
}
