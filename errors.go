/*
Package asn1scan decodes BER/DER-encoded ASN.1 structures and re-renders them
as an indented text tree, one line per element, in the style of dumpasn1 and
openssl asn1parse.

It classifies tag/length/value triples, recurses into constructed encodings,
and interprets primitive values: arbitrary-precision integers, bit strings,
object identifiers, character strings in several charsets, and UTCTime /
GeneralizedTime timestamps. Input must use definite-length encoding; use the
ber subpackage to resolve indefinite-length BER first.
*/
package asn1scan

// ErrorCode identifies the category of a decode error.
type ErrorCode int

const (
	// CodeMalformed indicates an element header that cannot be parsed or a
	// declared length that exceeds the available input.
	CodeMalformed ErrorCode = iota
	// CodeDepthExceeded indicates nesting beyond the configured maximum depth.
	CodeDepthExceeded
	// CodeValue indicates primitive value bytes that cannot be interpreted
	// under their type tag, such as an empty INTEGER or a truncated OID.
	CodeValue
	// CodeInvalidConfiguration indicates an invalid option, such as a negative
	// depth or a nil registry.
	CodeInvalidConfiguration
)

// Error is the error type returned by all asn1scan operations. It implements
// the error interface and supports error chain inspection via errors.Is and
// errors.As.
type Error struct {
	// Code identifies the category of this error.
	Code ErrorCode
	// Message is a human-readable description of the error.
	Message string
	// Cause is the underlying error that triggered this error, if any.
	Cause error
}

// Error returns a string representation of the error, including the cause if present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error, enabling errors.Is and
// errors.As to traverse the error chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error by comparing error codes.
// This enables errors.Is(err, asn1scan.ErrMalformed) to match any *Error with
// the same code, regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for use with errors.Is. Each sentinel represents an error
// category. Errors returned by this package carry descriptive messages;
// sentinels are used only for category matching.
var (
	// ErrMalformed is returned when an element header cannot be parsed or a
	// declared length exceeds the remaining input. It aborts the decode that
	// encountered it; output already written for earlier elements stands.
	ErrMalformed = &Error{Code: CodeMalformed}

	// ErrDepthExceeded is returned when nesting exceeds the configured
	// maximum. The limit guards against adversarially deep input; see
	// WithMaxDepth.
	ErrDepthExceeded = &Error{Code: CodeDepthExceeded}

	// ErrValue is returned when primitive value bytes cannot be interpreted
	// under their type tag. The walker treats this as local to the element:
	// its label line is still emitted and siblings are still processed.
	ErrValue = &Error{Code: CodeValue}

	// ErrInvalidConfiguration is returned when an option carries an invalid
	// value.
	ErrInvalidConfiguration = &Error{Code: CodeInvalidConfiguration}
)

// newError creates a new Error with the given code and message.
func newError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// wrapError creates a new Error with the given code and message, wrapping cause.
func wrapError(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// newConfigError creates a new CodeInvalidConfiguration Error with the given message.
func newConfigError(msg string) *Error {
	return &Error{Code: CodeInvalidConfiguration, Message: msg}
}
