package fpe

import "fmt"

// ErrorKind is one of the closed set of failure kinds this package can
// return. The set is stable: new values are never added to an existing
// release's public API without a major version bump.
type ErrorKind int

const (
	// ErrorKindNullArg means a required argument was nil where the
	// operation does not permit it.
	ErrorKindNullArg ErrorKind = iota
	// ErrorKindBadState means the operation was attempted on a Context
	// that is not INITIALIZED (fresh, already freed, or failed init).
	ErrorKindBadState
	// ErrorKindKeyLength means the key length is not valid for the
	// requested cipher kind.
	ErrorKindKeyLength
	// ErrorKindUnavailableCipher means the requested cipher kind is not
	// provided by the block-cipher adapter.
	ErrorKindUnavailableCipher
	// ErrorKindRadix means the radix is outside [2, 2^16].
	ErrorKindRadix
	// ErrorKindLength means the input length is outside [minlen, maxlen]
	// for the mode.
	ErrorKindLength
	// ErrorKindTweakLength means the tweak length is not permitted for
	// the mode.
	ErrorKindTweakLength
	// ErrorKindAlphabet means the alphabet has duplicate characters or
	// fewer than two characters.
	ErrorKindAlphabet
	// ErrorKindSymbolOutOfRange means an input symbol is >= radix (raw
	// API) or a character is not in the alphabet (string API).
	ErrorKindSymbolOutOfRange
	// ErrorKindInternal means a block-cipher primitive failed or an
	// internal invariant was violated.
	ErrorKindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNullArg:
		return "null argument"
	case ErrorKindBadState:
		return "bad context state"
	case ErrorKindKeyLength:
		return "invalid key length"
	case ErrorKindUnavailableCipher:
		return "unavailable cipher"
	case ErrorKindRadix:
		return "invalid radix"
	case ErrorKindLength:
		return "invalid input length"
	case ErrorKindTweakLength:
		return "invalid tweak length"
	case ErrorKindAlphabet:
		return "invalid alphabet"
	case ErrorKindSymbolOutOfRange:
		return "symbol out of range"
	case ErrorKindInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every operation in this package. Its
// Kind is always one of the ErrorKind constants above.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return "fpe: " + e.Kind.String()
	}
	return "fpe: " + e.Kind.String() + ": " + e.msg
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, ErrRadix) works against a returned *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors, one per ErrorKind, for use with errors.Is. Every error
// this package returns has one of these as its Kind.
var (
	ErrNullArg           = &Error{Kind: ErrorKindNullArg}
	ErrBadState          = &Error{Kind: ErrorKindBadState}
	ErrKeyLength         = &Error{Kind: ErrorKindKeyLength}
	ErrUnavailableCipher = &Error{Kind: ErrorKindUnavailableCipher}
	ErrRadix             = &Error{Kind: ErrorKindRadix}
	ErrLength            = &Error{Kind: ErrorKindLength}
	ErrTweakLength       = &Error{Kind: ErrorKindTweakLength}
	ErrAlphabet          = &Error{Kind: ErrorKindAlphabet}
	ErrSymbolOutOfRange  = &Error{Kind: ErrorKindSymbolOutOfRange}
	ErrInternal          = &Error{Kind: ErrorKindInternal}
)
