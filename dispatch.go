package fpe

import (
	"github.com/nist-fpe/gofpe/subtle"
)

// Encrypt encrypts the numeral string x in place semantics aside (the
// returned slice may alias x) under ctx using tweak, and returns the
// ciphertext numeral string of the same length. ctx must be INITIALIZED.
//
// Validation runs in a fixed order so that two callers passing the same
// invalid arguments always observe the same ErrorKind: state, nil checks,
// tweak length, input length, then symbol domain.
func (ctx *Context) Encrypt(x []uint16, tweak []byte) ([]uint16, error) {
	return ctx.dispatch(x, tweak, true)
}

// Decrypt is the exact inverse of Encrypt: Decrypt(Encrypt(x, tweak), tweak)
// == x for every x, tweak Encrypt accepts.
func (ctx *Context) Decrypt(x []uint16, tweak []byte) ([]uint16, error) {
	return ctx.dispatch(x, tweak, false)
}

func (ctx *Context) dispatch(x []uint16, tweak []byte, encrypt bool) ([]uint16, error) {
	if ctx.state != stateInitialized {
		return nil, newError(ErrorKindBadState, "context is not initialized")
	}
	if x == nil {
		return nil, newError(ErrorKindNullArg, "input must not be nil")
	}
	if err := ctx.checkTweak(tweak); err != nil {
		return nil, err
	}
	n := uint32(len(x))
	if n < ctx.minLen || n > ctx.maxLen {
		return nil, newError(ErrorKindLength, "input length %d outside [%d, %d] for %s with radix %d", n, ctx.minLen, ctx.maxLen, ctx.mode, ctx.radix)
	}
	for _, sym := range x {
		if uint32(sym) >= ctx.radix {
			return nil, newError(ErrorKindSymbolOutOfRange, "symbol %d >= radix %d", sym, ctx.radix)
		}
	}

	switch ctx.mode {
	case FF1:
		if encrypt {
			return subtle.FF1Encrypt(ctx.km.forward, ctx.radix, tweak, x), nil
		}
		return subtle.FF1Decrypt(ctx.km.forward, ctx.radix, tweak, x), nil
	case FF3:
		if encrypt {
			return subtle.FF3Encrypt(ctx.km.reversed, ctx.radix, tweak, x), nil
		}
		return subtle.FF3Decrypt(ctx.km.reversed, ctx.radix, tweak, x), nil
	case FF3_1:
		t8 := subtle.ExpandFF3_1Tweak(tweak)
		if encrypt {
			return subtle.FF3Encrypt(ctx.km.reversed, ctx.radix, t8, x), nil
		}
		return subtle.FF3Decrypt(ctx.km.reversed, ctx.radix, t8, x), nil
	default:
		return nil, newError(ErrorKindInternal, "unknown mode %d", ctx.mode)
	}
}

// checkTweak validates tweak's length for ctx's mode: FF1 allows any length
// up to ff1MaxTweakLen (the empty tweak is permitted, per NIST); FF3 requires
// exactly 8 bytes; FF3-1 requires exactly 7 bytes. An empty tweak is
// rejected for FF3/FF3-1, since the standard's 8-byte split assumes a tweak
// is always present (see DESIGN.md's Open Question 1).
func (ctx *Context) checkTweak(tweak []byte) error {
	switch ctx.mode {
	case FF1:
		if len(tweak) > ff1MaxTweakLen {
			return newError(ErrorKindTweakLength, "FF1 tweak length %d exceeds maximum %d", len(tweak), ff1MaxTweakLen)
		}
	case FF3:
		if len(tweak) != ff3TweakLen {
			return newError(ErrorKindTweakLength, "FF3 requires an %d-byte tweak, got %d", ff3TweakLen, len(tweak))
		}
	case FF3_1:
		if len(tweak) != ff31TweakLen {
			return newError(ErrorKindTweakLength, "FF3-1 requires a %d-byte tweak, got %d", ff31TweakLen, len(tweak))
		}
	}
	return nil
}

// EncryptString encodes s against alphabet, encrypts it under ctx using
// tweak, and decodes the result back into alphabet's character set. The
// number of characters in alphabet must equal ctx's radix (ErrAlphabet
// otherwise), and every character of s must be in alphabet
// (ErrSymbolOutOfRange otherwise).
func (ctx *Context) EncryptString(s string, tweak []byte, alphabet string) (string, error) {
	return ctx.dispatchString(s, tweak, alphabet, true)
}

// DecryptString is the exact inverse of EncryptString.
func (ctx *Context) DecryptString(s string, tweak []byte, alphabet string) (string, error) {
	return ctx.dispatchString(s, tweak, alphabet, false)
}

func (ctx *Context) dispatchString(s string, tweak []byte, alphabet string, encrypt bool) (string, error) {
	codec, err := subtle.NewCodec(alphabet)
	if err != nil {
		return "", newError(ErrorKindAlphabet, "%v", err)
	}
	if codec.Radix() != ctx.radix {
		return "", newError(ErrorKindAlphabet, "alphabet has %d characters, context radix is %d", codec.Radix(), ctx.radix)
	}

	symbols, err := codec.Encode(s)
	if err != nil {
		return "", newError(ErrorKindSymbolOutOfRange, "%v", err)
	}

	out, err := ctx.dispatch(symbols, tweak, encrypt)
	if err != nil {
		return "", err
	}

	result, err := codec.Decode(out)
	if err != nil {
		return "", newError(ErrorKindInternal, "%v", err)
	}
	return result, nil
}
