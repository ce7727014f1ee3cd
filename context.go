// Package fpe implements Format-Preserving Encryption conforming to NIST SP
// 800-38G (FF1, FF3) and SP 800-38G Revision 1 (FF3-1). A Context is
// initialized once with a mode, a block cipher, a key, and a radix, and
// then encrypts or decrypts symbol arrays (or, via the string API, strings
// over a caller-supplied alphabet) of that radix.
//
// The low-level Feistel math lives in the subtle package; most callers only
// need the Context API in this package.
package fpe

import (
	"math/big"

	"github.com/nist-fpe/gofpe/subtle"
)

// Mode selects which NIST FPE algorithm a Context runs.
type Mode int

const (
	FF1 Mode = iota
	FF3
	FF3_1
)

func (m Mode) String() string {
	switch m {
	case FF1:
		return "FF1"
	case FF3:
		return "FF3"
	case FF3_1:
		return "FF3-1"
	default:
		return "unknown mode"
	}
}

// CipherKind selects the block cipher a Context's key schedule is prepared
// for. It mirrors subtle.CipherKind one-for-one; the alias keeps the
// public API from leaking the subtle package's exact type identity.
type CipherKind = subtle.CipherKind

const (
	AES128 = subtle.AES128
	AES192 = subtle.AES192
	AES256 = subtle.AES256
	SM4128 = subtle.SM4128
)

const (
	minRadix = 2
	maxRadix = 1 << 16

	ff1MaxTweakLen = 256
	ff1MaxLen      = 1 << 16

	ff3TweakLen  = 8
	ff31TweakLen = 7
)

type state int

const (
	stateFresh state = iota
	stateInitialized
	stateDestroyed
)

// keyMaterial is the tagged variant from the design notes: FF1 carries a
// single prepared key schedule, FF3/FF3-1 carry both the schedule over the
// original key and the schedule over the byte-reversed key (only the
// reversed one is used by the Feistel round function, see subtle/ff3.go).
type keyMaterial struct {
	mode     Mode
	forward  *subtle.KeySchedule
	reversed *subtle.KeySchedule
}

func (km *keyMaterial) destroy() {
	if km == nil {
		return
	}
	km.forward.Destroy()
	km.reversed.Destroy()
}

// Context is an opaque, single-owner handle to a prepared FPE configuration.
// A Context must not be used concurrently by more than one goroutine at a
// time: encrypt/decrypt on the same Context from concurrent goroutines is a
// data race, by design (see spec §5) — distinct Contexts owned by distinct
// goroutines need no coordination.
//
// The zero value is a valid FRESH context; call Init before Encrypt/Decrypt.
type Context struct {
	state state

	mode       Mode
	cipherKind CipherKind
	radix      uint32
	minLen     uint32
	maxLen     uint32

	km *keyMaterial
}

// NewContext returns a FRESH, uninitialized Context.
func NewContext() *Context {
	return &Context{}
}

// Init prepares ctx for mode using the given cipher kind, key, and radix.
// Any key material already held by ctx is zeroized first, so Init may be
// called again on an already-INITIALIZED context to reinitialize it (the
// previous mode/cipher/radix/key are discarded).
//
// If Init rejects its arguments, ctx is left unchanged: a FRESH context stays
// FRESH and an INITIALIZED one keeps its previous mode, radix, and key. Only a
// failure while preparing the new key schedule, after the old key material
// has been zeroized, leaves ctx FRESH. Either way it can be retried with
// different parameters.
func (ctx *Context) Init(mode Mode, cipherKind CipherKind, key []byte, radix uint32) error {
	if ctx.state == stateDestroyed {
		return newError(ErrorKindBadState, "context has been freed")
	}
	if key == nil {
		return newError(ErrorKindNullArg, "key must not be nil")
	}
	if radix < minRadix || radix > maxRadix {
		return newError(ErrorKindRadix, "radix must be in [%d, %d], got %d", minRadix, maxRadix, radix)
	}
	switch cipherKind {
	case subtle.AES128, subtle.AES192, subtle.AES256, subtle.SM4128:
	default:
		return newError(ErrorKindUnavailableCipher, "unknown cipher kind %d", cipherKind)
	}
	if len(key) != cipherKind.KeyLen() {
		return newError(ErrorKindKeyLength, "%s requires a %d-byte key, got %d", cipherKind, cipherKind.KeyLen(), len(key))
	}
	switch mode {
	case FF1, FF3, FF3_1:
	default:
		return newError(ErrorKindBadState, "unknown mode %d", mode)
	}

	// Zeroize any state from a previous Init before preparing the new one.
	ctx.km.destroy()
	ctx.km = nil
	ctx.state = stateFresh

	km := &keyMaterial{mode: mode}
	var err error
	switch mode {
	case FF1:
		km.forward, err = subtle.PrepareKeySchedule(key, cipherKind)
	case FF3, FF3_1:
		reversedKey := reverseBytes(key)
		km.forward, err = subtle.PrepareKeySchedule(key, cipherKind)
		if err == nil {
			km.reversed, err = subtle.PrepareKeySchedule(reversedKey, cipherKind)
		}
	default:
		return newError(ErrorKindBadState, "unknown mode %d", mode)
	}
	if err != nil {
		return newError(ErrorKindInternal, "%v", err)
	}

	minLen, maxLen := lengthBounds(mode, radix)

	ctx.mode = mode
	ctx.cipherKind = cipherKind
	ctx.radix = radix
	ctx.minLen = minLen
	ctx.maxLen = maxLen
	ctx.km = km
	ctx.state = stateInitialized
	return nil
}

// Free zeroizes ctx's key material and transitions it to DESTROYED. Free is
// idempotent and safe to call on a nil or already-destroyed Context.
func (ctx *Context) Free() {
	if ctx == nil || ctx.state == stateDestroyed {
		return
	}
	ctx.km.destroy()
	ctx.km = nil
	ctx.state = stateDestroyed
}

// Mode returns ctx's mode. Valid only once ctx is initialized.
func (ctx *Context) Mode() Mode { return ctx.mode }

// Radix returns ctx's radix. Valid only once ctx is initialized.
func (ctx *Context) Radix() uint32 { return ctx.radix }

// Bounds returns the minimum and maximum input length, in symbols, ctx
// accepts. Valid only once ctx is initialized.
func (ctx *Context) Bounds() (min, max uint32) { return ctx.minLen, ctx.maxLen }

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// lengthBounds computes [minlen, maxlen] for mode/radix per spec §4.4/§4.5,
// using the stricter NIST minimum-work-factor rule for FF1 (Open Question 2
// in DESIGN.md) rather than the looser "radix^minlen >= 100" some
// implementations use.
func lengthBounds(mode Mode, radix uint32) (minLen, maxLen uint32) {
	switch mode {
	case FF1:
		minLen = smallestLenAtLeast(radix, big.NewInt(1000000))
		if minLen < 2 {
			minLen = 2
		}
		maxLen = ff1MaxLen
	case FF3, FF3_1:
		minLen = smallestLenAtLeast(radix, big.NewInt(100))
		if minLen < 2 {
			minLen = 2
		}
		// maxlen = 2*floor(log_radix(2^96)), per spec §4.5 (e.g. radix 10
		// yields maxlen 56, not 57 — ff3P's P block has a fixed 96-bit
		// numeral field, so an off-by-one here overruns it).
		maxLen = 2 * largestLenAtMost(radix, new(big.Int).Lsh(big.NewInt(1), 96))
	}
	return minLen, maxLen
}

// smallestLenAtLeast returns the smallest m >= 1 such that radix^m >= threshold.
func smallestLenAtLeast(radix uint32, threshold *big.Int) uint32 {
	v := big.NewInt(1)
	r := big.NewInt(int64(radix))
	var m uint32
	for v.Cmp(threshold) < 0 {
		v.Mul(v, r)
		m++
	}
	if m == 0 {
		m = 1
	}
	return m
}

// largestLenAtMost returns the largest m such that radix^m <= bound.
func largestLenAtMost(radix uint32, bound *big.Int) uint32 {
	v := big.NewInt(1)
	r := big.NewInt(int64(radix))
	var m uint32
	for {
		next := new(big.Int).Mul(v, r)
		if next.Cmp(bound) > 0 {
			break
		}
		v = next
		m++
	}
	return m
}
