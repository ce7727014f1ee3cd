// Package subtle implements the low-level NIST SP 800-38G primitives that
// back the FF1 and FF3/FF3-1 format-preserving encryption modes: radix-N
// numeral arithmetic, the block-cipher adapter, and the Feistel cores
// themselves. Most callers should use the root fpe package instead; this
// package exists for code that needs the primitives directly.
//
// See U.S. National Institute of Standards and Technology (NIST) Special
// Publication 800-38G, "Recommendation for Block Cipher Modes of Operation:
// Methods for Format-Preserving Encryption", 2016 Edition and Revision 1.
package subtle

import "math/big"

// NumRadix takes a numeral string x (each element valued in [0, radix)) and
// returns the integer it represents in base radix, most-significant numeral
// first.
func NumRadix(x []uint16, radix uint32) *big.Int {
	out := big.NewInt(0)
	r := big.NewInt(int64(radix))
	digit := new(big.Int)
	for i := 0; i < len(x); i++ {
		out.Mul(out, r)
		digit.SetInt64(int64(x[i]))
		out.Add(out, digit)
	}
	return out
}

// StrMRadix takes an integer m, a radix, and an integer x < radix^m. It
// returns the representation of x as m numerals in base radix,
// most-significant first. x is reduced modulo radix^m first, so callers
// that already guarantee x is in range pay nothing extra for the check.
func StrMRadix(radix uint32, m uint32, x *big.Int) []uint16 {
	out := make([]uint16, m)
	bigRadix := big.NewInt(int64(radix))

	v := new(big.Int).Set(x)
	if v.Sign() < 0 {
		modulus := new(big.Int).Exp(bigRadix, big.NewInt(int64(m)), nil)
		v.Mod(v, modulus)
	}

	var temp big.Int
	for i := uint32(0); i < m; i++ {
		temp.Mod(v, bigRadix)
		out[m-i-1] = uint16(temp.Uint64())
		v.Div(v, bigRadix)
	}
	return out
}

// Reverse returns a new numeral string with the numerals of x in reverse
// order.
func Reverse(x []uint16) []uint16 {
	out := make([]uint16, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}

// ReverseBytes returns a new byte string with the bytes of x in reverse
// order.
func ReverseBytes(x []byte) []byte {
	out := make([]byte, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}

// BytesBE returns the representation of x as b big-endian bytes. x must be
// in [0, 256^b).
func BytesBE(x *big.Int, b uint64) []byte {
	out := make([]byte, b)
	raw := x.Bytes()
	if uint64(len(raw)) > b {
		// Truncate to the low b bytes; callers guarantee x fits per the
		// NIST parameter ranges this package accepts.
		raw = raw[uint64(len(raw))-b:]
	}
	copy(out[b-uint64(len(raw)):], raw)
	return out
}

// IntBE interprets x as a big-endian byte string and returns the integer it
// represents.
func IntBE(x []byte) *big.Int {
	return new(big.Int).SetBytes(x)
}

// PowRadix returns radix^m.
func PowRadix(radix uint32, m uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(m)), nil)
}

// AddMod returns (a + y) mod radix^m.
func AddMod(a []uint16, radix uint32, y *big.Int, m uint32) *big.Int {
	c := NumRadix(a, radix)
	c.Add(c, y)
	c.Mod(c, PowRadix(radix, m))
	return c
}

// SubMod returns (a - y) mod radix^m.
func SubMod(a []uint16, radix uint32, y *big.Int, m uint32) *big.Int {
	c := NumRadix(a, radix)
	c.Sub(c, y)
	c.Mod(c, PowRadix(radix, m))
	return c
}

// ValidNumeralString reports whether every element of x is less than radix.
func ValidNumeralString(x []uint16, radix uint32) bool {
	for _, v := range x {
		if uint32(v) >= radix {
			return false
		}
	}
	return true
}

func xorBytes(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}
