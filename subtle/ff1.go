package subtle

import "math/big"

// FF1 Feistel core, NIST SP 800-38G section 5.2 (pp. 16-19). Grounded on
// cloudtrust-fpe/fpe/ff1.go's conformant byte layouts for P/Q/S, generalized
// over the KeySchedule adapter instead of a raw AES cipher.Block + CBC mode.
//
// Callers (the root fpe package) are responsible for all bounds validation
// before calling these functions: radix range, input length, tweak length,
// and symbol domain. These functions are total over any input that already
// satisfies those bounds.

const ff1Rounds = 10

// FF1Encrypt encrypts the numeral string x (len(x) >= 2, every symbol <
// radix) under ks using tweak, and returns the ciphertext numeral string of
// the same length.
func FF1Encrypt(ks *KeySchedule, radix uint32, tweak []byte, x []uint16) []uint16 {
	n := uint32(len(x))
	u := n / 2
	v := n - u
	t := uint32(len(tweak))

	a := append([]uint16(nil), x[:u]...)
	b := append([]uint16(nil), x[u:]...)

	beta := ff1B(v, radix)
	d := ff1D(beta)
	p := ff1P(radix, u, n, t)

	for i := 0; i < ff1Rounds; i++ {
		m := ff1M(i, u, v)

		q := ff1Q(tweak, beta, i, NumRadix(b, radix))
		r := ff1PRF(ks, p, q)
		s := ff1S(ks, r, d)
		y := IntBE(s)

		c := AddMod(a, radix, y, m)
		newA := StrMRadix(radix, m, c)

		a, b = b, newA
	}

	out := make([]uint16, n)
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

// FF1Decrypt is the exact inverse of FF1Encrypt: FF1Decrypt(ks, radix, tweak,
// FF1Encrypt(ks, radix, tweak, x)) == x.
func FF1Decrypt(ks *KeySchedule, radix uint32, tweak []byte, x []uint16) []uint16 {
	n := uint32(len(x))
	u := n / 2
	v := n - u
	t := uint32(len(tweak))

	a := append([]uint16(nil), x[:u]...)
	b := append([]uint16(nil), x[u:]...)

	beta := ff1B(v, radix)
	d := ff1D(beta)
	p := ff1P(radix, u, n, t)

	for i := ff1Rounds - 1; i >= 0; i-- {
		m := ff1M(i, u, v)

		q := ff1Q(tweak, beta, i, NumRadix(a, radix))
		r := ff1PRF(ks, p, q)
		s := ff1S(ks, r, d)
		y := IntBE(s)

		c := SubMod(b, radix, y, m)
		newA := StrMRadix(radix, m, c)

		a, b = newA, a
	}

	out := make([]uint16, n)
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

func ff1M(round int, u, v uint32) uint32 {
	if round%2 == 0 {
		return u
	}
	return v
}

// ff1B returns b = ceil(ceil(v*log2(radix))/8), the byte length used to
// encode NUM(B) inside Q.
func ff1B(v, radix uint32) uint64 {
	return (bitsNeeded(radix, v) + 7) / 8
}

// bitsNeeded returns ceil(v * log2(radix)) without floating point. x =
// radix^v satisfies 2^(n-1) <= x < 2^n where n = x.BitLen(); ceil(log2(x))
// is n-1 when x is an exact power of two, and n otherwise. Computing it this
// way (rather than taking BitLen directly) matters for any power-of-two
// radix, where radix^v is itself always an exact power of two.
func bitsNeeded(radix, v uint32) uint64 {
	if v == 0 {
		return 0
	}
	x := PowRadix(radix, v)
	n := x.BitLen()
	xMinus1 := new(big.Int).Sub(x, big.NewInt(1))
	if new(big.Int).And(x, xMinus1).Sign() == 0 {
		return uint64(n - 1)
	}
	return uint64(n)
}

// ff1D returns d = 4*ceil(beta/4) + 4.
func ff1D(beta uint64) uint64 {
	return 4*((beta+3)/4) + 4
}

// ff1P builds the 16-byte fixed block
// P = [1]1 [2]1 [1]1 [radix]3 [10]1 [u mod 256]1 [n]4 [t]4.
func ff1P(radix, u, n, t uint32) []byte {
	p := make([]byte, BlockSize)
	p[0], p[1], p[2] = 1, 2, 1
	p[3], p[4], p[5] = byte(radix>>16), byte(radix>>8), byte(radix)
	p[6] = 10
	p[7] = byte(u % 256)
	p[8], p[9], p[10], p[11] = byte(n>>24), byte(n>>16), byte(n>>8), byte(n)
	p[12], p[13], p[14], p[15] = byte(t>>24), byte(t>>16), byte(t>>8), byte(t)
	return p
}

// ff1Q builds Q = tweak || zeros(padlen) || [i]1 || bytes_be(num, b), where
// padlen = (-t-b-1) mod 16.
func ff1Q(tweak []byte, b uint64, i int, num *big.Int) []byte {
	t := uint64(len(tweak))
	mod := (-int64(t+b+1)) % BlockSize
	pad := uint64((mod + BlockSize) % BlockSize)

	q := make([]byte, t+pad+1+b)
	copy(q, tweak)
	q[t+pad] = byte(i)
	copy(q[t+pad+1:], BytesBE(num, b))
	return q
}

// ff1PRF computes CBC-MAC over p||q with a zero IV: each 16-byte block is
// XORed with the previous ciphertext block (zero for the first) and
// encrypted; the result is the final ciphertext block.
func ff1PRF(ks *KeySchedule, p, q []byte) []byte {
	x := append(append([]byte(nil), p...), q...)

	prev := make([]byte, BlockSize)
	block := make([]byte, BlockSize)
	for i := 0; i < len(x); i += BlockSize {
		xorBytes(block, x[i:i+BlockSize], prev)
		ks.EncryptBlock(block, block)
		copy(prev, block)
	}
	return prev
}

// ff1S extends r to d bytes: S = r || ciph(r xor [1]16) || ciph(r xor [2]16)
// || ... truncated to d bytes.
func ff1S(ks *KeySchedule, r []byte, d uint64) []byte {
	nbrBlocks := (d + BlockSize - 1) / BlockSize
	s := make([]byte, BlockSize*nbrBlocks)
	copy(s, r)

	for i := uint64(1); i < nbrBlocks; i++ {
		counter := BytesBE(new(big.Int).SetUint64(i), BlockSize)
		block := make([]byte, BlockSize)
		xorBytes(block, counter, r)
		ks.EncryptBlock(block, block)
		copy(s[BlockSize*i:], block)
	}
	return s[:d]
}
