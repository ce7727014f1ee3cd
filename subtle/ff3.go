package subtle

// FF3/FF3-1 Feistel core, NIST SP 800-38G section 5.3 and Revision 1.
// Grounded on vdparikhrh-fpe/ff3/ff3.go (Capital One's conformant FF3):
// the reversed-key ECB round function, the tweak split into Tl/Tr, and the
// byte-reversal around both P's numeral and the single ECB call are taken
// from there; the FF3-1 56-bit tweak expansion is new, from spec.

const ff3Rounds = 8

// reversed-key: all block-cipher calls in this mode use the key schedule
// prepared over the byte-reversed key (ks here is expected to already be
// that schedule — see fpe.Context, which prepares it once at Init).

// ExpandFF3_1Tweak expands a 7-byte (56-bit) FF3-1 tweak to the 8-byte
// (64-bit) layout FF3 uses, per NIST SP 800-38G Revision 1:
//
//	Tl = T[0..3] || (T[3] & 0xF0)
//	Tr = T[4..7] || ((T[3] & 0x0F) << 4)
func ExpandFF3_1Tweak(t7 []byte) []byte {
	t8 := make([]byte, 8)
	copy(t8[0:3], t7[0:3])
	t8[3] = t7[3] & 0xF0
	copy(t8[4:7], t7[4:7])
	t8[7] = (t7[3] & 0x0F) << 4
	return t8
}

// FF3Encrypt encrypts the numeral string x (len(x) >= 2, every symbol <
// radix) under ks (the reversed-key schedule) using the 8-byte tweak t8,
// and returns the ciphertext numeral string of the same length.
func FF3Encrypt(ks *KeySchedule, radix uint32, t8 []byte, x []uint16) []uint16 {
	n := uint32(len(x))
	u := (n + 1) / 2
	v := n - u

	a := append([]uint16(nil), x[:u]...)
	b := append([]uint16(nil), x[u:]...)

	tl := t8[:4]
	tr := t8[4:]

	for i := 0; i < ff3Rounds; i++ {
		m, w := ff3RoundParams(i, u, v, tl, tr)

		p := ff3P(w, uint32(i), radix, b)
		s := ff3S(ks, p)
		y := IntBE(s)

		c := AddMod(Reverse(a), radix, y, m)
		newA := Reverse(StrMRadix(radix, m, c))

		a, b = b, newA
	}

	out := make([]uint16, n)
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

// FF3Decrypt is the exact inverse of FF3Encrypt.
func FF3Decrypt(ks *KeySchedule, radix uint32, t8 []byte, x []uint16) []uint16 {
	n := uint32(len(x))
	u := (n + 1) / 2
	v := n - u

	a := append([]uint16(nil), x[:u]...)
	b := append([]uint16(nil), x[u:]...)

	tl := t8[:4]
	tr := t8[4:]

	for i := ff3Rounds - 1; i >= 0; i-- {
		m, w := ff3RoundParams(i, u, v, tl, tr)

		p := ff3P(w, uint32(i), radix, a)
		s := ff3S(ks, p)
		y := IntBE(s)

		c := SubMod(Reverse(b), radix, y, m)
		newA := Reverse(StrMRadix(radix, m, c))

		a, b = newA, a
	}

	out := make([]uint16, n)
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

func ff3RoundParams(round int, u, v uint32, tl, tr []byte) (m uint32, w []byte) {
	if round%2 == 0 {
		return u, tr
	}
	return v, tl
}

// ff3P builds P = w xor [i]4 || bytes_be(NUM(rev(x)), 12).
func ff3P(w []byte, i uint32, radix uint32, x []uint16) []byte {
	p := make([]byte, BlockSize)
	p[0] = w[0]
	p[1] = w[1]
	p[2] = w[2]
	p[3] = w[3] ^ byte(i)
	copy(p[4:], BytesBE(NumRadix(Reverse(x), radix), 12))
	return p
}

// ff3S computes S = reverse(ciph(reverse(P))), the single ECB call with
// byte-reversed input and output.
func ff3S(ks *KeySchedule, p []byte) []byte {
	rp := ReverseBytes(p)
	out := make([]byte, BlockSize)
	ks.EncryptBlock(out, rp)
	return ReverseBytes(out)
}
