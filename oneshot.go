package fpe

// EncryptOnce is a stateless convenience wrapper equivalent to calling
// NewContext, Init, Encrypt, and Free in sequence. It is intended for
// one-off or low-frequency encryptions where keeping a Context alive across
// calls is not worth the bookkeeping; callers doing many encryptions under
// the same key should build one Context with Init and reuse it, since every
// EncryptOnce call re-runs key-schedule preparation from scratch.
func EncryptOnce(mode Mode, cipherKind CipherKind, key []byte, radix uint32, x []uint16, tweak []byte) ([]uint16, error) {
	return once(mode, cipherKind, key, radix, x, tweak, true)
}

// DecryptOnce is EncryptOnce's exact inverse.
func DecryptOnce(mode Mode, cipherKind CipherKind, key []byte, radix uint32, x []uint16, tweak []byte) ([]uint16, error) {
	return once(mode, cipherKind, key, radix, x, tweak, false)
}

func once(mode Mode, cipherKind CipherKind, key []byte, radix uint32, x []uint16, tweak []byte, encrypt bool) ([]uint16, error) {
	ctx := NewContext()
	if err := ctx.Init(mode, cipherKind, key, radix); err != nil {
		return nil, err
	}
	defer ctx.Free()

	if encrypt {
		return ctx.Encrypt(x, tweak)
	}
	return ctx.Decrypt(x, tweak)
}

// EncryptStringOnce is EncryptOnce's string-API counterpart: it encodes s
// against alphabet, encrypts under a freshly-prepared Context, and decodes
// the result back into alphabet.
func EncryptStringOnce(mode Mode, cipherKind CipherKind, key []byte, radix uint32, s string, tweak []byte, alphabet string) (string, error) {
	return onceString(mode, cipherKind, key, radix, s, tweak, alphabet, true)
}

// DecryptStringOnce is EncryptStringOnce's exact inverse.
func DecryptStringOnce(mode Mode, cipherKind CipherKind, key []byte, radix uint32, s string, tweak []byte, alphabet string) (string, error) {
	return onceString(mode, cipherKind, key, radix, s, tweak, alphabet, false)
}

func onceString(mode Mode, cipherKind CipherKind, key []byte, radix uint32, s string, tweak []byte, alphabet string, encrypt bool) (string, error) {
	ctx := NewContext()
	if err := ctx.Init(mode, cipherKind, key, radix); err != nil {
		return "", err
	}
	defer ctx.Free()

	if encrypt {
		return ctx.EncryptString(s, tweak, alphabet)
	}
	return ctx.DecryptString(s, tweak, alphabet)
}
