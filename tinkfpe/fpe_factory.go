package tinkfpe

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"

	fpe "github.com/nist-fpe/gofpe"
)

// Primitive wraps an initialized *fpe.Context behind the same Encrypt/
// Decrypt/EncryptString/DecryptString surface as fpe.Context, so that
// tinkfpe.New's callers use a Context loaded from a keyset the same way
// they would use one built directly with fpe.NewContext/Init.
type Primitive struct {
	ctx *fpe.Context
}

// New builds a Primitive from handle's primary key. handle must hold a key
// produced by this package's KeyManager (a keyBlob-encoded KeyData.Value).
func New(handle *keyset.Handle) (*Primitive, error) {
	if handle == nil {
		return nil, fmt.Errorf("tinkfpe: keyset handle must not be nil")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)
	for _, k := range ks.Key {
		if k.KeyId != ks.PrimaryKeyId || k.KeyData == nil {
			continue
		}
		if k.KeyData.TypeUrl != FPEKeyTypeURL {
			return nil, fmt.Errorf("tinkfpe: primary key has unexpected type URL %q", k.KeyData.TypeUrl)
		}

		blob, err := decodeKeyBlob(k.KeyData.Value)
		if err != nil {
			return nil, err
		}
		ctx := fpe.NewContext()
		if err := ctx.Init(blob.mode, blob.cipherKind, blob.key, blob.radix); err != nil {
			return nil, fmt.Errorf("tinkfpe: %w", err)
		}
		return &Primitive{ctx: ctx}, nil
	}

	return nil, fmt.Errorf("tinkfpe: primary key %d not found in keyset", ks.PrimaryKeyId)
}

// Encrypt encrypts a numeral string the same way fpe.Context.Encrypt does.
func (p *Primitive) Encrypt(x []uint16, tweak []byte) ([]uint16, error) {
	return p.ctx.Encrypt(x, tweak)
}

// Decrypt is Encrypt's exact inverse.
func (p *Primitive) Decrypt(x []uint16, tweak []byte) ([]uint16, error) {
	return p.ctx.Decrypt(x, tweak)
}

// EncryptString encrypts s over alphabet the same way fpe.Context.EncryptString does.
func (p *Primitive) EncryptString(s string, tweak []byte, alphabet string) (string, error) {
	return p.ctx.EncryptString(s, tweak, alphabet)
}

// DecryptString is EncryptString's exact inverse.
func (p *Primitive) DecryptString(s string, tweak []byte, alphabet string) (string, error) {
	return p.ctx.DecryptString(s, tweak, alphabet)
}

// Free zeroizes the underlying Context's key material.
func (p *Primitive) Free() {
	p.ctx.Free()
}
