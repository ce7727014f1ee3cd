package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/emmansun/gmsm/sm4"
)

// CipherKind names a block cipher the adapter can prepare a key schedule
// for.
type CipherKind int

const (
	AES128 CipherKind = iota
	AES192
	AES256
	SM4128
)

// BlockSize is the block size, in bytes, every cipher kind this adapter
// supports operates on. FF1 and FF3/FF3-1 both require a 16-byte block
// cipher.
const BlockSize = 16

// String returns a human-readable name for k.
func (k CipherKind) String() string {
	switch k {
	case AES128:
		return "AES-128"
	case AES192:
		return "AES-192"
	case AES256:
		return "AES-256"
	case SM4128:
		return "SM4-128"
	default:
		return "unknown cipher"
	}
}

// KeyLen returns the required key length, in bytes, for k.
func (k CipherKind) KeyLen() int {
	switch k {
	case AES128:
		return 16
	case AES192:
		return 24
	case AES256:
		return 32
	case SM4128:
		return 16
	default:
		return 0
	}
}

// KeySchedule is a prepared, single-block ECB encryptor over a fixed key.
// The raw key lives in a memguard enclave between preparation and Destroy;
// a KeySchedule should never be copied by value, and its zero value is not
// usable.
//
// Dispatch on CipherKind happens once, in PrepareKeySchedule — EncryptBlock always
// calls straight through to the underlying cipher.Block, so there is no
// per-block dynamic dispatch in the Feistel hot loop.
type KeySchedule struct {
	kind    CipherKind
	enclave *memguard.Enclave
	block   cipher.Block
}

// PrepareKeySchedule validates key against kind's required length and
// returns a prepared KeySchedule, or an error if the key length is invalid
// for the cipher kind.
func PrepareKeySchedule(key []byte, kind CipherKind) (*KeySchedule, error) {
	if len(key) != kind.KeyLen() {
		return nil, fmt.Errorf("subtle: %s requires a %d-byte key, got %d", kind, kind.KeyLen(), len(key))
	}

	enclave := memguard.NewEnclave(append([]byte(nil), key...))
	lb, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("subtle: unable to open key enclave: %w", err)
	}
	defer lb.Destroy()

	block, err := newBlockCipher(lb.Bytes(), kind)
	if err != nil {
		return nil, err
	}
	if block.BlockSize() != BlockSize {
		return nil, fmt.Errorf("subtle: %s has unexpected block size %d", kind, block.BlockSize())
	}

	return &KeySchedule{kind: kind, enclave: enclave, block: block}, nil
}

func newBlockCipher(key []byte, kind CipherKind) (cipher.Block, error) {
	switch kind {
	case AES128, AES192, AES256:
		return aes.NewCipher(key)
	case SM4128:
		return sm4.NewCipher(key)
	default:
		return nil, fmt.Errorf("subtle: unavailable cipher kind %d", kind)
	}
}

// EncryptBlock encrypts the single 16-byte block src into dst.
func (ks *KeySchedule) EncryptBlock(dst, src []byte) {
	ks.block.Encrypt(dst, src)
}

// Kind returns the cipher kind this schedule was prepared for.
func (ks *KeySchedule) Kind() CipherKind {
	return ks.kind
}

// Destroy zeroizes the enclave holding the raw key. It is idempotent and
// safe to call on a nil receiver. The expanded round-key schedule inside
// the underlying cipher.Block cannot be scrubbed — crypto/aes and
// gmsm/sm4 give no hook for that — so Destroy's guarantee is limited to the
// raw key material this package controls directly.
func (ks *KeySchedule) Destroy() {
	if ks == nil || ks.enclave == nil {
		return
	}
	if lb, err := ks.enclave.Open(); err == nil {
		lb.Destroy()
	}
	ks.enclave = nil
	ks.block = nil
}
