package tinkfpe

import (
	"encoding/binary"
	"fmt"

	fpe "github.com/nist-fpe/gofpe"
)

// keyBlob is the layout this package serializes into a Tink KeyData.Value
// (and, with key left empty, into a KeyTemplate.Value):
//
//	byte 0:    mode         (fpe.FF1, fpe.FF3, or fpe.FF3_1)
//	byte 1:    cipher kind  (fpe.AES128, AES192, AES256, or SM4128)
//	bytes 2-5: radix, big-endian uint32
//	bytes 6..: raw key material, length implied by cipher kind; empty in a
//	           template, where NewKeyData fills it in with random bytes
//
// Tink's own FPE key type would use a protobuf message for this; this
// package uses a flat byte layout instead, in the same spirit as the
// simplified (non-protobuf) key blob the original FF1-only key manager used.
type keyBlob struct {
	mode       fpe.Mode
	cipherKind fpe.CipherKind
	radix      uint32
	key        []byte
}

const keyBlobHeaderLen = 6

func encodeKeyBlob(b keyBlob) []byte {
	out := make([]byte, keyBlobHeaderLen+len(b.key))
	out[0] = byte(b.mode)
	out[1] = byte(b.cipherKind)
	binary.BigEndian.PutUint32(out[2:6], b.radix)
	copy(out[keyBlobHeaderLen:], b.key)
	return out
}

func decodeKeyBlob(data []byte) (keyBlob, error) {
	if len(data) < keyBlobHeaderLen {
		return keyBlob{}, fmt.Errorf("tinkfpe: key blob too short: %d bytes", len(data))
	}
	return keyBlob{
		mode:       fpe.Mode(data[0]),
		cipherKind: fpe.CipherKind(data[1]),
		radix:      binary.BigEndian.Uint32(data[2:6]),
		key:        append([]byte(nil), data[keyBlobHeaderLen:]...),
	}, nil
}
