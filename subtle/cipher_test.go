package subtle

import "testing"

func TestPrepareKeyScheduleRejectsBadKeyLength(t *testing.T) {
	if _, err := PrepareKeySchedule(make([]byte, 10), AES128); err == nil {
		t.Error("expected error for 10-byte key with AES-128")
	}
}

// TestPrepareKeyScheduleRejectsUnknownKindWithMatchingKeyLen covers a
// cipher kind that passes the key-length check (its KeyLen() is 0, matched
// by a zero-length key) but fails inside newBlockCipher's cipher
// construction — the path fpe.Context.Init wraps as ErrorKindInternal.
func TestPrepareKeyScheduleRejectsUnknownKindWithMatchingKeyLen(t *testing.T) {
	kind := CipherKind(99)
	if kind.KeyLen() != 0 {
		t.Fatalf("test assumption broken: CipherKind(99).KeyLen() = %d, want 0", kind.KeyLen())
	}
	if _, err := PrepareKeySchedule(nil, kind); err == nil {
		t.Error("expected error for unknown cipher kind despite matching key length")
	}
}

func TestPrepareKeyScheduleAES(t *testing.T) {
	for _, tc := range []struct {
		kind   CipherKind
		keyLen int
	}{
		{AES128, 16},
		{AES192, 24},
		{AES256, 32},
	} {
		ks, err := PrepareKeySchedule(make([]byte, tc.keyLen), tc.kind)
		if err != nil {
			t.Fatalf("%s: PrepareKeySchedule: %v", tc.kind, err)
		}
		defer ks.Destroy()

		if ks.Kind() != tc.kind {
			t.Errorf("%s: Kind() = %v, want %v", tc.kind, ks.Kind(), tc.kind)
		}

		block := make([]byte, BlockSize)
		ks.EncryptBlock(block, make([]byte, BlockSize))
		allZero := true
		for _, b := range block {
			if b != 0 {
				allZero = false
			}
		}
		if allZero {
			t.Errorf("%s: encrypting an all-zero block produced all zeros", tc.kind)
		}
	}
}

func TestPrepareKeyScheduleSM4(t *testing.T) {
	ks, err := PrepareKeySchedule(make([]byte, 16), SM4128)
	if err != nil {
		t.Fatalf("PrepareKeySchedule(SM4128): %v", err)
	}
	defer ks.Destroy()

	block := make([]byte, BlockSize)
	ks.EncryptBlock(block, make([]byte, BlockSize))
}

func TestKeyScheduleDestroyIdempotent(t *testing.T) {
	ks, err := PrepareKeySchedule(make([]byte, 16), AES128)
	if err != nil {
		t.Fatalf("PrepareKeySchedule: %v", err)
	}
	ks.Destroy()
	ks.Destroy()

	var nilKS *KeySchedule
	nilKS.Destroy()
}
