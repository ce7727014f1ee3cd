package fpe

import (
	"errors"
	"testing"
)

func TestContextLifecycle(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.Encrypt([]uint16{1, 2, 3}, nil); !errors.Is(err, ErrBadState) {
		t.Fatalf("Encrypt on FRESH context: err = %v, want ErrBadState", err)
	}

	key := make([]byte, 16)
	if err := ctx.Init(FF1, AES128, key, 10); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if ctx.Mode() != FF1 {
		t.Errorf("Mode() = %v, want FF1", ctx.Mode())
	}
	if ctx.Radix() != 10 {
		t.Errorf("Radix() = %d, want 10", ctx.Radix())
	}

	if _, err := ctx.Encrypt(make([]uint16, ctx.minLen), nil); err != nil {
		t.Fatalf("Encrypt on INITIALIZED context: %v", err)
	}

	ctx.Free()
	if _, err := ctx.Encrypt([]uint16{1, 2, 3}, nil); !errors.Is(err, ErrBadState) {
		t.Fatalf("Encrypt on DESTROYED context: err = %v, want ErrBadState", err)
	}
	if err := ctx.Init(FF1, AES128, key, 10); !errors.Is(err, ErrBadState) {
		t.Fatalf("Init on DESTROYED context: err = %v, want ErrBadState", err)
	}

	ctx.Free() // idempotent
}

func TestContextReinitReplacesKeyMaterial(t *testing.T) {
	ctx := NewContext()
	key1 := make([]byte, 16)
	if err := ctx.Init(FF1, AES128, key1, 10); err != nil {
		t.Fatalf("Init: %v", err)
	}
	first := ctx.km

	key2 := make([]byte, 24)
	if err := ctx.Init(FF1, AES192, key2, 10); err != nil {
		t.Fatalf("reinit: %v", err)
	}
	if ctx.km == first {
		t.Error("reinit did not replace key material")
	}
	if ctx.cipherKind != AES192 {
		t.Errorf("cipherKind after reinit = %v, want AES192", ctx.cipherKind)
	}
}

func TestContextInitRejectsBadKeyLength(t *testing.T) {
	ctx := NewContext()
	err := ctx.Init(FF1, AES128, make([]byte, 10), 10)
	if !errors.Is(err, ErrKeyLength) {
		t.Fatalf("err = %v, want ErrKeyLength", err)
	}
}

func TestContextInitRejectsBadRadix(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Init(FF1, AES128, make([]byte, 16), 1); !errors.Is(err, ErrRadix) {
		t.Fatalf("radix 1: err = %v, want ErrRadix", err)
	}
	if err := ctx.Init(FF1, AES128, make([]byte, 16), 1<<17); !errors.Is(err, ErrRadix) {
		t.Fatalf("radix 2^17: err = %v, want ErrRadix", err)
	}
}

func TestContextInitRejectsNilKey(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Init(FF1, AES128, nil, 10); !errors.Is(err, ErrNullArg) {
		t.Fatalf("err = %v, want ErrNullArg", err)
	}
}

func TestContextInitRejectsUnknownCipher(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Init(FF1, CipherKind(99), make([]byte, 16), 10); !errors.Is(err, ErrUnavailableCipher) {
		t.Fatalf("err = %v, want ErrUnavailableCipher", err)
	}
}

func TestFF3LengthBoundsMatchSpecWorkedExample(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Init(FF3, AES128, make([]byte, 16), 10); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer ctx.Free()

	min, max := ctx.Bounds()
	if min != 2 || max != 56 {
		t.Errorf("Bounds() = (%d, %d), want (2, 56) per spec's radix-10 worked example", min, max)
	}

	// A 57-symbol input must be rejected, not silently truncated by ff3P's
	// fixed 96-bit numeral field.
	if _, err := ctx.Encrypt(make([]uint16, 57), make([]byte, 8)); !errors.Is(err, ErrLength) {
		t.Errorf("Encrypt with 57 symbols: err = %v, want ErrLength", err)
	}
	if _, err := ctx.Encrypt(make([]uint16, 56), make([]byte, 8)); err != nil {
		t.Errorf("Encrypt with 56 symbols: unexpected error %v", err)
	}
}

func TestContextFF3KeyMaterialHasBothSchedules(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Init(FF3, AES128, make([]byte, 16), 10); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if ctx.km.forward == nil || ctx.km.reversed == nil {
		t.Error("FF3 key material must carry both forward and reversed schedules")
	}
}
