package subtle

import (
	"math/big"
	"reflect"
	"testing"
)

func TestNumRadixStrMRadixRoundTrip(t *testing.T) {
	x := []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}
	n := NumRadix(x, 10)
	back := StrMRadix(10, uint32(len(x)), n)
	if !reflect.DeepEqual(x, back) {
		t.Errorf("round trip mismatch: got %v, want %v", back, x)
	}
}

func TestNumRadixValue(t *testing.T) {
	x := []uint16{1, 2, 3}
	got := NumRadix(x, 10)
	if got.Cmp(big.NewInt(123)) != 0 {
		t.Errorf("NumRadix(123 in base 10) = %v, want 123", got)
	}
}

func TestStrMRadixPadsLeadingZeros(t *testing.T) {
	got := StrMRadix(10, 5, big.NewInt(42))
	want := []uint16{0, 0, 0, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StrMRadix(42, m=5) = %v, want %v", got, want)
	}
}

func TestReverse(t *testing.T) {
	got := Reverse([]uint16{1, 2, 3})
	want := []uint16{3, 2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reverse = %v, want %v", got, want)
	}
}

func TestBytesBEIntBERoundTrip(t *testing.T) {
	n := big.NewInt(0x0102030405)
	b := BytesBE(n, 8)
	back := IntBE(b)
	if back.Cmp(n) != 0 {
		t.Errorf("BytesBE/IntBE round trip: got %v, want %v", back, n)
	}
}

func TestAddModSubModInverse(t *testing.T) {
	a := []uint16{1, 2, 3}
	y := big.NewInt(99)
	c := AddMod(a, 10, y, 3)
	back := SubMod(StrMRadix(10, 3, c), 10, y, 3)
	if back.Cmp(NumRadix(a, 10)) != 0 {
		t.Errorf("AddMod/SubMod are not inverses: got %v, want %v", back, NumRadix(a, 10))
	}
}

func TestValidNumeralString(t *testing.T) {
	if !ValidNumeralString([]uint16{0, 5, 9}, 10) {
		t.Error("expected valid numeral string")
	}
	if ValidNumeralString([]uint16{0, 10, 9}, 10) {
		t.Error("expected invalid numeral string")
	}
}
