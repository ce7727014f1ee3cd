package subtle

import "fmt"

// Codec maps a caller-supplied alphabet of distinct characters to symbol
// indices and back. Symbol i of any numeral string encoded with a Codec
// corresponds to alphabet[i]; the radix is the number of characters in the
// alphabet. Format discovery is deliberately not implemented here: the
// caller always supplies the alphabet.
type Codec struct {
	alphabet []rune
	index    map[rune]uint16
}

// NewCodec validates alphabet (every rune distinct, at least two runes) and
// returns a Codec over it, or an error describing why the alphabet was
// rejected.
func NewCodec(alphabet string) (*Codec, error) {
	runes := []rune(alphabet)
	if len(runes) < 2 {
		return nil, fmt.Errorf("subtle: alphabet must have at least 2 characters, got %d", len(runes))
	}
	index := make(map[rune]uint16, len(runes))
	for i, r := range runes {
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("subtle: alphabet contains duplicate character %q", r)
		}
		if i > 0xFFFF {
			return nil, fmt.Errorf("subtle: alphabet exceeds maximum radix of %d", 1<<16)
		}
		index[r] = uint16(i)
	}
	return &Codec{alphabet: runes, index: index}, nil
}

// Radix returns the number of characters in the codec's alphabet.
func (c *Codec) Radix() uint32 {
	return uint32(len(c.alphabet))
}

// Encode converts s into a symbol array, one symbol per rune of s. It
// returns an error naming the first character not present in the alphabet.
func (c *Codec) Encode(s string) ([]uint16, error) {
	runes := []rune(s)
	out := make([]uint16, len(runes))
	for i, r := range runes {
		idx, ok := c.index[r]
		if !ok {
			return nil, fmt.Errorf("subtle: character %q at position %d is not in the alphabet", r, i)
		}
		out[i] = idx
	}
	return out, nil
}

// Decode converts a symbol array back into a string using the codec's
// alphabet. Every symbol must be less than the codec's radix.
func (c *Codec) Decode(symbols []uint16) (string, error) {
	out := make([]rune, len(symbols))
	for i, sym := range symbols {
		if int(sym) >= len(c.alphabet) {
			return "", fmt.Errorf("subtle: symbol %d at position %d is out of range for radix %d", sym, i, len(c.alphabet))
		}
		out[i] = c.alphabet[sym]
	}
	return string(out), nil
}
