package huffpack

import (
	"fmt"
	mathbits "math/bits"
	"strconv"
)

// Code represents a sequence of bits, read from the root of a Tree down to a
// leaf.  A 0 bit selects the left child and a 1 bit the right child.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// Append returns the Code extended by one more bit.
func (hc Code) Append(bit bool) Code {
	if bit {
		hc.Bits |= uint64(1) << hc.Size
	}
	hc.Size++
	return hc
}

// Bit returns the i'th bit of the Code, counting from the first.
func (hc Code) Bit(i byte) bool {
	return (hc.Bits>>i)&1 != 0
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	if hc.Size == 0 {
		return hc
	}
	return MakeCode(hc.Size, mathbits.Reverse64(hc.Bits)>>(64-hc.Size))
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Reversed().Bits))
}

var _ fmt.Stringer = Code{}
