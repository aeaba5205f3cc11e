package huffpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Encoder maps Symbols to the codes assigned by a Tree.
type Encoder struct {
	codes   []Code
	minSize byte
	maxSize byte
}

// Init initializes this Encoder from a finished Tree.  Each leaf's code is
// derived by walking its parent links up to the root; Symbols without a leaf
// get an empty Code.
//
// An error is returned if some leaf is too deep for its code to fit in a
// Code.
//
func (e *Encoder) Init(t *Tree) error {
	numSymbols := Symbol(t.NumSymbols())
	codes := make([]Code, numSymbols)

	var minSize, maxSize byte
	var hasMinMax bool
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		hc, err := t.Code(symbol)
		if errors.Is(err, ErrNoLeaf) {
			continue
		}
		if err != nil {
			return err
		}

		codes[symbol] = hc
		size := hc.Size
		if !hasMinMax {
			hasMinMax = true
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
	}

	*e = Encoder{
		codes:   codes,
		minSize: minSize,
		maxSize: maxSize,
	}
	return nil
}

// NewEncoder is a convenience function that constructs an Encoder.
func NewEncoder(t *Tree) (Encoder, error) {
	var e Encoder
	err := e.Init(t)
	return e, err
}

// Encode returns the code for a Symbol.  The Code is empty if the Symbol
// never occurred.
func (e Encoder) Encode(symbol Symbol) Code {
	return e.codes[symbol]
}

// Codes returns a copy of the code for each Symbol.
func (e Encoder) Codes() []Code {
	out := make([]Code, len(e.codes))
	copy(out, e.codes)
	return out
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
//
func (e Encoder) MaxSymbol() Symbol {
	return Symbol(len(e.codes)) - 1
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet.
func (e Encoder) SizeBySymbol() []byte {
	numSymbols := Symbol(len(e.codes))
	out := make([]byte, numSymbols)
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		out[symbol] = e.codes[symbol].Size
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	numSymbols := Symbol(len(e.codes))
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		hc := e.codes[symbol]
		if hc.Size == 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = nil\n", symbol)
		} else {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
