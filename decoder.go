package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder maps codes back to Symbols.
type Decoder struct {
	table   map[Code]decoderData
	sizes   []byte
	minSize byte
	maxSize byte
}

// Init initializes this Decoder.  The argument holds the code for each
// Symbol of the alphabet, as produced by Encoder.Codes or by reading a tree
// shape.  Symbols with an empty Code are omitted from the code entirely.
//
// The codes need not be canonical, nor even complete, but they must be
// prefix free: no code may be a prefix of another.  A code set with 0 or 1
// symbols is permitted.
//
func (d *Decoder) Init(codes []Code) error {
	numSymbols := Symbol(len(codes))

	var numSymbolsWithNonZeroSizes uint32
	var minSize, maxSize byte
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		size := codes[symbol].Size
		if size == 0 {
			continue
		}

		if size > maxCodeSize {
			return fmt.Errorf("%w: symbol %d has %d bits, max %d", ErrCodeTooLong, symbol, size, maxCodeSize)
		}

		if numSymbolsWithNonZeroSizes == 0 {
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
		numSymbolsWithNonZeroSizes++
	}

	// permit degenerate code with 0 symbols
	if numSymbolsWithNonZeroSizes == 0 {
		*d = Decoder{sizes: make([]byte, numSymbols)}
		return nil
	}

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbolsWithNonZeroSizes * log2uint32(numSymbolsWithNonZeroSizes)

	table := make(map[Code]decoderData, numTableSlots)
	sizes := make([]byte, numSymbols)
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		hc := codes[symbol]
		if hc.Size == 0 {
			continue
		}
		sizes[symbol] = hc.Size
		if err := fillTable(table, symbol, hc); err != nil {
			return err
		}
	}

	*d = Decoder{
		table:   table,
		sizes:   sizes,
		minSize: minSize,
		maxSize: maxSize,
	}
	return nil
}

// NewDecoder is a convenience function that constructs a Decoder.
func NewDecoder(codes []Code) (Decoder, error) {
	var d Decoder
	err := d.Init(codes)
	return d, err
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
func (d Decoder) MaxSymbol() Symbol {
	return Symbol(len(d.sizes)) - 1
}

// SizeBySymbol returns the bit length of each Symbol's code.
func (d Decoder) SizeBySymbol() []byte {
	out := make([]byte, len(d.sizes))
	copy(out, d.sizes)
	return out
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

// fillTable records symbol's code and then walks up through each shorter
// prefix of it, widening the prefix's [minSize, maxSize] range.  Every
// prefix of an entry in the table is itself in the table, so a collision
// with another symbol's code is always seen on the way up.
func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	if old, found := table[hc]; found {
		return fmt.Errorf("%w: code %s of symbol %d collides with symbol %d", ErrNotPrefixFree, hc, symbol, old.symbol)
	}

	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For the last bit b of "xxx...b", look up the sibling "xxx...B"
		// where B = NOT b.

		bit := uint64(1) << (hc.Size - 1)
		hc.Bits ^= bit

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...B" to "xxx...".

		hc.Size--
		hc.Bits &^= bit

		ddOld, found := table[hc]
		if found && ddOld.symbol != InvalidSymbol {
			return fmt.Errorf("%w: code %s of symbol %d is a prefix of the code of symbol %d", ErrNotPrefixFree, hc, ddOld.symbol, symbol)
		}

		// If table[hc] already equals ddNew, we can stop recursing.

		if found && ddOld == ddNew {
			break
		}

		table[hc] = ddNew
		dd = ddNew
	}
	return nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Reversed().Bits < b.Reversed().Bits
}

var _ sort.Interface = byCode(nil)

// }}}
