package huffpack

import (
	"math"
)

// Symbol represents a symbol in an alphabet.  Negative symbols are not
// valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32 - 1)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// NumSymbols is the size of the byte alphabet: every byte value plus the
// end-of-stream sentinel.
const NumSymbols = 257

// EndOfStream is the sentinel symbol of the byte alphabet.  It never occurs
// in input data; the packer writes it once to mark the end of the payload.
const EndOfStream = Symbol(NumSymbols - 1)
