package huffpack

// Error is the type of errors returned by this package.
type Error string

func (e Error) Error() string { return "huffpack: " + string(e) }

const (
	// ErrEmptyAlphabet is returned when building from a zero-length
	// frequency table, which has no room for the sentinel.
	ErrEmptyAlphabet = Error("empty alphabet")

	// ErrAlphabetTooLarge is returned when a frequency table has more
	// slots than there are valid Symbols.
	ErrAlphabetTooLarge = Error("alphabet too large")

	// ErrSymbolRange is returned for a Symbol outside the alphabet.
	ErrSymbolRange = Error("symbol out of range")

	// ErrNoLeaf is returned for a Symbol that has no leaf in the tree,
	// i.e. one whose frequency was zero.
	ErrNoLeaf = Error("symbol has no code")

	// ErrCodeTooLong is returned when a leaf is too deep for its code
	// to fit in a Code.
	ErrCodeTooLong = Error("code too long")

	// ErrNotPrefixFree is returned by Decoder.Init when one code is a
	// prefix of another.
	ErrNotPrefixFree = Error("code is not prefix free")
)
