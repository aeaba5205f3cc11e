package huffpack

import (
	"io"
)

// CountFrequencies counts the occurrences of each byte value in data.  The
// result has NumSymbols slots; the EndOfStream slot is always zero, since the
// sentinel never occurs in data.
func CountFrequencies(data []byte) []uint64 {
	counts := make([]uint64, NumSymbols)
	for _, b := range data {
		counts[b]++
	}
	return counts
}

// ReadFrequencies is like CountFrequencies, but consumes r until io.EOF.
func ReadFrequencies(r io.Reader) ([]uint64, error) {
	counts := make([]uint64, NumSymbols)
	buf := make([]byte, 32<<10)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			counts[b]++
		}
		if err == io.EOF {
			return counts, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
