// Package baseline measures how general-purpose codecs fare on the same
// input, for comparison against huffpack's output size.
package baseline

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// Size is the compressed size of an input under one codec.
type Size struct {
	Codec string
	Bytes int64
}

// Sizes compresses data with every baseline codec.
func Sizes(data []byte) ([]Size, error) {
	huff, err := FlateHuffmanOnly(data)
	if err != nil {
		return nil, err
	}
	best, err := FlateBest(data)
	if err != nil {
		return nil, err
	}
	x, err := XZ(data)
	if err != nil {
		return nil, err
	}
	return []Size{
		{Codec: "deflate-huffman", Bytes: huff},
		{Codec: "deflate-best", Bytes: best},
		{Codec: "xz", Bytes: x},
	}, nil
}

// FlateHuffmanOnly returns the DEFLATE size of data using Huffman coding
// alone, with no LZ77 matching.  This is the closest relative of a huffpack
// stream.
func FlateHuffmanOnly(data []byte) (int64, error) {
	return flateSize(data, flate.HuffmanOnly)
}

// FlateBest returns the DEFLATE size of data at maximum compression.
func FlateBest(data []byte) (int64, error) {
	return flateSize(data, flate.BestCompression)
}

// XZ returns the xz size of data with default settings.
func XZ(data []byte) (int64, error) {
	var cw countingWriter
	w, err := xz.NewWriter(&cw)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

func flateSize(data []byte, level int) (int64, error) {
	var cw countingWriter
	w, err := flate.NewWriter(&cw, level)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

type countingWriter struct {
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.n += int64(len(p))
	return len(p), nil
}

var _ io.Writer = (*countingWriter)(nil)
