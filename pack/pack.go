// Package pack serializes byte data with the Huffman code built by package
// huffpack, and reverses the process.
//
// A stream consists of:
//
//     magic    "HUF\x01"
//     shape    the code tree in preorder; a 0 bit is an internal node
//              followed by its left and right subtrees, a 1 bit is a leaf
//              followed by its 9-bit symbol
//     payload  the code of every input byte, then the code of EndOfStream
//     padding  zero bits up to the next byte boundary
//     checksum CRC-32 (IEEE) of the original bytes, big-endian
//
// Bits are written most significant first within each byte.  Decompress
// rejects nonzero padding.  Bytes following the checksum are not part of
// the stream; Decompress does not inspect them, and may have buffered some
// of them from its reader.
//
package pack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/icza/bitio"

	"github.com/chronos-tachyon/huffpack"
)

const magic = "HUF\x01"

// symbolBits is the width of a leaf's symbol in the tree shape.
const symbolBits = 9

// maxShapeDepth bounds the tree shape accepted by Decompress; no code may be
// longer than a huffpack.Code can hold.
const maxShapeDepth = 64

// Error is the type of errors returned by this package.
type Error string

func (e Error) Error() string { return "pack: " + string(e) }

const (
	// ErrMagic is returned when a stream does not begin with the magic
	// bytes.
	ErrMagic = Error("not a huffpack stream")

	// ErrCorrupt is returned when a stream is malformed.
	ErrCorrupt = Error("corrupt stream")

	// ErrChecksum is returned when the decoded bytes do not match the
	// stream's checksum.
	ErrChecksum = Error("checksum mismatch")
)

// Result describes a completed Compress.
type Result struct {
	// Tree is the code tree the data was compressed with.
	Tree *huffpack.Tree

	// InputBytes is the length of the original data.
	InputBytes int64

	// OutputBytes is the length of the compressed stream.
	OutputBytes int64

	// PayloadBits is the number of bits spent on coded symbols, including
	// the EndOfStream marker.
	PayloadBits uint64
}

// Compress writes the compressed form of data to w.
func Compress(w io.Writer, data []byte) (res Result, err error) {
	defer errRecover(&err)

	tree, err := huffpack.BuildTree(huffpack.CountFrequencies(data))
	errPanic(err)
	enc, err := huffpack.NewEncoder(tree)
	errPanic(err)

	cw := &countingWriter{w: w}
	_, err = io.WriteString(cw, magic)
	errPanic(err)

	bw := bitio.NewWriter(cw)
	writeShape(bw, tree, tree.Root())

	var payloadBits uint64
	for _, b := range data {
		payloadBits += writeCode(bw, enc.Encode(huffpack.Symbol(b)))
	}
	payloadBits += writeCode(bw, enc.Encode(huffpack.EndOfStream))
	errPanic(bw.Close())

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], crc32.ChecksumIEEE(data))
	_, err = cw.Write(trailer[:])
	errPanic(err)

	return Result{
		Tree:        tree,
		InputBytes:  int64(len(data)),
		OutputBytes: cw.n,
		PayloadBits: payloadBits,
	}, nil
}

// CompressBytes is like Compress, but returns the stream as a byte slice.
func CompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Compress(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reads one compressed stream from r and writes the original
// bytes to w.  It returns the number of bytes written.
func Decompress(w io.Writer, r io.Reader) (n int64, err error) {
	defer errRecover(&err)

	var head [len(magic)]byte
	_, err = io.ReadFull(r, head[:])
	if err == io.EOF || err == io.ErrUnexpectedEOF || (err == nil && string(head[:]) != magic) {
		err = ErrMagic
	}
	errPanic(err)

	br := &bitReader{r: bitio.NewReader(r)}
	codes := make([]huffpack.Code, huffpack.NumSymbols)
	readShape(br, huffpack.Code{}, codes)
	errAssert(codes[huffpack.EndOfStream].Size != 0, fmt.Errorf("%w: no end-of-stream code", ErrCorrupt))

	dec, err := huffpack.NewDecoder(codes)
	if err != nil {
		errPanic(fmt.Errorf("%w: %v", ErrCorrupt, err))
	}

	cw := &countingWriter{w: w}
	crc := crc32.NewIEEE()
	out := io.MultiWriter(cw, crc)
	var buf [4096]byte
	var pending int

	var hc huffpack.Code
	for {
		hc = hc.Append(br.readBool())
		symbol, minSize, _ := dec.Decode(hc)
		if symbol == huffpack.EndOfStream {
			break
		}
		if symbol == huffpack.InvalidSymbol {
			if minSize == 0 {
				errPanic(fmt.Errorf("%w: undecodable code %s", ErrCorrupt, hc))
			}
			continue
		}
		buf[pending] = byte(symbol)
		pending++
		if pending == len(buf) {
			_, err = out.Write(buf[:pending])
			errPanic(err)
			pending = 0
		}
		hc = huffpack.Code{}
	}
	_, err = out.Write(buf[:pending])
	errPanic(err)

	if pad := (8 - br.n%8) % 8; pad != 0 {
		errAssert(br.readBits(uint8(pad)) == 0, fmt.Errorf("%w: nonzero padding", ErrCorrupt))
	}
	sum := br.readBits(32)
	errAssert(uint32(sum) == crc.Sum32(), ErrChecksum)

	return cw.n, nil
}

// DecompressBytes is like Decompress, but operates on byte slices.
func DecompressBytes(stream []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Decompress(&buf, bytes.NewReader(stream)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeShape(bw *bitio.Writer, tree *huffpack.Tree, id huffpack.NodeID) {
	node := tree.Node(id)
	if node.IsLeaf() {
		errPanic(bw.WriteBool(true))
		errPanic(bw.WriteBits(uint64(node.Symbol), symbolBits))
		return
	}
	errPanic(bw.WriteBool(false))
	writeShape(bw, tree, node.Left)
	writeShape(bw, tree, node.Right)
}

func writeCode(bw *bitio.Writer, hc huffpack.Code) uint64 {
	errPanic(bw.WriteBits(hc.Reversed().Bits, hc.Size))
	return uint64(hc.Size)
}

// readShape fills codes from the tree shape.  A lone leaf at the root gets
// the 1-bit code "0", matching huffpack.Tree.Code.
func readShape(br *bitReader, prefix huffpack.Code, codes []huffpack.Code) {
	if !br.readBool() {
		errAssert(prefix.Size < maxShapeDepth, fmt.Errorf("%w: tree deeper than %d", ErrCorrupt, maxShapeDepth))
		readShape(br, prefix.Append(false), codes)
		readShape(br, prefix.Append(true), codes)
		return
	}

	symbol := huffpack.Symbol(br.readBits(symbolBits))
	errAssert(int(symbol) < len(codes), fmt.Errorf("%w: symbol %d out of range", ErrCorrupt, symbol))
	errAssert(codes[symbol].Size == 0, fmt.Errorf("%w: symbol %d appears twice", ErrCorrupt, symbol))
	if prefix.Size == 0 {
		prefix = huffpack.MakeCode(1, 0)
	}
	codes[symbol] = prefix
}

// bitReader counts the bits consumed since the end of the magic bytes, so
// that the padding before the checksum can be located.
type bitReader struct {
	r *bitio.Reader
	n uint64
}

func (br *bitReader) readBool() bool {
	bit, err := br.r.ReadBool()
	errPanic(unexpectedEOF(err))
	br.n++
	return bit
}

func (br *bitReader) readBits(n uint8) uint64 {
	v, err := br.r.ReadBits(n)
	errPanic(unexpectedEOF(err))
	br.n += uint64(n)
	return v
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
