package pack

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chronos-tachyon/huffpack"
)

func testInputs() map[string][]byte {
	rand := rand.New(rand.NewSource(0))
	random := make([]byte, 1<<16)
	rand.Read(random)

	skewed := make([]byte, 1<<16)
	for i := range skewed {
		skewed[i] = byte(int(rand.ExpFloat64()*8) & 0xff)
	}

	return map[string][]byte{
		"empty":     {},
		"single":    {'x'},
		"repeated":  bytes.Repeat([]byte{'z'}, 1000),
		"two":       []byte("abababababbbbbbba"),
		"text":      []byte(strings.Repeat("It was the best of times, it was the worst of times.\n", 200)),
		"allbytes":  allBytes(),
		"random":    random,
		"skewed":    skewed,
		"sentinels": bytes.Repeat([]byte{0xff, 0x00}, 300),
	}
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	for name, input := range testInputs() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			res, err := Compress(&buf, input)
			assert.Nil(t, err)
			assert.Equal(t, int64(len(input)), res.InputBytes)
			assert.Equal(t, int64(buf.Len()), res.OutputBytes)

			// The payload is exactly the tree's cost plus one sentinel.
			sentinelLen, err := res.Tree.CodeLength(huffpack.EndOfStream)
			assert.Nil(t, err)
			assert.Equal(t, res.Tree.Cost()+uint64(sentinelLen), res.PayloadBits)

			var out bytes.Buffer
			n, err := Decompress(&out, bytes.NewReader(buf.Bytes()))
			assert.Nil(t, err)
			assert.Equal(t, int64(len(input)), n)
			assert.True(t, bytes.Equal(input, out.Bytes()), "round trip mismatch")
		})
	}
}

func TestCompressRatio(t *testing.T) {
	input := testInputs()["text"]
	stream, err := CompressBytes(input)
	assert.Nil(t, err)
	assert.True(t, len(stream) < len(input)*3/4, "text compressed to %d of %d bytes", len(stream), len(input))

	output, err := DecompressBytes(stream)
	assert.Nil(t, err)
	assert.Equal(t, input, output)
}

func TestDegenerateStream(t *testing.T) {
	// Lone sentinel: magic, shape "1" + 256, payload "0", then CRC of "".
	stream, err := CompressBytes(nil)
	assert.Nil(t, err)
	assert.Equal(t, []byte("HUF\x01\xc0\x00\x00\x00\x00\x00"), stream)

	output, err := DecompressBytes(stream)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(output))
}

func TestDecompressErrors(t *testing.T) {
	good, err := CompressBytes([]byte("hello, hello, hello world"))
	assert.Nil(t, err)

	flip := func(i int, mask byte) []byte {
		b := append([]byte(nil), good...)
		b[i] ^= mask
		return b
	}

	type testRow struct {
		name   string
		stream []byte
		expect error
	}
	testData := [...]testRow{
		{name: "empty", stream: nil, expect: ErrMagic},
		{name: "short-magic", stream: []byte("HU"), expect: ErrMagic},
		{name: "bad-magic", stream: []byte("HUF\x02rest"), expect: ErrMagic},
		{name: "no-shape", stream: []byte(magic), expect: io.ErrUnexpectedEOF},
		{name: "truncated", stream: good[:len(good)-6], expect: io.ErrUnexpectedEOF},
		{name: "no-checksum", stream: good[:len(good)-2], expect: io.ErrUnexpectedEOF},
		{name: "checksum", stream: flip(len(good)-1, 0x01), expect: ErrChecksum},
		{name: "no-sentinel", stream: []byte("HUF\x01\x80\x00"), expect: ErrCorrupt},
		{name: "symbol-range", stream: []byte("HUF\x01\xff\xc0"), expect: ErrCorrupt},
		{name: "padding", stream: []byte("HUF\x01\xc0\x01\x00\x00\x00\x00"), expect: ErrCorrupt},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := DecompressBytes(row.stream)
			assert.True(t, errors.Is(err, row.expect), "expected %v, got %v", row.expect, err)
		})
	}
}

func TestDecompressTrailingBytes(t *testing.T) {
	input := []byte("trailing bytes are left alone")
	stream, err := CompressBytes(input)
	assert.Nil(t, err)

	output, err := DecompressBytes(append(stream, "garbage"...))
	assert.Nil(t, err)
	assert.Equal(t, input, output)
}

func TestDecompressWriteError(t *testing.T) {
	stream, err := CompressBytes(bytes.Repeat([]byte("abc"), 5000))
	assert.Nil(t, err)

	errBroken := errors.New("broken writer")
	_, err = Decompress(failingWriter{errBroken}, bytes.NewReader(stream))
	assert.Equal(t, errBroken, err)

	_, err = Compress(failingWriter{errBroken}, []byte("abc"))
	assert.Equal(t, errBroken, err)
}

type failingWriter struct {
	err error
}

func (fw failingWriter) Write(p []byte) (int, error) {
	return 0, fw.err
}
