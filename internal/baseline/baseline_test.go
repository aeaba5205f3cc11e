package baseline

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizes(t *testing.T) {
	text := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500)

	sizes, err := Sizes(text)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(sizes))

	byCodec := make(map[string]int64)
	for _, s := range sizes {
		assert.True(t, s.Bytes > 0, "%s: empty output", s.Codec)
		assert.True(t, s.Bytes < int64(len(text)), "%s: %d bytes for %d input bytes", s.Codec, s.Bytes, len(text))
		byCodec[s.Codec] = s.Bytes
	}

	// Matching beats pure entropy coding on repetitive text.
	assert.True(t, byCodec["deflate-best"] < byCodec["deflate-huffman"])
}

func TestFlateHuffmanOnly_Random(t *testing.T) {
	rand := rand.New(rand.NewSource(0))
	data := make([]byte, 1<<14)
	rand.Read(data)

	n, err := FlateHuffmanOnly(data)
	assert.Nil(t, err)
	// Incompressible input costs at most a little framing overhead.
	assert.True(t, n < int64(len(data))+256, "got %d", n)
}

func TestXZ_Empty(t *testing.T) {
	n, err := XZ(nil)
	assert.Nil(t, err)
	assert.True(t, n > 0)
}
