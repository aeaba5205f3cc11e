package huffpack

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncoder(t *testing.T) {
	tree := mustBuildTree(t, textbookCounts)

	var e Encoder
	if err := e.Init(tree); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"Encoder{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = e.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	actualSizes := e.SizeBySymbol()
	expectSizes := []byte{4, 4, 3, 3, 3, 1}
	if !bytes.Equal(expectSizes, actualSizes) {
		t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", expectSizes, actualSizes)
	}

	if e.MaxSymbol() != 5 {
		t.Errorf("expected MaxSymbol() = 5, got %d", e.MaxSymbol())
	}
}

func TestEncoder_Sparse(t *testing.T) {
	tree := mustBuildTree(t, CountFrequencies([]byte("aab")))
	e, err := NewEncoder(tree)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	// b and the sentinel merge first, then join a.
	type testRow struct {
		symbol Symbol
		expect string
	}
	testData := [...]testRow{
		{symbol: 'a', expect: `"1"`},
		{symbol: 'b', expect: `"01"`},
		{symbol: EndOfStream, expect: `"00"`},
		{symbol: 'c', expect: `""`},
	}
	for _, row := range testData {
		if actual := e.Encode(row.symbol).String(); actual != row.expect {
			t.Errorf("Encode(%d): expected %s, got %s", row.symbol, row.expect, actual)
		}
	}
	if e.MinSize() != 1 || e.MaxSize() != 2 {
		t.Errorf("expected sizes 1 .. 2, got %d .. %d", e.MinSize(), e.MaxSize())
	}
}
