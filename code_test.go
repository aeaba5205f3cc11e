package huffpack

import (
	"testing"
)

// parseCode turns "0110" into a Code, first bit first.
func parseCode(s string) Code {
	var hc Code
	for _, ch := range s {
		hc = hc.Append(ch == '1')
	}
	return hc
}

func TestCode_String(t *testing.T) {
	type testRow struct {
		code   Code
		expect string
	}

	testData := [...]testRow{
		{code: Code{}, expect: `""`},
		{code: MakeCode(1, 0), expect: `"0"`},
		{code: MakeCode(1, 1), expect: `"1"`},
		{code: MakeCode(3, 0x1), expect: `"100"`},
		{code: MakeCode(4, 0x3), expect: `"1100"`},
		{code: parseCode("0010111"), expect: `"0010111"`},
	}
	for _, row := range testData {
		t.Run(row.expect, func(t *testing.T) {
			actual := row.code.String()
			if actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestCode_Reversed(t *testing.T) {
	hc := parseCode("1101000")
	rev := hc.Reversed()
	if expect := parseCode("0001011"); rev != expect {
		t.Errorf("expected %s, got %s", expect, rev)
	}
	if back := rev.Reversed(); back != hc {
		t.Errorf("double reverse: expected %s, got %s", hc, back)
	}

	long := MakeCode(64, 1)
	if rev := long.Reversed(); rev.Bits != uint64(1)<<63 {
		t.Errorf("64-bit reverse: got %#x", rev.Bits)
	}
}

func TestCode_Bit(t *testing.T) {
	hc := parseCode("1011")
	expect := []bool{true, false, true, true}
	for i, want := range expect {
		if got := hc.Bit(byte(i)); got != want {
			t.Errorf("Bit(%d): expected %v, got %v", i, want, got)
		}
	}
}
