package schema

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"5000000", 5000000},
		{"  5000000  ", 5000000},
		{"5000.75", 5000},
		{"0", 0},
		{"-250", -250},
		{"+42", 42},
		{"12abc", 12},
		{"abc", AmountNaN},
		{"", AmountNaN},
		{"   ", AmountNaN},
		{"-", AmountNaN},
		{"Rp 500", AmountNaN},
	}

	for _, c := range cases {
		if got := ParseAmount(c.in); got != c.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseAmountOverflow(t *testing.T) {
	if got := ParseAmount("99999999999999999999999999"); got != AmountNaN {
		t.Errorf("Expected AmountNaN for overflowing input, got %d", got)
	}
}
