package core

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"74999", "749.99", true},
		{"100", "1", true},
		{"1", "0.01", true},
		{"0", "0", true},
		{" 250 ", "2.5", true},
		{"-100", "", false},
		{"1.5", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"0.01", "0.01", true},
		{"0", "0", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"1.2.3", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatPrice(t *testing.T) {
	d := PriceFromCents(2000)
	if got := FormatPrice(d); got != "20.00" {
		t.Fatalf("expected 20.00, got %s", got)
	}
	if got := FormatPrice(PriceFromCents(5)); got != "0.05" {
		t.Fatalf("expected 0.05, got %s", got)
	}
}
