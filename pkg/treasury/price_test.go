package treasury

import "testing"

func TestParsePriceFractional(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100-000", 100.0},
		{"100-001", 100.00390625},
		{"99-316", 99.9921875},
		{"100-00+", 100.015625},
		{"0-003", 0.01171875},
		{"99-16+", 99.515625},
	}
	for _, c := range cases {
		got, err := ParsePriceFloat(c.in)
		if err != nil {
			t.Fatalf("ParsePriceFloat(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParsePriceFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParsePriceDecimal(t *testing.T) {
	got, err := ParsePriceFloat("99.9921875")
	if err != nil {
		t.Fatalf("ParsePriceFloat: %v", err)
	}
	if got != 99.9921875 {
		t.Errorf("ParsePriceFloat = %v, want 99.9921875", got)
	}
}

func TestParsePriceRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "100-", "100-3", "100-320", "100-008", "abc", "100-0a1"} {
		if _, err := ParsePriceFloat(in); err == nil {
			t.Errorf("ParsePriceFloat(%q): expected error", in)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{100.0, "100-000"},
		{99.9921875, "99-316"},
		{100.015625, "100-00+"},
		{99.515625, "99-16+"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.in); got != c.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPriceRoundTrip(t *testing.T) {
	// every quotable price is a multiple of 1/256 and must survive the codec
	for i := 0; i < 256; i++ {
		want := 99.0 + float64(i)/256.0
		got, err := ParsePriceFloat(FormatPrice(want))
		if err != nil {
			t.Fatalf("round trip %v: %v", want, err)
		}
		if got != want {
			t.Errorf("round trip %v came back as %v", want, got)
		}
	}
}
