package treasury

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Treasury prices quote the fractional part in 32nds plus an eighth of a 32nd:
// "99-316" is 99 + 31/32 + 6/256. The trailing digit '+' stands for 4/256 (half
// a 32nd). Every representable price is a multiple of 1/256, so the float64
// form is exact.

var (
	thirtySeconds = decimal.NewFromInt(32)
	eighths       = decimal.NewFromInt(256)
)

// ParsePrice converts a price in fractional or plain decimal notation to its
// decimal value.
func ParsePrice(s string) (decimal.Decimal, error) {
	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("treasury: parse price %q: %w", s, err)
		}
		return d, nil
	}

	if len(s) != dash+4 {
		return decimal.Decimal{}, fmt.Errorf("treasury: parse price %q: want xxx-yyz", s)
	}
	whole, err := decimal.NewFromString(s[:dash])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("treasury: parse price %q: %w", s, err)
	}
	xy, err := strconv.Atoi(s[dash+1 : dash+3])
	if err != nil || xy > 31 {
		return decimal.Decimal{}, fmt.Errorf("treasury: parse price %q: bad 32nds", s)
	}
	z := 0
	switch c := s[dash+3]; {
	case c == '+':
		z = 4
	case c >= '0' && c <= '7':
		z = int(c - '0')
	default:
		return decimal.Decimal{}, fmt.Errorf("treasury: parse price %q: bad 256ths", s)
	}

	frac := decimal.NewFromInt(int64(xy)).Div(thirtySeconds).
		Add(decimal.NewFromInt(int64(z)).Div(eighths))
	return whole.Add(frac), nil
}

// ParsePriceFloat is ParsePrice narrowed to the float64 the record hot path
// carries.
func ParsePriceFloat(s string) (float64, error) {
	d, err := ParsePrice(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// FormatPrice renders a price in fractional 32nd notation.
func FormatPrice(price float64) string {
	whole := int(math.Floor(price))
	frac := price - float64(whole)
	xy := int(frac * 32)
	z := int(frac*256) % 8
	zs := strconv.Itoa(z)
	if z == 4 {
		zs = "+"
	}
	return fmt.Sprintf("%d-%02d%s", whole, xy, zs)
}
