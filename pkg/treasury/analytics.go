package treasury

import "github.com/shopspring/decimal"

const (
	faceValue = 1000
	frequency = 2 // semi-annual
	bumpBp    = "0.0001"
)

// unitPV01 is seeded once from the registry's curve snapshot.
var unitPV01 = map[string]float64{}

func init() {
	for cusip, b := range bonds {
		unitPV01[cusip] = pv01(b).InexactFloat64()
	}
}

// UnitPV01 returns the per-unit PV01 for a CUSIP.
func UnitPV01(cusip string) (float64, error) {
	v, ok := unitPV01[cusip]
	if !ok {
		return 0, ErrUnknownProduct
	}
	return v, nil
}

// PriceFromYield discounts the semi-annual coupon stream and redemption of a
// face-value bond at the given annual yield.
func PriceFromYield(face, coupon, yield decimal.Decimal, years int) decimal.Decimal {
	freq := decimal.NewFromInt(frequency)
	one := decimal.NewFromInt(1)

	couponAmt := face.Mul(coupon).Div(freq)
	base := one.Add(yield.Div(freq))

	price := decimal.Zero
	periods := int64(years * frequency)
	for t := int64(1); t <= periods; t++ {
		df := one.Div(base.Pow(decimal.NewFromInt(t)))
		price = price.Add(couponAmt.Mul(df))
	}
	price = price.Add(face.Mul(one.Div(base.Pow(decimal.NewFromInt(periods)))))

	return price
}

// pv01 is the price drop for a one basis point parallel bump of the bond's
// curve snapshot.
func pv01(b Bond) decimal.Decimal {
	face := decimal.NewFromInt(faceValue)
	coupon := decimal.NewFromFloat(b.Coupon)
	yield := decimal.NewFromFloat(b.Yield)
	bump := decimal.RequireFromString(bumpBp)

	base := PriceFromYield(face, coupon, yield, b.Years)
	bumped := PriceFromYield(face, coupon, yield.Add(bump), b.Years)
	return base.Sub(bumped)
}
