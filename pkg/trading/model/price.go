package model

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// Price is the latest two-way quote for a product in mid/spread form.
type Price struct {
	Product treasury.Bond
	Mid     float64
	Spread  float64
}

func (p Price) String() string {
	return fmt.Sprintf("%s,%s,%s",
		p.Product.CUSIP, treasury.FormatPrice(p.Mid), treasury.FormatPrice(p.Spread))
}

// PriceStreamOrder is one side of a published stream: a price with the
// visible size shown to the market and the hidden size behind it.
type PriceStreamOrder struct {
	Price      float64
	VisibleQty int64
	HiddenQty  int64
	Side       PricingSide
}

// PriceStream is a published two-way price.
type PriceStream struct {
	Product treasury.Bond
	Bid     PriceStreamOrder
	Offer   PriceStreamOrder
}

func (ps PriceStream) String() string {
	return fmt.Sprintf("%s,%s,%d,%d,%s,%s,%d,%d,%s",
		ps.Product.CUSIP,
		treasury.FormatPrice(ps.Bid.Price), ps.Bid.VisibleQty, ps.Bid.HiddenQty, ps.Bid.Side,
		treasury.FormatPrice(ps.Offer.Price), ps.Offer.VisibleQty, ps.Offer.HiddenQty, ps.Offer.Side)
}

// AlgoStream wraps the PriceStream an algo produced from a Price tick.
type AlgoStream struct {
	Stream PriceStream
}
