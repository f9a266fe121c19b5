package model

import "github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"

// Order is one level of book depth.
type Order struct {
	Price    float64
	Quantity int64
	Side     PricingSide
}

// OrderBook is a product's bid and offer stacks. After market-data intake the
// stacks are aggregated: one entry per distinct price, bids descending and
// offers ascending.
type OrderBook struct {
	Product treasury.Bond
	Bids    []Order
	Offers  []Order
}

// BidOffer pairs the best level of each side.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// Spread is the distance between the best offer and the best bid.
func (bo BidOffer) Spread() float64 {
	return bo.Offer.Price - bo.Bid.Price
}
