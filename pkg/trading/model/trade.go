package model

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// Trade is a fill booked into a position book.
type Trade struct {
	Product  treasury.Bond
	TradeID  string
	Price    float64
	Book     Book
	Quantity int64
	Side     TradeSide
}

func (t Trade) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%d,%s",
		t.Product.CUSIP, t.TradeID, treasury.FormatPrice(t.Price), t.Book, t.Quantity, t.Side)
}
