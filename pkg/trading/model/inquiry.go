package model

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

type InquiryState string

const (
	InquiryStateReceived         InquiryState = "RECEIVED"
	InquiryStateQuoted           InquiryState = "QUOTED"
	InquiryStateDone             InquiryState = "DONE"
	InquiryStateRejected         InquiryState = "REJECTED"
	InquiryStateCustomerRejected InquiryState = "CUSTOMER_REJECTED"
)

// Inquiry is a customer request for a quote, keyed by its own id rather than
// the product.
type Inquiry struct {
	InquiryID string
	Product   treasury.Bond
	Side      TradeSide
	Quantity  int64
	Price     float64
	State     InquiryState
}

func (i Inquiry) String() string {
	return fmt.Sprintf("%s,%s,%s,%d,%s,%s",
		i.InquiryID, i.Product.CUSIP, i.Side, i.Quantity,
		treasury.FormatPrice(i.Price), i.State)
}
