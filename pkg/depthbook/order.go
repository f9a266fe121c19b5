package depthbook

type Side string

const (
	BID   Side = "BID"
	OFFER Side = "OFFER"
)

// Level is a quantity resting at a price.
type Level struct {
	Price float64
	Qty   int64
}
