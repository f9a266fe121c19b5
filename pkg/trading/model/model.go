// Package model holds the record types flowing through the service graph.
// Records are plain values: services store them by key and hand copies to
// listeners, so nothing here carries locks or back-references.
package model

// TimeLayout is the millisecond timestamp prefixed to every persisted line.
const TimeLayout = "2006-01-02 15:04:05.000"

// PricingSide is the side of a quoted or resting level.
type PricingSide string

const (
	PricingSideBid   PricingSide = "BID"
	PricingSideOffer PricingSide = "OFFER"
)

// TradeSide is the direction of a booked trade or inquiry.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Book is a named position partition.
type Book string

const (
	BookTRSY1 Book = "TRSY1"
	BookTRSY2 Book = "TRSY2"
	BookTRSY3 Book = "TRSY3"
)

// Books lists the partitions in rotation order.
var Books = []Book{BookTRSY1, BookTRSY2, BookTRSY3}
