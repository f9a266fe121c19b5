package trading

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/depthbook"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// bookDepth is the number of levels each side of a snapshot carries.
const bookDepth = 5

// MarketDataService is the intake for order book snapshots, keyed by
// product. Snapshots are stored aggregated: one level per distinct price,
// best first.
type MarketDataService struct {
	*Store[string, model.OrderBook]
	log *zap.SugaredLogger
}

func NewMarketDataService() *MarketDataService {
	return &MarketDataService{
		Store: NewStore[string, model.OrderBook](),
		log:   zap.S().Named("marketdata"),
	}
}

// OnMessage stores the aggregated book and fans it out.
func (s *MarketDataService) OnMessage(b model.OrderBook) {
	s.put(b.Product.CUSIP, b)
	s.notifyAdd(b)
}

// GetBestBidOffer returns the top level of each side of the stored book.
func (s *MarketDataService) GetBestBidOffer(productID string) (model.BidOffer, bool) {
	b, ok := s.GetData(productID)
	if !ok || len(b.Bids) == 0 || len(b.Offers) == 0 {
		return model.BidOffer{}, false
	}
	return model.BidOffer{Bid: b.Bids[0], Offer: b.Offers[0]}, true
}

// HandleLine parses one snapshot line and routes it through OnMessage.
func (s *MarketDataService) HandleLine(line string) {
	b, err := parseMarketDataLine(line)
	if err != nil {
		s.log.Warnw("skipping market data line", "line", line, "err", err)
		return
	}
	s.OnMessage(b)
}

// parseMarketDataLine reads `timestamp,cusip` followed by five
// (bid,bidQty,ask,askQty) level groups, then folds the raw levels through a
// depth book so equal prices sum and sides come out best-first.
func parseMarketDataLine(line string) (model.OrderBook, error) {
	f := strings.Split(line, ",")
	if len(f) != 2+4*bookDepth {
		return model.OrderBook{}, fmt.Errorf("%w: got %d, want %d", errBadFieldCount, len(f), 2+4*bookDepth)
	}
	product, err := treasury.Lookup(f[1])
	if err != nil {
		return model.OrderBook{}, err
	}

	book := depthbook.New(product.CUSIP)
	for i := 0; i < bookDepth; i++ {
		g := f[2+4*i : 2+4*i+4]
		bidPx, err := treasury.ParsePriceFloat(g[0])
		if err != nil {
			return model.OrderBook{}, fmt.Errorf("level %d bid: %w", i+1, err)
		}
		bidQty, err := strconv.ParseInt(g[1], 10, 64)
		if err != nil {
			return model.OrderBook{}, fmt.Errorf("level %d bid qty: %w", i+1, err)
		}
		askPx, err := treasury.ParsePriceFloat(g[2])
		if err != nil {
			return model.OrderBook{}, fmt.Errorf("level %d ask: %w", i+1, err)
		}
		askQty, err := strconv.ParseInt(g[3], 10, 64)
		if err != nil {
			return model.OrderBook{}, fmt.Errorf("level %d ask qty: %w", i+1, err)
		}
		book.Add(depthbook.BID, bidPx, bidQty)
		book.Add(depthbook.OFFER, askPx, askQty)
	}

	bids, offers := book.Aggregate()
	return model.OrderBook{
		Product: product,
		Bids:    toOrders(bids, model.PricingSideBid),
		Offers:  toOrders(offers, model.PricingSideOffer),
	}, nil
}

func toOrders(levels []depthbook.Level, side model.PricingSide) []model.Order {
	orders := make([]model.Order, len(levels))
	for i, l := range levels {
		orders[i] = model.Order{Price: l.Price, Quantity: l.Qty, Side: side}
	}
	return orders
}
