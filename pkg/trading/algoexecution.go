package trading

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// tightestSpread is the gate for aggressing: the algo only crosses when the
// book is quoted at the minimum increment. Treasury prices are dyadic so the
// equality case compares exactly.
const tightestSpread = 1.0 / 128

// AlgoExecutionService turns order books into market orders, keyed by
// product. It subscribes to MarketDataService and only trades the tightest
// books, alternating sides book over book.
type AlgoExecutionService struct {
	*Store[string, model.AlgoExecution]
	nopListener[model.OrderBook]
	log   *zap.SugaredLogger
	count int64
}

func NewAlgoExecutionService() *AlgoExecutionService {
	return &AlgoExecutionService{
		Store: NewStore[string, model.AlgoExecution](),
		log:   zap.S().Named("algoexecution"),
	}
}

// ProcessAdd inspects the top of the book. The side counter advances on
// every book whether or not the gate passes, so parity tracks books seen,
// not orders sent. A book wider than the tightest spread produces nothing.
func (s *AlgoExecutionService) ProcessAdd(b model.OrderBook) {
	if len(b.Bids) == 0 || len(b.Offers) == 0 {
		s.log.Warnw("book missing a side", "product", b.Product.CUSIP)
		return
	}
	bo := model.BidOffer{Bid: b.Bids[0], Offer: b.Offers[0]}

	buy := (atomic.AddInt64(&s.count, 1)-1)%2 == 0
	if bo.Spread() > tightestSpread {
		return
	}

	// Cross the spread: a BUY lifts the best offer for the bid size, a SELL
	// hits the best bid for the offer size.
	var (
		side  model.PricingSide
		price float64
		qty   int64
	)
	if buy {
		side = model.PricingSideBid
		price = bo.Offer.Price
		qty = bo.Bid.Quantity
	} else {
		side = model.PricingSideOffer
		price = bo.Bid.Price
		qty = bo.Offer.Quantity
	}

	algo := model.AlgoExecution{
		Order: model.ExecutionOrder{
			Product:       b.Product,
			Side:          side,
			OrderID:       "Algo" + randomID(11),
			OrderType:     model.OrderTypeMarket,
			Price:         price,
			VisibleQty:    qty,
			HiddenQty:     0,
			ParentOrderID: "AlgoParent" + randomID(5),
			IsChildOrder:  false,
		},
		Market: model.MarketBrokerTec,
	}
	s.put(b.Product.CUSIP, algo)
	s.notifyAdd(algo)
}
