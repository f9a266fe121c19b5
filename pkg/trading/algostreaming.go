package trading

import (
	"sync/atomic"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// Stream size alternation: visible size flips between one and two million
// tick over tick, hidden size is always twice the visible.
const (
	streamVisibleEven = 1_000_000
	streamVisibleOdd  = 2_000_000
)

// AlgoStreamingService converts price ticks into two-way algo streams, keyed
// by product. It subscribes to PricingService.
type AlgoStreamingService struct {
	*Store[string, model.AlgoStream]
	nopListener[model.Price]
	count int64
}

func NewAlgoStreamingService() *AlgoStreamingService {
	return &AlgoStreamingService{Store: NewStore[string, model.AlgoStream]()}
}

// ProcessAdd prices the stream half the spread each side of mid, picks the
// alternating sizes, then stores and fans out the wrapped stream.
func (s *AlgoStreamingService) ProcessAdd(p model.Price) {
	tick := atomic.AddInt64(&s.count, 1) - 1
	visible := int64(streamVisibleEven)
	if tick%2 != 0 {
		visible = streamVisibleOdd
	}
	hidden := 2 * visible

	half := p.Spread / 2
	stream := model.PriceStream{
		Product: p.Product,
		Bid: model.PriceStreamOrder{
			Price:      p.Mid - half,
			VisibleQty: visible,
			HiddenQty:  hidden,
			Side:       model.PricingSideBid,
		},
		Offer: model.PriceStreamOrder{
			Price:      p.Mid + half,
			VisibleQty: visible,
			HiddenQty:  hidden,
			Side:       model.PricingSideOffer,
		},
	}

	algo := model.AlgoStream{Stream: stream}
	s.put(p.Product.CUSIP, algo)
	s.notifyAdd(algo)
}
