package trading

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// Publisher pushes a rendered dump to a downstream consumer. The socket
// sinks satisfy it.
type Publisher interface {
	Publish(record string)
}

// StreamingService re-publishes algo streams to the market, keyed by
// product. It subscribes to AlgoStreamingService and dumps every stream to
// the stream socket.
type StreamingService struct {
	*Store[string, model.PriceStream]
	nopListener[model.AlgoStream]
	pub Publisher
}

func NewStreamingService(pub Publisher) *StreamingService {
	return &StreamingService{
		Store: NewStore[string, model.PriceStream](),
		pub:   pub,
	}
}

// PublishPrice stores the stream, fans it out and dumps it downstream.
func (s *StreamingService) PublishPrice(ps model.PriceStream) {
	s.put(ps.Product.CUSIP, ps)
	s.notifyAdd(ps)
	if s.pub != nil {
		s.pub.Publish(formatStreamDump(ps))
	}
}

func (s *StreamingService) ProcessAdd(a model.AlgoStream) {
	s.PublishPrice(a.Stream)
}

func formatStreamDump(ps model.PriceStream) string {
	return fmt.Sprintf("Price Stream (Product %s): \n"+
		"\tBid\tPrice: %f\tVisibleQuantity: %d\tHiddenQuantity: %d\n"+
		"\tAsk\tPrice: %f\tVisibleQuantity: %d\tHiddenQuantity: %d\n",
		ps.Product.CUSIP,
		ps.Bid.Price, ps.Bid.VisibleQty, ps.Bid.HiddenQty,
		ps.Offer.Price, ps.Offer.VisibleQty, ps.Offer.HiddenQty)
}
