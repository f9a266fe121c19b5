package trading

import (
	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// PositionService accumulates signed trade quantity per book, keyed by
// product. It subscribes to TradeBookingService.
type PositionService struct {
	*Store[string, model.Position]
	nopListener[model.Trade]
}

func NewPositionService() *PositionService {
	return &PositionService{Store: NewStore[string, model.Position]()}
}

// AddTrade applies the signed fill to the product's position and fans out a
// snapshot of the result. The read-modify-write runs under the store lock so
// concurrent fills on one product cannot lose updates.
func (s *PositionService) AddTrade(t model.Trade) {
	qty := t.Quantity
	if t.Side == model.TradeSideSell {
		qty = -qty
	}

	var snapshot model.Position
	s.mutate(t.Product.CUSIP, func(p model.Position, ok bool) model.Position {
		if !ok {
			p = model.NewPosition(t.Product)
		}
		p.Add(t.Book, qty)
		snapshot = p.Clone()
		return p
	})
	s.notifyAdd(snapshot)
}

func (s *PositionService) ProcessAdd(t model.Trade) {
	s.AddTrade(t)
}
