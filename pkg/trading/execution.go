package trading

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// ExecutionService places algo orders on the market, keyed by order id. It
// subscribes to AlgoExecutionService and dumps every placed order to the
// execution socket.
type ExecutionService struct {
	*Store[string, model.ExecutionOrder]
	nopListener[model.AlgoExecution]
	pub Publisher
}

func NewExecutionService(pub Publisher) *ExecutionService {
	return &ExecutionService{
		Store: NewStore[string, model.ExecutionOrder](),
		pub:   pub,
	}
}

// ExecuteOrder places the order: store, fan out, dump downstream.
func (s *ExecutionService) ExecuteOrder(o model.ExecutionOrder, m model.Market) {
	s.put(o.OrderID, o)
	s.notifyAdd(o)
	if s.pub != nil {
		s.pub.Publish(formatExecutionDump(o, m))
	}
}

func (s *ExecutionService) ProcessAdd(a model.AlgoExecution) {
	s.ExecuteOrder(a.Order, a.Market)
}

func formatExecutionDump(o model.ExecutionOrder, m model.Market) string {
	side := "Bid"
	if o.Side == model.PricingSideOffer {
		side = "Offer"
	}
	child := "False"
	if o.IsChildOrder {
		child = "True"
	}
	return fmt.Sprintf("ExecutionOrder: \n"+
		"\tProduct: %s\tOrderId: %s\tTrade Market: %s\n"+
		"\tPricingSide: %s\tOrderType: %s\t\tIsChildOrder: %s\n"+
		"\tPrice: %f\tVisibleQuantity: %d\tHiddenQuantity: %d\n",
		o.Product.CUSIP, o.OrderID, m,
		side, o.OrderType, child,
		o.Price, o.VisibleQty, o.HiddenQty)
}
