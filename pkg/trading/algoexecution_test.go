package trading

import (
	"strings"
	"testing"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

func aggBook(t *testing.T, cusip string, bidPx float64, bidQty int64, offerPx float64, offerQty int64) model.OrderBook {
	t.Helper()
	return model.OrderBook{
		Product: mustBond(t, cusip),
		Bids:    []model.Order{{Price: bidPx, Quantity: bidQty, Side: model.PricingSideBid}},
		Offers:  []model.Order{{Price: offerPx, Quantity: offerQty, Side: model.PricingSideOffer}},
	}
}

func TestAlgoExecCrossesTightestBook(t *testing.T) {
	svc := NewAlgoExecutionService()
	rec := &recorder[model.AlgoExecution]{}
	svc.AddListener(rec)

	// spread exactly 1/128
	svc.ProcessAdd(aggBook(t, "9128283F5", 100.0, 2_000_000, 100.0+1.0/128, 3_000_000))

	if len(rec.got) != 1 {
		t.Fatalf("adds = %d, want 1", len(rec.got))
	}
	o := rec.got[0].Order
	if o.Side != model.PricingSideBid {
		t.Errorf("side = %s, want BID", o.Side)
	}
	if o.Price != 100.0+1.0/128 {
		t.Errorf("price = %v, want best offer", o.Price)
	}
	if o.VisibleQty != 2_000_000 || o.HiddenQty != 0 {
		t.Errorf("qty = %d/%d, want 2000000/0", o.VisibleQty, o.HiddenQty)
	}
	if o.OrderType != model.OrderTypeMarket {
		t.Errorf("type = %s, want MARKET", o.OrderType)
	}
	if rec.got[0].Market != model.MarketBrokerTec {
		t.Errorf("market = %s, want BROKERTEC", rec.got[0].Market)
	}
	if !strings.HasPrefix(o.OrderID, "Algo") || len(o.OrderID) != len("Algo")+11 {
		t.Errorf("order id = %q", o.OrderID)
	}
	if !strings.HasPrefix(o.ParentOrderID, "AlgoParent") || len(o.ParentOrderID) != len("AlgoParent")+5 {
		t.Errorf("parent id = %q", o.ParentOrderID)
	}
	if o.IsChildOrder {
		t.Error("order marked child")
	}

	if _, ok := svc.GetData("9128283F5"); !ok {
		t.Error("algo execution not stored by product")
	}
}

func TestAlgoExecWideBookProducesNothing(t *testing.T) {
	svc := NewAlgoExecutionService()
	rec := &recorder[model.AlgoExecution]{}
	svc.AddListener(rec)

	svc.ProcessAdd(aggBook(t, "9128283F5", 100.0, 1_000_000, 100.0+1.0/64, 1_000_000))

	if len(rec.got) != 0 {
		t.Fatalf("adds = %d, want 0", len(rec.got))
	}
	if _, ok := svc.GetData("9128283F5"); ok {
		t.Error("gated book left a stored record")
	}
}

func TestAlgoExecAlternatesSides(t *testing.T) {
	svc := NewAlgoExecutionService()
	rec := &recorder[model.AlgoExecution]{}
	svc.AddListener(rec)

	tight := aggBook(t, "9128283F5", 100.0, 2_000_000, 100.0+1.0/128, 3_000_000)
	svc.ProcessAdd(tight)
	svc.ProcessAdd(tight)

	if len(rec.got) != 2 {
		t.Fatalf("adds = %d, want 2", len(rec.got))
	}
	buy, sell := rec.got[0].Order, rec.got[1].Order
	if buy.Side != model.PricingSideBid || sell.Side != model.PricingSideOffer {
		t.Fatalf("sides = %s, %s, want BID, OFFER", buy.Side, sell.Side)
	}
	// the SELL hits the best bid for the offer size
	if sell.Price != 100.0 || sell.VisibleQty != 3_000_000 {
		t.Errorf("sell = %v/%d, want 100.0/3000000", sell.Price, sell.VisibleQty)
	}
}

func TestAlgoExecParityAdvancesOnGatedBooks(t *testing.T) {
	svc := NewAlgoExecutionService()
	rec := &recorder[model.AlgoExecution]{}
	svc.AddListener(rec)

	tight := aggBook(t, "9128283F5", 100.0, 1_000_000, 100.0+1.0/128, 1_000_000)
	wide := aggBook(t, "9128283F5", 100.0, 1_000_000, 100.0+1.0/32, 1_000_000)

	svc.ProcessAdd(tight) // count 0: BUY
	svc.ProcessAdd(wide)  // count 1: gated, parity still advances
	svc.ProcessAdd(tight) // count 2: BUY again

	if len(rec.got) != 2 {
		t.Fatalf("adds = %d, want 2", len(rec.got))
	}
	if rec.got[0].Order.Side != model.PricingSideBid || rec.got[1].Order.Side != model.PricingSideBid {
		t.Errorf("sides = %s, %s, want BID, BID",
			rec.got[0].Order.Side, rec.got[1].Order.Side)
	}
}

func TestAlgoExecSkipsOneSidedBook(t *testing.T) {
	svc := NewAlgoExecutionService()
	rec := &recorder[model.AlgoExecution]{}
	svc.AddListener(rec)

	svc.ProcessAdd(model.OrderBook{Product: mustBond(t, "9128283F5")})
	if len(rec.got) != 0 {
		t.Fatalf("adds = %d, want 0", len(rec.got))
	}

	// a one-sided book does not advance parity
	tight := aggBook(t, "9128283F5", 100.0, 1_000_000, 100.0+1.0/128, 1_000_000)
	svc.ProcessAdd(tight)
	if len(rec.got) != 1 || rec.got[0].Order.Side != model.PricingSideBid {
		t.Fatalf("first real book should be a BUY")
	}
}
