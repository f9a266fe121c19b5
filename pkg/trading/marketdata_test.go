package trading

import (
	"strings"
	"testing"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// snapshotLine builds `ts,cusip,(bid,qty,ask,qty)x5` from level groups.
func snapshotLine(cusip string, groups ...string) string {
	return "ts," + cusip + "," + strings.Join(groups, ",")
}

func TestParseMarketDataLine(t *testing.T) {
	line := snapshotLine("9128283F5",
		"99-000,1000000,100-000,1000000",
		"99-000,2000000,100-001,2000000",
		"98-316,3000000,100-002,3000000",
		"98-310,4000000,100-003,4000000",
		"98-306,5000000,100-00+,5000000",
	)
	b, err := parseMarketDataLine(line)
	if err != nil {
		t.Fatalf("parseMarketDataLine: %v", err)
	}

	// the two 99-000 bids collapse into one 3M level
	if len(b.Bids) != 4 {
		t.Fatalf("bid levels = %d, want 4", len(b.Bids))
	}
	if b.Bids[0].Price != 99.0 || b.Bids[0].Quantity != 3_000_000 {
		t.Errorf("best bid = %v/%d, want 99.0/3000000", b.Bids[0].Price, b.Bids[0].Quantity)
	}
	for i := 1; i < len(b.Bids); i++ {
		if b.Bids[i].Price >= b.Bids[i-1].Price {
			t.Errorf("bids not descending at %d: %v >= %v", i, b.Bids[i].Price, b.Bids[i-1].Price)
		}
	}

	if len(b.Offers) != 5 {
		t.Fatalf("offer levels = %d, want 5", len(b.Offers))
	}
	if b.Offers[0].Price != 100.0 || b.Offers[0].Quantity != 1_000_000 {
		t.Errorf("best offer = %v/%d, want 100.0/1000000", b.Offers[0].Price, b.Offers[0].Quantity)
	}
	for i := 1; i < len(b.Offers); i++ {
		if b.Offers[i].Price <= b.Offers[i-1].Price {
			t.Errorf("offers not ascending at %d", i)
		}
	}

	for _, o := range b.Bids {
		if o.Side != model.PricingSideBid {
			t.Errorf("bid side = %s", o.Side)
		}
	}
	for _, o := range b.Offers {
		if o.Side != model.PricingSideOffer {
			t.Errorf("offer side = %s", o.Side)
		}
	}
}

func TestParseMarketDataLineRejects(t *testing.T) {
	bad := []string{
		"",
		"ts,9128283F5,99-000,1000000", // too short
		snapshotLine("unknown",
			"99-000,1000000,100-000,1000000",
			"99-000,2000000,100-001,2000000",
			"98-316,3000000,100-002,3000000",
			"98-310,4000000,100-003,4000000",
			"98-306,5000000,100-00+,5000000",
		),
		snapshotLine("9128283F5",
			"99-000,notaqty,100-000,1000000",
			"99-000,2000000,100-001,2000000",
			"98-316,3000000,100-002,3000000",
			"98-310,4000000,100-003,4000000",
			"98-306,5000000,100-00+,5000000",
		),
	}
	for _, line := range bad {
		if _, err := parseMarketDataLine(line); err == nil {
			t.Errorf("parseMarketDataLine(%q) accepted", line)
		}
	}
}

func TestGetBestBidOffer(t *testing.T) {
	svc := NewMarketDataService()
	if _, ok := svc.GetBestBidOffer("9128283F5"); ok {
		t.Error("best bid offer reported before any snapshot")
	}

	svc.HandleLine(snapshotLine("9128283F5",
		"99-316,1000000,100-001,1000000",
		"99-310,2000000,100-002,2000000",
		"99-304,3000000,100-003,3000000",
		"99-300,4000000,100-00+,4000000",
		"99-294,5000000,100-005,5000000",
	))

	bo, ok := svc.GetBestBidOffer("9128283F5")
	if !ok {
		t.Fatal("no best bid offer after snapshot")
	}
	// best bid 99-316 = 99.9921875, best offer 100-001 = 100.00390625
	if bo.Bid.Price != 99.9921875 || bo.Bid.Quantity != 1_000_000 {
		t.Errorf("best bid = %v/%d", bo.Bid.Price, bo.Bid.Quantity)
	}
	if bo.Offer.Price != 100.00390625 || bo.Offer.Quantity != 1_000_000 {
		t.Errorf("best offer = %v/%d", bo.Offer.Price, bo.Offer.Quantity)
	}
	if bo.Spread() != 100.00390625-99.9921875 {
		t.Errorf("spread = %v", bo.Spread())
	}
}

func TestMarketDataReplacesSnapshot(t *testing.T) {
	svc := NewMarketDataService()
	rec := &recorder[model.OrderBook]{}
	svc.AddListener(rec)

	svc.HandleLine(snapshotLine("9128283F5",
		"99-000,1000000,100-000,1000000",
		"98-316,2000000,100-001,2000000",
		"98-310,3000000,100-002,3000000",
		"98-306,4000000,100-003,4000000",
		"98-300,5000000,100-00+,5000000",
	))
	svc.HandleLine(snapshotLine("9128283F5",
		"99-160,1000000,99-162,1000000",
		"99-156,2000000,99-166,2000000",
		"99-150,3000000,99-170,3000000",
		"99-146,4000000,99-172,4000000",
		"99-140,5000000,99-176,5000000",
	))

	if len(rec.got) != 2 {
		t.Fatalf("adds = %d, want 2", len(rec.got))
	}
	bo, _ := svc.GetBestBidOffer("9128283F5")
	if bo.Bid.Price != 99.5 {
		t.Errorf("stored book not replaced, best bid = %v", bo.Bid.Price)
	}
}
