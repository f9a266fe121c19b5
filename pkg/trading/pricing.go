package trading

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// PricingService is the intake for the two-way price feed, keyed by product.
type PricingService struct {
	*Store[string, model.Price]
	log *zap.SugaredLogger
}

func NewPricingService() *PricingService {
	return &PricingService{
		Store: NewStore[string, model.Price](),
		log:   zap.S().Named("pricing"),
	}
}

// OnMessage stores the latest price for the product and fans it out.
func (s *PricingService) OnMessage(p model.Price) {
	s.put(p.Product.CUSIP, p)
	s.notifyAdd(p)
}

// HandleLine parses one raw feed line and routes it through OnMessage.
// Malformed lines and unknown products are logged and skipped.
func (s *PricingService) HandleLine(line string) {
	p, err := parsePriceLine(line)
	if err != nil {
		s.log.Warnw("skipping price line", "line", line, "err", err)
		return
	}
	s.OnMessage(p)
}

// parsePriceLine reads `timestamp,cusip,bid,ask,spread`. Mid is derived from
// bid and ask; the spread column is taken as published. Prices may be
// fractional or decimal.
func parsePriceLine(line string) (model.Price, error) {
	f := strings.Split(line, ",")
	if len(f) != 5 {
		return model.Price{}, fmt.Errorf("%w: got %d, want 5", errBadFieldCount, len(f))
	}
	product, err := treasury.Lookup(f[1])
	if err != nil {
		return model.Price{}, err
	}
	bid, err := treasury.ParsePriceFloat(f[2])
	if err != nil {
		return model.Price{}, fmt.Errorf("bid: %w", err)
	}
	ask, err := treasury.ParsePriceFloat(f[3])
	if err != nil {
		return model.Price{}, fmt.Errorf("ask: %w", err)
	}
	spread, err := treasury.ParsePriceFloat(f[4])
	if err != nil {
		return model.Price{}, fmt.Errorf("spread: %w", err)
	}
	return model.Price{Product: product, Mid: (bid + ask) / 2, Spread: spread}, nil
}
