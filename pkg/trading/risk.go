package trading

import (
	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// RiskService prices positions in PV01 terms, keyed by product. It
// subscribes to PositionService. Each record's quantity accumulates the
// aggregate of every position update seen, not the latest aggregate.
type RiskService struct {
	*Store[string, model.PV01]
	nopListener[model.Position]
	log *zap.SugaredLogger
}

func NewRiskService() *RiskService {
	return &RiskService{
		Store: NewStore[string, model.PV01](),
		log:   zap.S().Named("risk"),
	}
}

// AddPosition folds a position update into the product's PV01 record and
// fans out the accumulated record.
func (s *RiskService) AddPosition(p model.Position) {
	unit, err := treasury.UnitPV01(p.Product.CUSIP)
	if err != nil {
		s.log.Warnw("no unit pv01 for product", "product", p.Product.CUSIP, "err", err)
		return
	}
	agg := p.Aggregate()
	rec := s.mutate(p.Product.CUSIP, func(r model.PV01, ok bool) model.PV01 {
		if !ok {
			return model.PV01{Product: p.Product, Unit: unit, Quantity: agg}
		}
		r.AddQuantity(agg)
		return r
	})
	s.notifyAdd(rec)
}

func (s *RiskService) ProcessAdd(p model.Position) {
	s.AddPosition(p)
}

// GetBucketedRisk totals dollar PV01 and quantity across the sector
// constituents currently in the store.
func (s *RiskService) GetBucketedRisk(sector treasury.Sector) model.SectorRisk {
	risk := model.SectorRisk{Sector: sector}
	for _, cusip := range sector.CUSIPs {
		r, ok := s.GetData(cusip)
		if !ok {
			continue
		}
		risk.PV01 += r.Unit * float64(r.Quantity)
		risk.Quantity += r.Quantity
	}
	return risk
}
