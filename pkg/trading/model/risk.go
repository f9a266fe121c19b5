package model

import (
	"fmt"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// PV01 is the accumulated dollar risk per basis point for one product. Unit
// is the static per-unit value; Quantity accumulates position aggregates.
type PV01 struct {
	Product  treasury.Bond
	Unit     float64
	Quantity int64
}

// AddQuantity accumulates a position aggregate into the record.
func (p *PV01) AddQuantity(quantity int64) {
	p.Quantity += quantity
}

func (p PV01) String() string {
	return fmt.Sprintf("%s,%.6f,%d", p.Product.CUSIP, p.Unit, p.Quantity)
}

// SectorRisk is the bucketed risk for a sector: total PV01 over constituents
// rather than a per-unit value.
type SectorRisk struct {
	Sector   treasury.Sector
	PV01     float64
	Quantity int64
}

func (s SectorRisk) String() string {
	return fmt.Sprintf("%s,%.6f,%d", s.Sector.Name, s.PV01, s.Quantity)
}
