package treasury

import (
	"errors"
	"time"
)

var ErrUnknownProduct = errors.New("treasury: unknown product")

// Bond is an immutable US treasury instrument. Yield and Years carry the curve
// snapshot the unit PV01 table is seeded from.
type Bond struct {
	CUSIP    string
	Ticker   string
	Coupon   float64
	Maturity time.Time
	Yield    float64
	Years    int
}

// bonds is seeded once and read-only afterwards.
var bonds = map[string]Bond{
	"9128283H1": {"9128283H1", "US2Y", 0.01750, date(2019, time.November, 30), 0.0464, 2},
	"9128283L2": {"9128283L2", "US3Y", 0.01875, date(2020, time.December, 15), 0.0440, 3},
	"912828M80": {"912828M80", "US5Y", 0.02000, date(2022, time.November, 30), 0.0412, 5},
	"9128283J7": {"9128283J7", "US7Y", 0.02125, date(2024, time.November, 30), 0.0430, 7},
	"9128283F5": {"9128283F5", "US10Y", 0.02250, date(2027, time.December, 15), 0.0428, 10},
	"912810TW8": {"912810TW8", "US20Y", 0.02500, date(2037, time.December, 15), 0.0461, 20},
	"912810RZ3": {"912810RZ3", "US30Y", 0.02750, date(2047, time.December, 15), 0.0443, 30},
}

// cusipsByTerm orders the curve from the front end out.
var cusipsByTerm = []string{
	"9128283H1",
	"9128283L2",
	"912828M80",
	"9128283J7",
	"9128283F5",
	"912810TW8",
	"912810RZ3",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Lookup resolves a CUSIP against the registry.
func Lookup(cusip string) (Bond, error) {
	b, ok := bonds[cusip]
	if !ok {
		return Bond{}, ErrUnknownProduct
	}
	return b, nil
}

// All returns every registered bond ordered by term.
func All() []Bond {
	out := make([]Bond, 0, len(cusipsByTerm))
	for _, cusip := range cusipsByTerm {
		out = append(out, bonds[cusip])
	}
	return out
}

// CUSIPs returns the registered identifiers ordered by term.
func CUSIPs() []string {
	out := make([]string, len(cusipsByTerm))
	copy(out, cusipsByTerm)
	return out
}

// Sector is a named bucket of instruments for aggregated risk.
type Sector struct {
	Name   string
	CUSIPs []string
}

// Sectors partitions the curve into the standard risk buckets.
func Sectors() []Sector {
	return []Sector{
		{Name: "FrontEnd", CUSIPs: []string{"9128283H1", "9128283L2"}},
		{Name: "Belly", CUSIPs: []string{"912828M80", "9128283J7", "9128283F5"}},
		{Name: "LongEnd", CUSIPs: []string{"912810TW8", "912810RZ3"}},
	}
}
