// Package datagen writes the four input files the feed clients replay. Every
// value derives from one seeded source, so a seed pins the whole data set.
package datagen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// Generated file names under the data directory.
const (
	FilePrices     = "prices.txt"
	FileMarketData = "marketdata.txt"
	FileTrades     = "trades.txt"
	FileInquiries  = "inquiries.txt"
)

const (
	midStart   = 99.0
	midStep    = 1.0 / 256
	midFloor   = 99.0
	midCeiling = 101.0

	spreadMin = 1.0 / 128
	spreadMax = 1.0 / 64

	fixSpreadStep = 1.0 / 128
	fixSpreadMax  = 1.0 / 32

	bookLevels = 5
	levelSize  = 1_000_000

	tradesPerProduct    = 10
	inquiriesPerProduct = 10
	idLength            = 12
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Config controls where the files land and how much gets generated.
type Config struct {
	DataDir string
	Seed    int64
	Points  int
}

// Generate writes prices, order books, trades and inquiries for every
// registered product.
func Generate(cfg *Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	r := rand.New(rand.NewSource(cfg.Seed))
	products := treasury.CUSIPs()

	if err := writePricesAndBooks(cfg.DataDir, products, cfg.Points, r); err != nil {
		return err
	}
	if err := writeTrades(cfg.DataDir, products, r); err != nil {
		return err
	}
	return writeInquiries(cfg.DataDir, products, r)
}

// writePricesAndBooks emits the price and order book files in one pass; both
// walk the same mid, which starts at 99 and oscillates between 99 and 101 in
// 1/256 steps.
//
// Price lines carry a random spread in [1/128, 1/64]. Book lines carry five
// levels per side at fixSpread*level/2 around the mid, sized level million,
// with fixSpread walking 1/128 up to 1/32 and back so the top of book
// periodically tightens to the tradeable spread.
func writePricesAndBooks(dir string, products []string, points int, r *rand.Rand) error {
	pf, err := os.Create(filepath.Join(dir, FilePrices))
	if err != nil {
		return err
	}
	defer pf.Close()
	of, err := os.Create(filepath.Join(dir, FileMarketData))
	if err != nil {
		return err
	}
	defer of.Close()

	pw := bufio.NewWriter(pf)
	ow := bufio.NewWriter(of)

	for _, product := range products {
		mid := midStart
		rising := true
		fixSpread := fixSpreadStep
		widening := true
		now := time.Now()

		for i := 0; i < points; i++ {
			spread := spreadMin + r.Float64()*(spreadMax-spreadMin)
			now = now.Add(time.Duration(1+r.Intn(20)) * time.Millisecond)
			stamp := now.Format(model.TimeLayout)

			bid := mid - spread/2
			ask := mid + spread/2
			fmt.Fprintf(pw, "%s,%s,%s,%s,%s\n", stamp, product,
				treasury.FormatPrice(bid), treasury.FormatPrice(ask),
				strconv.FormatFloat(spread, 'g', 6, 64))

			fmt.Fprintf(ow, "%s,%s", stamp, product)
			for level := 1; level <= bookLevels; level++ {
				depth := fixSpread * float64(level) / 2
				size := level * levelSize
				fmt.Fprintf(ow, ",%s,%d,%s,%d",
					treasury.FormatPrice(mid-depth), size,
					treasury.FormatPrice(mid+depth), size)
			}
			fmt.Fprintln(ow)

			// Turn points use the pre-step quotes, so the walk
			// overshoots the bound by at most one step.
			if rising {
				mid += midStep
				if ask >= midCeiling {
					rising = false
				}
			} else {
				mid -= midStep
				if bid <= midFloor {
					rising = true
				}
			}

			if widening {
				fixSpread += fixSpreadStep
				if fixSpread >= fixSpreadMax {
					widening = false
				}
			} else {
				fixSpread -= fixSpreadStep
				if fixSpread <= fixSpreadStep {
					widening = true
				}
			}
		}
	}

	if err := pw.Flush(); err != nil {
		return err
	}
	return ow.Flush()
}

// writeTrades emits ten booked trades per product, sides alternating from
// BUY, quantities cycling one through five million, books cycling the three
// partitions.
func writeTrades(dir string, products []string, r *rand.Rand) error {
	f, err := os.Create(filepath.Join(dir, FileTrades))
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	for _, product := range products {
		for i := 0; i < tradesPerProduct; i++ {
			side := tradeSide(i)
			fmt.Fprintf(w, "%s,%s,%s,%s,%d,%s\n",
				product, randomID(r, idLength),
				treasury.FormatPrice(sidePrice(r, side)),
				model.Books[i%len(model.Books)], cycleQuantity(i), side)
		}
	}
	return w.Flush()
}

// writeInquiries emits ten customer inquiries per product, all RECEIVED, with
// the same side, price and quantity scheme as the trades.
func writeInquiries(dir string, products []string, r *rand.Rand) error {
	f, err := os.Create(filepath.Join(dir, FileInquiries))
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	for _, product := range products {
		for i := 0; i < inquiriesPerProduct; i++ {
			side := tradeSide(i)
			fmt.Fprintf(w, "%s,%s,%s,%d,%s,%s\n",
				randomID(r, idLength), product, side, cycleQuantity(i),
				treasury.FormatPrice(sidePrice(r, side)), model.InquiryStateReceived)
		}
	}
	return w.Flush()
}

func tradeSide(i int) model.TradeSide {
	if i%2 == 0 {
		return model.TradeSideBuy
	}
	return model.TradeSideSell
}

func cycleQuantity(i int) int64 {
	return int64(i%5+1) * levelSize
}

// sidePrice draws a buy in [99, 100) and a sell in [100, 101).
func sidePrice(r *rand.Rand, side model.TradeSide) float64 {
	lo := 99.0
	if side == model.TradeSideSell {
		lo = 100.0
	}
	return lo + r.Float64()
}

func randomID(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[r.Intn(len(idAlphabet))]
	}
	return string(b)
}
