package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

const (
	numBooks   = 1_000_000
	bookLevels = 5
	levelSize  = 1_000_000
)

// tally counts executions coming off the algo chain.
type tally struct {
	n   int
	qty int64
}

func (t *tally) ProcessAdd(o model.ExecutionOrder) {
	t.n++
	t.qty += o.VisibleQty + o.HiddenQty
	if t.n <= 5 {
		fmt.Printf("execution %s %s %s @ %s qty %d\n",
			o.OrderID, o.Product.CUSIP, o.Side, treasury.FormatPrice(o.Price), o.VisibleQty)
	}
}
func (t *tally) ProcessRemove(model.ExecutionOrder) {}
func (t *tally) ProcessUpdate(model.ExecutionOrder) {}

type discard struct{}

func (discard) Publish(string) {}

// bookLine renders one snapshot; half the books carry the tradeable 1/128 top
// of book spread, the other half are too wide to cross.
func bookLine(product string, stamp string, r *rand.Rand) string {
	mid := 99.0 + float64(r.Intn(512))/256
	fixSpread := 1.0 / 128
	if r.Intn(2) == 0 {
		fixSpread = 1.0 / 32
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s,%s", stamp, product)
	for level := 1; level <= bookLevels; level++ {
		depth := fixSpread * float64(level) / 2
		size := level * levelSize
		fmt.Fprintf(&b, ",%s,%d,%s,%d",
			treasury.FormatPrice(mid-depth), size,
			treasury.FormatPrice(mid+depth), size)
	}
	return b.String()
}

func main() {
	md := trading.NewMarketDataService()
	algo := trading.NewAlgoExecutionService()
	exec := trading.NewExecutionService(discard{})
	count := &tally{}

	md.AddListener(algo)
	algo.AddListener(exec)
	exec.AddListener(count)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	products := treasury.CUSIPs()
	stamp := time.Now().Format(model.TimeLayout)
	lines := make([]string, numBooks)
	for i := range lines {
		lines[i] = bookLine(products[i%len(products)], stamp, r)
	}

	start := time.Now()
	for _, line := range lines {
		md.HandleLine(line)
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Books      : %d\n", numBooks)
	fmt.Printf("Total Executions : %d\n", count.n)
	fmt.Printf("Total Matched Qty: %d\n", count.qty)
	fmt.Printf("Time Taken       : %s\n", elapsed)
	fmt.Printf("Throughput       : %.0f books/s\n", float64(numBooks)/elapsed.Seconds())
}
