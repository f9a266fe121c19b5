package datagen

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

func generate(t *testing.T, seed int64, points int) string {
	t.Helper()
	dir := t.TempDir()
	if err := Generate(&Config{DataDir: dir, Seed: seed, Points: points}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return dir
}

func readFileLines(t *testing.T, dir, name string) []string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return strings.Split(strings.TrimSpace(string(raw)), "\n")
}

func TestGenerateWritesAllFiles(t *testing.T) {
	const points = 8
	dir := generate(t, 1, points)
	products := len(treasury.CUSIPs())

	checks := []struct {
		name   string
		lines  int
		fields int
	}{
		{FilePrices, products * points, 5},
		{FileMarketData, products * points, 22},
		{FileTrades, products * tradesPerProduct, 6},
		{FileInquiries, products * inquiriesPerProduct, 6},
	}
	for _, c := range checks {
		lines := readFileLines(t, dir, c.name)
		if len(lines) != c.lines {
			t.Errorf("%s: got %d lines, want %d", c.name, len(lines), c.lines)
		}
		for i, line := range lines {
			if got := len(strings.Split(line, ",")); got != c.fields {
				t.Fatalf("%s line %d: got %d fields, want %d", c.name, i, got, c.fields)
			}
		}
	}
}

func TestGenerateDeterministicFromSeed(t *testing.T) {
	a := generate(t, 42, 16)
	b := generate(t, 42, 16)

	// Trades and inquiries carry no timestamps and must match exactly.
	for _, name := range []string{FileTrades, FileInquiries} {
		la := readFileLines(t, a, name)
		lb := readFileLines(t, b, name)
		if len(la) != len(lb) {
			t.Fatalf("%s: line counts differ: %d vs %d", name, len(la), len(lb))
		}
		for i := range la {
			if la[i] != lb[i] {
				t.Errorf("%s line %d differs:\n%s\n%s", name, i, la[i], lb[i])
			}
		}
	}

	// Price and book lines differ only in the wall clock base; everything
	// after the timestamp field derives from the seed.
	for _, name := range []string{FilePrices, FileMarketData} {
		la := readFileLines(t, a, name)
		lb := readFileLines(t, b, name)
		if len(la) != len(lb) {
			t.Fatalf("%s: line counts differ: %d vs %d", name, len(la), len(lb))
		}
		for i := range la {
			_, restA, _ := strings.Cut(la[i], ",")
			_, restB, _ := strings.Cut(lb[i], ",")
			if restA != restB {
				t.Errorf("%s line %d differs after timestamp:\n%s\n%s", name, i, restA, restB)
			}
		}
	}
}

func TestPriceLinesStayInBand(t *testing.T) {
	dir := generate(t, 7, 600)

	for i, line := range readFileLines(t, dir, FilePrices) {
		f := strings.Split(line, ",")
		bid, err := treasury.ParsePriceFloat(f[2])
		if err != nil {
			t.Fatalf("line %d bid: %v", i, err)
		}
		ask, err := treasury.ParsePriceFloat(f[3])
		if err != nil {
			t.Fatalf("line %d ask: %v", i, err)
		}
		spread, err := strconv.ParseFloat(f[4], 64)
		if err != nil {
			t.Fatalf("line %d spread: %v", i, err)
		}
		if bid >= ask {
			t.Fatalf("line %d: bid %v not below ask %v", i, bid, ask)
		}
		// One step of overshoot past the turn plus half a spread.
		if bid < midFloor-spreadMax || ask > midCeiling+midStep+spreadMax {
			t.Fatalf("line %d: quotes %v/%v left the band", i, bid, ask)
		}
		if spread < spreadMin*0.99 || spread > spreadMax*1.01 {
			t.Fatalf("line %d: spread %v outside [1/128, 1/64]", i, spread)
		}
	}
}

func TestBookTopOfBookWalksTheSpreadCycle(t *testing.T) {
	dir := generate(t, 3, 8)
	lines := readFileLines(t, dir, FileMarketData)

	// fixSpread steps 1/128 between 1/128 and 1/32, turning at the bounds.
	want := []float64{1.0 / 128, 2.0 / 128, 3.0 / 128, 4.0 / 128, 3.0 / 128, 2.0 / 128, 1.0 / 128, 2.0 / 128}
	for i, w := range want {
		f := strings.Split(lines[i], ",")
		bid1, err := treasury.ParsePriceFloat(f[2])
		if err != nil {
			t.Fatalf("line %d bid1: %v", i, err)
		}
		ask1, err := treasury.ParsePriceFloat(f[4])
		if err != nil {
			t.Fatalf("line %d ask1: %v", i, err)
		}
		// Every level price is a multiple of 1/256, so the parse is exact.
		if got := ask1 - bid1; got != w {
			t.Errorf("line %d: top of book spread %v, want %v", i, got, w)
		}
	}

	f := strings.Split(lines[0], ",")
	for level := 1; level <= bookLevels; level++ {
		wantSize := strconv.Itoa(level * levelSize)
		if f[level*4-1] != wantSize || f[level*4+1] != wantSize {
			t.Errorf("level %d sizes: got %s/%s, want %s", level, f[level*4-1], f[level*4+1], wantSize)
		}
	}
}

func TestTradeLinesFollowTheScheme(t *testing.T) {
	dir := generate(t, 11, 4)
	lines := readFileLines(t, dir, FileTrades)

	books := []string{"TRSY1", "TRSY2", "TRSY3"}
	seen := map[string]bool{}
	for i, line := range lines {
		f := strings.Split(line, ",")
		n := i % tradesPerProduct

		if _, err := treasury.Lookup(f[0]); err != nil {
			t.Fatalf("line %d: product %q: %v", i, f[0], err)
		}
		if len(f[1]) != idLength {
			t.Errorf("line %d: id %q not %d chars", i, f[1], idLength)
		}
		if seen[f[1]] {
			t.Errorf("line %d: duplicate id %q", i, f[1])
		}
		seen[f[1]] = true

		wantSide := "BUY"
		if n%2 == 1 {
			wantSide = "SELL"
		}
		if f[5] != wantSide {
			t.Errorf("line %d: side %q, want %q", i, f[5], wantSide)
		}
		if want := books[n%3]; f[3] != want {
			t.Errorf("line %d: book %q, want %q", i, f[3], want)
		}
		if want := strconv.Itoa((n%5 + 1) * levelSize); f[4] != want {
			t.Errorf("line %d: quantity %q, want %q", i, f[4], want)
		}

		price, err := treasury.ParsePriceFloat(f[2])
		if err != nil {
			t.Fatalf("line %d price: %v", i, err)
		}
		if wantSide == "BUY" && (price < 99 || price >= 100) {
			t.Errorf("line %d: buy price %v outside [99, 100)", i, price)
		}
		if wantSide == "SELL" && (price < 100 || price >= 101) {
			t.Errorf("line %d: sell price %v outside [100, 101)", i, price)
		}
	}
}

func TestInquiryLinesStartReceived(t *testing.T) {
	dir := generate(t, 11, 4)

	for i, line := range readFileLines(t, dir, FileInquiries) {
		f := strings.Split(line, ",")
		if f[5] != "RECEIVED" {
			t.Fatalf("line %d: state %q, want RECEIVED", i, f[5])
		}
		if _, err := treasury.Lookup(f[1]); err != nil {
			t.Fatalf("line %d: product %q: %v", i, f[1], err)
		}
		if len(f[0]) != idLength {
			t.Errorf("line %d: id %q not %d chars", i, f[0], idLength)
		}
		if _, err := strconv.ParseInt(f[3], 10, 64); err != nil {
			t.Errorf("line %d: quantity %q: %v", i, f[3], err)
		}
		if _, err := treasury.ParsePriceFloat(f[4]); err != nil {
			t.Errorf("line %d: price %q: %v", i, f[4], err)
		}
	}
}
