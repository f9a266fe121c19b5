package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// Position is the signed per-book inventory for one product.
type Position struct {
	Product treasury.Bond
	Books   map[Book]int64
}

// NewPosition seeds every book at zero so persisted lines always show the
// full partition.
func NewPosition(product treasury.Bond) Position {
	books := make(map[Book]int64, len(Books))
	for _, b := range Books {
		books[b] = 0
	}
	return Position{Product: product, Books: books}
}

// Add applies a signed fill to one book. Positions only ever accumulate;
// nothing replaces a slot.
func (p *Position) Add(book Book, quantity int64) {
	p.Books[book] += quantity
}

// Aggregate sums the books.
func (p Position) Aggregate() int64 {
	var total int64
	for _, q := range p.Books {
		total += q
	}
	return total
}

// Clone returns an independent copy safe to hand to listeners.
func (p Position) Clone() Position {
	books := make(map[Book]int64, len(p.Books))
	for b, q := range p.Books {
		books[b] = q
	}
	return Position{Product: p.Product, Books: books}
}

func (p Position) String() string {
	books := make([]string, 0, len(p.Books))
	for b := range p.Books {
		books = append(books, string(b))
	}
	sort.Strings(books)

	var sb strings.Builder
	sb.WriteString(p.Product.CUSIP)
	for _, b := range books {
		fmt.Fprintf(&sb, ",%s,%d", b, p.Books[Book(b)])
	}
	fmt.Fprintf(&sb, ",Total,%d", p.Aggregate())
	return sb.String()
}
