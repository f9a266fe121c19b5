// Package depthbook collects raw depth levels for one product and folds them
// into aggregated stacks: one level per distinct price, quantities summed,
// bids descending and offers ascending.
package depthbook

import (
	"container/heap"
	"sync"

	"github.com/gammazero/deque"
)

type Book struct {
	symbol string

	bids   map[float64]*deque.Deque[Level]
	offers map[float64]*deque.Deque[Level]

	bidHeap   *PriceHeap
	offerHeap *PriceHeap

	mu sync.Mutex
}

func New(symbol string) *Book {
	return &Book{
		symbol:    symbol,
		bids:      make(map[float64]*deque.Deque[Level]),
		offers:    make(map[float64]*deque.Deque[Level]),
		bidHeap:   NewPriceHeap(func(i, j float64) bool { return i > j }), // Max-heap
		offerHeap: NewPriceHeap(func(i, j float64) bool { return i < j }), // Min-heap
	}
}

func (b *Book) Symbol() string {
	return b.symbol
}

// Add queues one raw level on a side. Levels at the same price stack up until
// Aggregate folds them.
func (b *Book) Add(side Side, price float64, qty int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	book, priceHeap := b.bids, b.bidHeap
	if side == OFFER {
		book, priceHeap = b.offers, b.offerHeap
	}

	if book[price] == nil {
		book[price] = &deque.Deque[Level]{}
		heap.Push(priceHeap, price)
	}
	book[price].PushBack(Level{Price: price, Qty: qty})
}

// Aggregate drains the book into per-price totals, best price first on each
// side, and resets it for the next snapshot.
func (b *Book) Aggregate() (bids, offers []Level) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bids = drain(b.bids, b.bidHeap)
	offers = drain(b.offers, b.offerHeap)
	return bids, offers
}

func drain(book map[float64]*deque.Deque[Level], priceHeap *PriceHeap) []Level {
	levels := make([]Level, 0, len(book))
	for priceHeap.Len() > 0 {
		price := heap.Pop(priceHeap).(float64)
		q := book[price]
		total := Level{Price: price}
		for q.Len() > 0 {
			total.Qty += q.PopFront().Qty
		}
		delete(book, price)
		levels = append(levels, total)
	}
	return levels
}
