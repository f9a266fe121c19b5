package trading

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// TradeBookingService books trades into position books, keyed by trade id.
// Trades arrive two ways: from the trade feed through OnMessage, and from
// the execution flow through BookTrade.
type TradeBookingService struct {
	*Store[string, model.Trade]
	log *zap.SugaredLogger
}

func NewTradeBookingService() *TradeBookingService {
	return &TradeBookingService{
		Store: NewStore[string, model.Trade](),
		log:   zap.S().Named("tradebooking"),
	}
}

// OnMessage stores the trade and fans it out.
func (s *TradeBookingService) OnMessage(t model.Trade) {
	s.put(t.TradeID, t)
	s.notifyAdd(t)
}

// BookTrade pushes an internally generated trade straight to the listeners
// without touching the store.
func (s *TradeBookingService) BookTrade(t model.Trade) {
	s.notifyAdd(t)
}

// HandleLine parses one trade feed line and routes it through OnMessage.
func (s *TradeBookingService) HandleLine(line string) {
	t, err := parseTradeLine(line)
	if err != nil {
		s.log.Warnw("skipping trade line", "line", line, "err", err)
		return
	}
	s.OnMessage(t)
}

// parseTradeLine reads `cusip,tradeId,price,book,quantity,side`.
func parseTradeLine(line string) (model.Trade, error) {
	f := strings.Split(line, ",")
	if len(f) != 6 {
		return model.Trade{}, fmt.Errorf("%w: got %d, want 6", errBadFieldCount, len(f))
	}
	product, err := treasury.Lookup(f[0])
	if err != nil {
		return model.Trade{}, err
	}
	price, err := treasury.ParsePriceFloat(f[2])
	if err != nil {
		return model.Trade{}, fmt.Errorf("price: %w", err)
	}
	book, err := parseBook(f[3])
	if err != nil {
		return model.Trade{}, err
	}
	qty, err := strconv.ParseInt(f[4], 10, 64)
	if err != nil {
		return model.Trade{}, fmt.Errorf("quantity: %w", err)
	}
	side, err := parseTradeSide(f[5])
	if err != nil {
		return model.Trade{}, err
	}
	return model.Trade{
		Product:  product,
		TradeID:  f[1],
		Price:    price,
		Book:     book,
		Quantity: qty,
		Side:     side,
	}, nil
}

func parseBook(s string) (model.Book, error) {
	switch b := model.Book(s); b {
	case model.BookTRSY1, model.BookTRSY2, model.BookTRSY3:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", errUnknownBook, s)
}

func parseTradeSide(s string) (model.TradeSide, error) {
	switch side := model.TradeSide(s); side {
	case model.TradeSideBuy, model.TradeSideSell:
		return side, nil
	}
	return "", fmt.Errorf("%w: %q", errUnknownSide, s)
}

// executionTradeListener converts placed execution orders into trades. The
// booking cycles TRSY2, TRSY3, TRSY1 because the counter advances before
// the pick.
type executionTradeListener struct {
	nopListener[model.ExecutionOrder]
	booking *TradeBookingService
	count   int64
}

func newExecutionTradeListener(booking *TradeBookingService) *executionTradeListener {
	return &executionTradeListener{booking: booking}
}

func (l *executionTradeListener) ProcessAdd(o model.ExecutionOrder) {
	n := atomic.AddInt64(&l.count, 1)
	side := model.TradeSideBuy
	if o.Side == model.PricingSideOffer {
		side = model.TradeSideSell
	}
	l.booking.BookTrade(model.Trade{
		Product:  o.Product,
		TradeID:  o.OrderID,
		Price:    o.Price,
		Book:     model.Books[n%3],
		Quantity: o.VisibleQty + o.HiddenQty,
		Side:     side,
	})
}
