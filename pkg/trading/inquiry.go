package trading

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
)

// InquiryService works customer quote requests, keyed by inquiry id. An
// inbound RECEIVED inquiry is quoted straight back through the connector,
// re-enters QUOTED and finishes DONE; listeners see it exactly once, in its
// final state, and no DONE record stays in the store.
type InquiryService struct {
	*Store[string, model.Inquiry]
	connector *quoteConnector
	log       *zap.SugaredLogger
}

func NewInquiryService() *InquiryService {
	s := &InquiryService{
		Store: NewStore[string, model.Inquiry](),
		log:   zap.S().Named("inquiry"),
	}
	s.connector = &quoteConnector{service: s}
	return s
}

// OnMessage advances the inquiry state machine.
func (s *InquiryService) OnMessage(inq model.Inquiry) {
	switch inq.State {
	case model.InquiryStateReceived:
		s.connector.Publish(inq)
	case model.InquiryStateQuoted:
		inq.State = model.InquiryStateDone
		s.put(inq.InquiryID, inq)
		s.notifyAdd(inq)
		s.remove(inq.InquiryID)
	case model.InquiryStateDone:
		s.remove(inq.InquiryID)
	default:
		s.put(inq.InquiryID, inq)
		s.notifyAdd(inq)
	}
}

// SendQuote reprices a live inquiry and fans out the update.
func (s *InquiryService) SendQuote(inquiryID string, price float64) {
	inq, ok := s.amend(inquiryID, func(i model.Inquiry) model.Inquiry {
		i.Price = price
		return i
	})
	if !ok {
		s.log.Warnw("send quote for unknown inquiry", "inquiry_id", inquiryID)
		return
	}
	s.notifyAdd(inq)
}

// RejectInquiry marks a live inquiry rejected. No listener hears about it.
func (s *InquiryService) RejectInquiry(inquiryID string) {
	_, ok := s.amend(inquiryID, func(i model.Inquiry) model.Inquiry {
		i.State = model.InquiryStateRejected
		return i
	})
	if !ok {
		s.log.Warnw("reject for unknown inquiry", "inquiry_id", inquiryID)
	}
}

// HandleLine parses one inquiry feed line and routes it through OnMessage.
func (s *InquiryService) HandleLine(line string) {
	inq, err := parseInquiryLine(line)
	if err != nil {
		s.log.Warnw("skipping inquiry line", "line", line, "err", err)
		return
	}
	s.OnMessage(inq)
}

// parseInquiryLine reads `inquiryId,cusip,side,quantity,price,state`.
func parseInquiryLine(line string) (model.Inquiry, error) {
	f := strings.Split(line, ",")
	if len(f) != 6 {
		return model.Inquiry{}, fmt.Errorf("%w: got %d, want 6", errBadFieldCount, len(f))
	}
	product, err := treasury.Lookup(f[1])
	if err != nil {
		return model.Inquiry{}, err
	}
	side, err := parseTradeSide(f[2])
	if err != nil {
		return model.Inquiry{}, err
	}
	qty, err := strconv.ParseInt(f[3], 10, 64)
	if err != nil {
		return model.Inquiry{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := treasury.ParsePriceFloat(f[4])
	if err != nil {
		return model.Inquiry{}, fmt.Errorf("price: %w", err)
	}
	state, err := parseInquiryState(f[5])
	if err != nil {
		return model.Inquiry{}, err
	}
	return model.Inquiry{
		InquiryID: f[0],
		Product:   product,
		Side:      side,
		Quantity:  qty,
		Price:     price,
		State:     state,
	}, nil
}

func parseInquiryState(s string) (model.InquiryState, error) {
	switch state := model.InquiryState(s); state {
	case model.InquiryStateReceived, model.InquiryStateQuoted, model.InquiryStateDone,
		model.InquiryStateRejected, model.InquiryStateCustomerRejected:
		return state, nil
	}
	return "", fmt.Errorf("%w: %q", errUnknownState, s)
}

// quoteConnector plays the dealer answering an inquiry: a received inquiry
// comes back to the service quoted, everything else is dropped.
type quoteConnector struct {
	service *InquiryService
}

func (c *quoteConnector) Publish(inq model.Inquiry) {
	if inq.State != model.InquiryStateReceived {
		return
	}
	inq.State = model.InquiryStateQuoted
	c.service.OnMessage(inq)
}
