package trading

import (
	"sync"
	"time"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// DefaultGUIThrottle caps how often the GUI file takes a price line.
const DefaultGUIThrottle = 300 * time.Millisecond

// Appender persists one line. File sinks satisfy it.
type Appender interface {
	Append(line string)
}

// GUIService throttles the price stream down to a rate a screen refresh can
// follow. Prices inside the throttle window are dropped, not buffered; the
// next price after the window opens is the one written.
type GUIService struct {
	*Store[string, model.Price]
	nopListener[model.Price]
	out      Appender
	throttle time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastEmit time.Time
}

func NewGUIService(out Appender, throttle time.Duration) *GUIService {
	if throttle <= 0 {
		throttle = DefaultGUIThrottle
	}
	return &GUIService{
		Store:    NewStore[string, model.Price](),
		out:      out,
		throttle: throttle,
		now:      time.Now,
	}
}

// OnMessage stores the price and, when the throttle window has passed,
// writes a timestamped line.
func (s *GUIService) OnMessage(p model.Price) {
	s.put(p.Product.CUSIP, p)

	now := s.now()
	s.mu.Lock()
	if now.Sub(s.lastEmit) <= s.throttle {
		s.mu.Unlock()
		return
	}
	s.lastEmit = now
	s.mu.Unlock()

	if s.out != nil {
		s.out.Append(now.Format(model.TimeLayout) + "," + p.String())
	}
}

func (s *GUIService) ProcessAdd(p model.Price) {
	s.OnMessage(p)
}
