package trading

import (
	"fmt"
	"time"

	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// HistoricalDataService persists one flow of records to a history file,
// keyed the same way as the upstream service. Each persisted line is the
// record's text form behind a millisecond timestamp.
type HistoricalDataService[K comparable, V fmt.Stringer] struct {
	*Store[K, V]
	nopListener[V]
	key func(V) K
	out Appender
}

func NewHistoricalDataService[K comparable, V fmt.Stringer](out Appender, key func(V) K) *HistoricalDataService[K, V] {
	return &HistoricalDataService[K, V]{
		Store: NewStore[K, V](),
		key:   key,
		out:   out,
	}
}

// PersistData stores the record and appends its timestamped line.
func (s *HistoricalDataService[K, V]) PersistData(key K, v V) {
	s.put(key, v)
	if s.out != nil {
		s.out.Append(time.Now().Format(model.TimeLayout) + "," + v.String())
	}
}

func (s *HistoricalDataService[K, V]) ProcessAdd(v V) {
	s.PersistData(s.key(v), v)
}
