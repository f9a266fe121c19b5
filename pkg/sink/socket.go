// Package sink carries records out of the pipeline: framed socket broadcasts
// to downstream consumers and append-only text files for the historical
// record. Socket writes are asynchronous; file writes are not.
package sink

import (
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

const frameDelim = '\r'

var errSinkStopped = errors.New("sink stopped")

type SocketSinkConfig struct {
	Name      string
	Addr      string
	QueueSize int           // defaults to 1024
	DialFor   time.Duration // give up dialing after this long, defaults to 30s
}

// SocketSink broadcasts records to one downstream endpoint. Publish enqueues
// and returns immediately; a writer goroutine drains the queue with '\r'
// framing. A full queue or dead connection drops the record.
type SocketSink struct {
	name string
	addr string

	dialFor time.Duration
	queue   chan string
	stop    chan struct{}
	done    chan struct{}

	log *zap.SugaredLogger
}

func NewSocketSink(cfg *SocketSinkConfig) *SocketSink {
	queueSize := cfg.QueueSize
	if queueSize == 0 {
		queueSize = 1024
	}
	dialFor := cfg.DialFor
	if dialFor == 0 {
		dialFor = 30 * time.Second
	}

	return &SocketSink{
		name:    cfg.Name,
		addr:    cfg.Addr,
		dialFor: dialFor,
		queue:   make(chan string, queueSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		log:     zap.S().Named(cfg.Name),
	}
}

// Start dials the endpoint and begins draining the queue. An endpoint that
// never comes up disables the sink: records keep dropping, the pipeline keeps
// running.
func (s *SocketSink) Start() {
	go s.run()
}

// Publish enqueues one framed record. Never blocks the caller.
func (s *SocketSink) Publish(text string) {
	select {
	case s.queue <- text:
	default:
		s.log.Warnw("queue full, dropping record", "addr", s.addr)
	}
}

// Close flushes whatever is queued and stops the writer.
func (s *SocketSink) Close() {
	close(s.stop)
	<-s.done
}

func (s *SocketSink) run() {
	defer close(s.done)

	conn, err := s.dial()
	if err != nil {
		if !errors.Is(err, errSinkStopped) {
			s.log.Errorw("downstream unreachable, records will drop", "addr", s.addr, "err", err)
		}
		return
	}
	defer conn.Close()

	for {
		select {
		case <-s.stop:
			for {
				select {
				case line := <-s.queue:
					s.write(conn, line)
				default:
					return
				}
			}
		case line := <-s.queue:
			s.write(conn, line)
		}
	}
}

func (s *SocketSink) write(conn net.Conn, line string) {
	if _, err := conn.Write(append([]byte(line), frameDelim)); err != nil {
		s.log.Errorw("write failed, dropping record", "addr", s.addr, "err", err)
	}
}

func (s *SocketSink) dial() (net.Conn, error) {
	var conn net.Conn
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = s.dialFor
	boff.MaxInterval = 2 * time.Second // keep Close responsive while retrying
	err := backoff.Retry(func() error {
		var err error
		conn, err = net.DialTimeout("tcp", s.addr, 2*time.Second)
		if err != nil {
			select {
			case <-s.stop:
				return backoff.Permanent(errSinkStopped)
			default:
			}
			s.log.Debugw("dial downstream", "addr", s.addr, "err", err)
		}
		return err
	}, boff)

	return conn, err
}
