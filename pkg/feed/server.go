// Package feed accepts inbound market data over TCP line sockets or from
// replay files and hands each line to the owning service.
package feed

import (
	"bufio"
	"net"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Scanner buffer bounds. Market data snapshot lines run long (five levels
// per side) but never anywhere near the cap.
const (
	scanBufSize = 64 * 1024
	scanBufMax  = 1024 * 1024
)

// Handler consumes one raw feed line. Parse failures are the handler's
// problem; the server keeps reading.
type Handler func(line string)

// ServerConfig configures one feed intake.
type ServerConfig struct {
	Name       string // feed name, used for logging
	ListenAddr string // TCP address to accept publishers on
	ReplayFile string // when set, read this file instead of listening
}

// Server reads newline-delimited feed records, either from TCP publishers or
// from a replay file, and delivers them to a Handler in arrival order.
type Server struct {
	name    string
	addr    string
	replay  string
	handler Handler
	log     *zap.SugaredLogger

	ln   net.Listener
	stop chan struct{}
	wg   sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func NewServer(cfg *ServerConfig, h Handler) *Server {
	return &Server{
		name:    cfg.Name,
		addr:    cfg.ListenAddr,
		replay:  cfg.ReplayFile,
		handler: h,
		log:     zap.S().Named("feed." + cfg.Name),
		stop:    make(chan struct{}),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Start begins accepting publishers, or kicks off the file replay when a
// replay file is configured. It returns an error only when the listener or
// the replay file cannot be opened.
func (s *Server) Start() error {
	if s.replay != "" {
		f, err := os.Open(s.replay)
		if err != nil {
			return err
		}
		s.wg.Add(1)
		go s.replayLoop(f)
		s.log.Infow("replaying feed from file", "path", s.replay)
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.wg.Add(1)
	go s.acceptLoop()
	s.log.Infow("feed listening", "addr", s.addr)
	return nil
}

// Addr returns the bound listen address, useful when the configured address
// carries port 0.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Close stops accepting, drops live publisher connections and waits for all
// reader goroutines to drain.
func (s *Server) Close() error {
	close(s.stop)
	if s.ln != nil {
		s.ln.Close()
	}
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.stop:
			default:
				s.log.Errorw("accept failed", "err", err)
			}
			return
		}
		s.track(conn)
		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer s.untrack(conn)
	defer conn.Close()

	s.log.Infow("publisher connected", "remote", conn.RemoteAddr().String())
	n := s.scan(bufio.NewScanner(conn))
	s.log.Infow("publisher disconnected", "remote", conn.RemoteAddr().String(), "lines", n)
}

func (s *Server) replayLoop(f *os.File) {
	defer s.wg.Done()
	defer f.Close()

	n := s.scan(bufio.NewScanner(f))
	s.log.Infow("replay finished", "path", s.replay, "lines", n)
}

// scan drives the handler over every non-empty line until EOF, read error or
// shutdown. Returns the number of lines delivered.
func (s *Server) scan(sc *bufio.Scanner) int {
	sc.Buffer(make([]byte, 0, scanBufSize), scanBufMax)
	n := 0
	for sc.Scan() {
		select {
		case <-s.stop:
			return n
		default:
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s.handler(line)
		n++
	}
	if err := sc.Err(); err != nil {
		select {
		case <-s.stop:
		default:
			s.log.Errorw("feed read failed", "err", err)
		}
	}
	return n
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
