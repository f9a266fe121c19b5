package sink

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileSink appends lines to one output file. The file is truncated at open so
// every run starts a fresh record. Appends are synchronous; a write failure
// logs and drops the line.
type FileSink struct {
	path string

	mu sync.Mutex
	f  *os.File

	log *zap.SugaredLogger
}

func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	return &FileSink{
		path: path,
		f:    f,
		log:  zap.S().Named("filesink"),
	}, nil
}

func (s *FileSink) Append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return
	}
	if _, err := s.f.WriteString(line + "\n"); err != nil {
		s.log.Errorw("write failed, dropping line", "path", s.path, "err", err)
	}
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
