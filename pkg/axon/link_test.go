package axon

import (
	"context"
	"sync"
)

// scriptedLink returns scripted lines in order, then blocks until the
// context is done.
type scriptedLink struct {
	lines   []string
	written []string
	onWrite func(line string)
	lock    sync.Mutex
}

func newScriptedLink(lines ...string) *scriptedLink {
	return &scriptedLink{lines: lines}
}

func (s *scriptedLink) ReadLine(ctx context.Context) (string, error) {
	s.lock.Lock()
	if len(s.lines) > 0 {
		line := s.lines[0]
		s.lines = s.lines[1:]
		s.lock.Unlock()
		return line, nil
	}
	s.lock.Unlock()
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *scriptedLink) WriteLine(line string) error {
	s.lock.Lock()
	s.written = append(s.written, line)
	fn := s.onWrite
	s.lock.Unlock()
	if fn != nil {
		fn(line)
	}
	return nil
}

func (s *scriptedLink) Written() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.written...)
}
