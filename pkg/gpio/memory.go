package gpio

import "sync"

// Write is a recorded DigitalWrite call.
type Write struct {
	Pin   int
	Level bool
}

// Memory keeps pin levels in memory, for simulation.
type Memory struct {
	levels map[int]bool
	writes []Write
	lock   sync.Mutex
}

// NewMemory creates a Memory.
func NewMemory() *Memory {
	return &Memory{levels: make(map[int]bool)}
}

// DigitalWrite implements Writer.
func (m *Memory) DigitalWrite(pin int, level bool) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.levels[pin] = level
	m.writes = append(m.writes, Write{Pin: pin, Level: level})
	return nil
}

// Level returns the level of a pin, false if never written.
func (m *Memory) Level(pin int) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.levels[pin]
}

// Writes returns all writes in order.
func (m *Memory) Writes() []Write {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]Write(nil), m.writes...)
}
