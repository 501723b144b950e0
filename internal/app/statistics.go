package app

import (
	"sync"

	"goremoteid/internal/frame"
	"goremoteid/pkg/remoteid"
)

// Statistics counts what the monitor has processed
type Statistics struct {
	Frames       int
	Packs        int
	Messages     int
	Errors       int
	Dropped      int // Unterminated lines dropped by the decoder
	AuthComplete int
	ByKind       map[remoteid.MessageKind]int
}

type statsCounter struct {
	mutex sync.Mutex
	stats Statistics
}

func newStatsCounter() *statsCounter {
	return &statsCounter{stats: Statistics{ByKind: make(map[remoteid.MessageKind]int)}}
}

// record counts f and each message it carries
func (c *statsCounter) record(f *frame.Frame) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.stats.Frames++
	for _, element := range f.Expand() {
		if !element.IsValid() {
			c.stats.Errors++
			continue
		}
		if element.Message.IsPack() {
			continue
		}
		c.stats.Messages++
		c.stats.ByKind[element.Message.Kind()]++
	}
	if f.IsValid() && f.Message.IsPack() {
		c.stats.Packs++
	}
}

func (c *statsCounter) overflow() {
	c.mutex.Lock()
	c.stats.Dropped++
	c.mutex.Unlock()
}

func (c *statsCounter) authComplete() {
	c.mutex.Lock()
	c.stats.AuthComplete++
	c.mutex.Unlock()
}

// snapshot returns a copy safe to read without the lock
func (c *statsCounter) snapshot() Statistics {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s := c.stats
	s.ByKind = make(map[remoteid.MessageKind]int, len(c.stats.ByKind))
	for k, v := range c.stats.ByKind {
		s.ByKind[k] = v
	}
	return s
}
