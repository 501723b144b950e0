package app

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"goremoteid/pkg/remoteid"
)

// AuthMessage is a reassembled authentication message
type AuthMessage struct {
	Type      remoteid.AuthenticationType
	Timestamp remoteid.SystemTimestamp
	Pages     int
	Data      []byte
}

// AuthCollector reassembles paged authentication data from one stream.
// Pages may arrive in any order; a new initial page restarts collection.
type AuthCollector struct {
	logger   *logrus.Logger
	initial  *remoteid.AuthInitial
	pages    map[uint8]remoteid.AuthSubsequent
	complete int
	mutex    sync.Mutex
}

// NewAuthCollector creates a new authentication collector
func NewAuthCollector(logger *logrus.Logger) *AuthCollector {
	return &AuthCollector{
		logger: logger,
		pages:  make(map[uint8]remoteid.AuthSubsequent),
	}
}

// Add stores one page. When every page up to the announced last page index
// is present it returns the reassembled message and true.
func (c *AuthCollector) Add(page remoteid.Authentication) (AuthMessage, bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch p := page.(type) {
	case remoteid.AuthInitial:
		if c.initial != nil {
			c.logger.WithFields(logrus.Fields{
				"auth_type": c.initial.AuthenticationType().String(),
				"pages":     len(c.pages) + 1,
			}).Debug("Discarding incomplete authentication message")
		}
		c.initial = &p
		for index, subsequent := range c.pages {
			if subsequent.AuthenticationType() != p.AuthenticationType() || index > p.LastPageIndex() {
				delete(c.pages, index)
			}
		}

	case remoteid.AuthSubsequent:
		if c.initial != nil {
			if p.AuthenticationType() != c.initial.AuthenticationType() {
				return AuthMessage{}, false, fmt.Errorf("authentication page %d has type %s, expected %s",
					p.Page(), p.AuthenticationType(), c.initial.AuthenticationType())
			}
			if p.Page() > c.initial.LastPageIndex() {
				return AuthMessage{}, false, fmt.Errorf("authentication page %d beyond last page index %d",
					p.Page(), c.initial.LastPageIndex())
			}
		}
		c.pages[p.Page()] = p

	default:
		return AuthMessage{}, false, fmt.Errorf("unsupported authentication page %T", page)
	}

	if !c.ready() {
		return AuthMessage{}, false, nil
	}

	msg := c.assemble()
	c.reset()
	c.complete++

	c.logger.WithFields(logrus.Fields{
		"auth_type": msg.Type.String(),
		"pages":     msg.Pages,
		"length":    len(msg.Data),
	}).Debug("Reassembled authentication message")

	return msg, true, nil
}

// Pending reports the number of pages held for an incomplete message
func (c *AuthCollector) Pending() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	n := len(c.pages)
	if c.initial != nil {
		n++
	}
	return n
}

// Complete returns the number of messages reassembled so far
func (c *AuthCollector) Complete() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.complete
}

// Reset drops any partially collected message
func (c *AuthCollector) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.reset()
}

func (c *AuthCollector) reset() {
	c.initial = nil
	clear(c.pages)
}

func (c *AuthCollector) ready() bool {
	if c.initial == nil {
		return false
	}
	for i := uint8(1); i <= c.initial.LastPageIndex(); i++ {
		if _, ok := c.pages[i]; !ok {
			return false
		}
	}
	return true
}

// assemble concatenates 17 initial bytes and 23 bytes per subsequent page,
// trimmed to the announced total length
func (c *AuthCollector) assemble() AuthMessage {
	last := c.initial.LastPageIndex()
	data := make([]byte, 0, remoteid.AuthInitialData+int(last)*remoteid.AuthPageData)

	initialData := c.initial.Data()
	data = append(data, initialData[:]...)
	for i := uint8(1); i <= last; i++ {
		pageData := c.pages[i].Data()
		data = append(data, pageData[:]...)
	}

	if total := int(c.initial.TotalLength()); total < len(data) {
		data = data[:total]
	}

	return AuthMessage{
		Type:      c.initial.AuthenticationType(),
		Timestamp: c.initial.Timestamp(),
		Pages:     int(last) + 1,
		Data:      data,
	}
}
