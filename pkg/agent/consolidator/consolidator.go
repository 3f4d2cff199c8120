package consolidator

import (
	"strings"
	"sync"
	"time"

	"agentic-sales-be/internal/pkg/logger"
)

// Processor receives the consolidated text once a contact's debounce window
// closes. It runs on the timer goroutine.
type Processor func(waID, text string)

type pending struct {
	texts    []string
	lastSent string
	timer    *time.Timer
}

// Consolidator buffers rapid-fire WhatsApp messages per contact and emits a
// single joined text after a quiet period. Every new fragment re-arms the
// timer, so the window slides until the contact stops typing.
type Consolidator struct {
	mu      sync.Mutex
	pending map[string]*pending
	timeout time.Duration
	process Processor
	logger  logger.ILogger
}

func New(timeout time.Duration, process Processor, log logger.ILogger) *Consolidator {
	return &Consolidator{
		pending: make(map[string]*pending),
		timeout: timeout,
		process: process,
		logger:  log,
	}
}

// Add buffers a message fragment and re-arms the contact's timer.
func (c *Consolidator) Add(waID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[waID]
	if !ok {
		p = &pending{}
		c.pending[waID] = p
	}

	p.texts = append(p.texts, text)
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(c.timeout, func() {
		c.flush(waID)
	})
}

// Flush forces immediate consolidation, bypassing the timer. Used by tests
// and by shutdown paths.
func (c *Consolidator) Flush(waID string) {
	c.mu.Lock()
	if p, ok := c.pending[waID]; ok && p.timer != nil {
		p.timer.Stop()
	}
	c.mu.Unlock()
	c.flush(waID)
}

func (c *Consolidator) flush(waID string) {
	c.mu.Lock()
	p, ok := c.pending[waID]
	if !ok || len(p.texts) == 0 {
		c.mu.Unlock()
		return
	}

	joined := strings.Join(p.texts, " ")

	// Duplicate webhook deliveries can replay the exact same batch. Skip
	// when it matches what we just answered; the fragments stay buffered so
	// they merge into the next turn.
	if strings.TrimSpace(joined) == strings.TrimSpace(p.lastSent) && p.lastSent != "" {
		c.mu.Unlock()
		c.logger.Debug("Consolidator", "Skipping duplicate consolidated message", map[string]interface{}{
			"wa_id": waID,
		})
		return
	}
	p.texts = nil
	p.lastSent = joined
	c.mu.Unlock()

	c.process(waID, joined)
}
