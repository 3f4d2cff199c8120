package consolidator

import (
	"sync"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recorder struct {
	mu    sync.Mutex
	calls []struct{ waID, text string }
}

func (r *recorder) process(waID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, struct{ waID, text string }{waID, text})
}

func (r *recorder) snapshot() []struct{ waID, text string } {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]struct{ waID, text string }(nil), r.calls...)
}

func TestFlushJoinsFragments(t *testing.T) {
	rec := &recorder{}
	c := New(time.Hour, rec.process, nopLogger{})

	c.Add("5511999", "oi")
	c.Add("5511999", "quero saber mais")
	c.Add("5511999", "sobre o produto")
	c.Flush("5511999")

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].waID != "5511999" {
		t.Errorf("waID = %q", calls[0].waID)
	}
	if calls[0].text != "oi quero saber mais sobre o produto" {
		t.Errorf("text = %q", calls[0].text)
	}
}

func TestFlushSkipsDuplicateBatch(t *testing.T) {
	rec := &recorder{}
	c := New(time.Hour, rec.process, nopLogger{})

	c.Add("5511999", "oi")
	c.Flush("5511999")

	// Webhook replay delivers the same fragment again.
	c.Add("5511999", "oi")
	c.Flush("5511999")

	if calls := rec.snapshot(); len(calls) != 1 {
		t.Errorf("calls = %d, want 1 (duplicate skipped)", len(calls))
	}

	// The suppressed fragment stays buffered and merges into the next turn.
	c.Add("5511999", "outra coisa")
	c.Flush("5511999")

	calls := rec.snapshot()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[1].text != "oi outra coisa" {
		t.Errorf("text = %q, want suppressed fragment merged in", calls[1].text)
	}
}

func TestFlushIsolatesContacts(t *testing.T) {
	rec := &recorder{}
	c := New(time.Hour, rec.process, nopLogger{})

	c.Add("111", "mensagem do primeiro")
	c.Add("222", "mensagem do segundo")
	c.Flush("111")

	calls := rec.snapshot()
	if len(calls) != 1 || calls[0].waID != "111" {
		t.Fatalf("calls = %+v", calls)
	}

	c.Flush("222")
	if calls := rec.snapshot(); len(calls) != 2 {
		t.Errorf("calls = %d, want 2", len(calls))
	}
}

func TestFlushWithNothingPendingIsNoop(t *testing.T) {
	rec := &recorder{}
	c := New(time.Hour, rec.process, nopLogger{})

	c.Flush("desconhecido")

	if calls := rec.snapshot(); len(calls) != 0 {
		t.Errorf("calls = %d, want 0", len(calls))
	}
}

func TestTimerFlushesAfterQuietPeriod(t *testing.T) {
	rec := &recorder{}
	done := make(chan struct{})
	c := New(20*time.Millisecond, func(waID, text string) {
		rec.process(waID, text)
		close(done)
	}, nopLogger{})

	c.Add("5511999", "primeira")
	time.Sleep(5 * time.Millisecond)
	c.Add("5511999", "segunda")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer flush never fired")
	}

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].text != "primeira segunda" {
		t.Errorf("text = %q", calls[0].text)
	}
}
