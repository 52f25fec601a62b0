package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Sink appends a record to some destination.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// HTTPSink posts records to the spreadsheet-style endpoint. The body wraps
// the record in a single-element list under "data"; only the status code of
// the response is consumed.
type HTTPSink struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSink constructs a sink for the given endpoint. client may be nil,
// defaulting to a client with a short timeout so a slow endpoint cannot pin
// the dispatcher.
func NewHTTPSink(endpoint string, client *http.Client) *HTTPSink {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSink{endpoint: endpoint, client: client}
}

// Append delivers one record. At most one attempt; the caller owns failures.
func (s *HTTPSink) Append(ctx context.Context, rec Record) error {
	body, err := json.Marshal(map[string]any{"data": []Record{rec}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ledger endpoint returned %s", resp.Status)
	}
	return nil
}

// MultiSink appends to every sink in order, collecting errors so each sink
// gets a chance to write.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink constructs a Sink fanning out to each given sink.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Append(ctx context.Context, rec Record) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Append(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Broadcaster pushes raw messages to connected clients.
type Broadcaster interface {
	Broadcast(msg []byte)
}

// BroadcastSink mirrors records to a broadcaster (the back-office dashboard
// feed). Marshal failures are the only possible error.
type BroadcastSink struct {
	b Broadcaster
}

// NewBroadcastSink constructs a sink targeting the given broadcaster.
func NewBroadcastSink(b Broadcaster) *BroadcastSink {
	return &BroadcastSink{b: b}
}

func (s *BroadcastSink) Append(_ context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.b.Broadcast(data)
	return nil
}

// Counters receives delivery outcomes for diagnostics.
type Counters interface {
	LedgerDelivered()
	LedgerFailed()
	LedgerDropped()
}

// Forwarder dispatches records to a sink without ever blocking or failing the
// caller. Emit enqueues; a dispatcher goroutine delivers. A full queue drops
// the record: the ledger sits outside the consistency boundary, so a lost
// record only dims the mirror, never the order state.
type Forwarder struct {
	sink     Sink
	breaker  *Breaker
	queue    chan Record
	counters Counters
	logf     func(format string, args ...any)

	once sync.Once
	done chan struct{}
	wg   sync.WaitGroup
}

// ForwarderConfig configures a Forwarder. Zero values get defaults.
type ForwarderConfig struct {
	Sink      Sink
	Breaker   *Breaker
	QueueSize int
	Counters  Counters
	Logf      func(format string, args ...any)
}

// NewForwarder constructs a Forwarder and starts its dispatcher.
func NewForwarder(cfg ForwarderConfig) *Forwarder {
	size := cfg.QueueSize
	if size <= 0 {
		size = 64
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	f := &Forwarder{
		sink:     cfg.Sink,
		breaker:  cfg.Breaker,
		queue:    make(chan Record, size),
		counters: cfg.Counters,
		logf:     logf,
		done:     make(chan struct{}),
	}
	f.wg.Add(1)
	go f.dispatch()
	return f
}

// Emit enqueues a record for delivery. It never blocks: if the queue is full
// the record is dropped and counted.
func (f *Forwarder) Emit(rec Record) {
	select {
	case f.queue <- rec:
	default:
		if f.counters != nil {
			f.counters.LedgerDropped()
		}
		f.logf("ledger: queue full, dropped %s record", rec.EventType())
	}
}

// Close stops the dispatcher after draining records already enqueued.
func (f *Forwarder) Close() {
	f.once.Do(func() {
		close(f.done)
	})
	f.wg.Wait()
}

func (f *Forwarder) dispatch() {
	defer f.wg.Done()
	for {
		select {
		case rec := <-f.queue:
			f.deliver(rec)
		case <-f.done:
			for {
				select {
				case rec := <-f.queue:
					f.deliver(rec)
				default:
					return
				}
			}
		}
	}
}

func (f *Forwarder) deliver(rec Record) {
	err := f.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return f.sink.Append(ctx, rec)
	})
	if err != nil {
		if f.counters != nil {
			f.counters.LedgerFailed()
		}
		f.logf("ledger: append %s record failed: %v", rec.EventType(), err)
		return
	}
	if f.counters != nil {
		f.counters.LedgerDelivered()
	}
}
