// Package queue runs work produced by the fan-out engine off the request path,
// either on an in-process worker pool or through kafka.
package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/anonto42/hooly/backend/internal/fanout"
)

var (
	// ErrQueueFull is returned when the buffer is full.
	ErrQueueFull = errors.New("queue full")
	// ErrQueueClosed is returned after Close.
	ErrQueueClosed = errors.New("queue closed")
)

// Deliverer pushes one delivery to its live session.
type Deliverer interface {
	Deliver(ctx context.Context, d fanout.Delivery) error
}

// pool is a bounded channel drained by a fixed set of workers.
type pool[T any] struct {
	jobs   chan T
	handle func(id int, job T)
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func newPool[T any](workers, buffer int, handle func(id int, job T)) *pool[T] {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	p := &pool[T]{jobs: make(chan T, buffer), handle: handle}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer p.wg.Done()
			for job := range p.jobs {
				p.handle(id, job)
			}
		}(i)
	}
	return p
}

func (p *pool[T]) submit(ctx context.Context, job T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrQueueClosed
	}
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (p *pool[T]) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// ChannelSink is a bounded in-process delivery queue drained by a worker pool.
type ChannelSink struct {
	pool      *pool[fanout.Delivery]
	deliverer Deliverer
	logger    *slog.Logger
}

// NewChannelSink starts workers draining a queue of size buffer.
func NewChannelSink(deliverer Deliverer, workers, buffer int, logger *slog.Logger) *ChannelSink {
	s := &ChannelSink{deliverer: deliverer, logger: logger.With("component", "queue")}
	s.pool = newPool(workers, buffer, s.work)
	return s
}

// Enqueue hands d to the pool without blocking.
func (s *ChannelSink) Enqueue(ctx context.Context, d fanout.Delivery) error {
	return s.pool.submit(ctx, d)
}

func (s *ChannelSink) work(id int, d fanout.Delivery) {
	if err := s.deliverer.Deliver(context.Background(), d); err != nil {
		s.logger.Warn("delivery failed",
			"worker", id,
			"recipient_id", d.RecipientID,
			"session_id", d.SessionID,
			"error", err,
		)
	}
}

// Close stops accepting deliveries and waits until the queue is drained.
func (s *ChannelSink) Close() {
	s.pool.close()
}
