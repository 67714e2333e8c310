package logging

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Sink consumes events off a router worker. Write runs on the worker
// goroutine, never the publishing one, so slow sinks only stall their
// own queue.
type Sink interface {
	Write(event Event) error
	Close() error
}

// NamedSink pairs a sink with the name the config refers to it by.
type NamedSink struct {
	Name string
	Sink Sink
}

type sinkWorker struct {
	name  string
	sink  Sink
	queue chan Event
	done  chan struct{}
}

// Router fans events out to sink workers through a dispatch goroutine.
// Publishing never blocks: when the intake or a worker queue is full the
// event is dropped and counted. The intake channel is never closed, so a
// publish racing Close can at worst be dropped, never panic; only the
// dispatcher closes worker queues, after it has stopped sending.
type Router struct {
	clock   func() time.Time
	cfg     Config
	fields  map[string]any
	workers []*sinkWorker

	intake chan Event
	quit   chan struct{}
	done   chan struct{}
	closer sync.Once

	mu      sync.Mutex
	dropped uint64
}

// NewRouter wires one worker per configured sink. A nil clock falls back
// to time.Now.
func NewRouter(clock func() time.Time, cfg Config, sinks []NamedSink) (*Router, error) {
	if clock == nil {
		clock = time.Now
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = defaultBufferSize
	}

	router := &Router{
		clock:  clock,
		cfg:    cfg,
		fields: cfg.CloneFields(),
		intake: make(chan Event, buffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, named := range sinks {
		if named.Sink == nil {
			return nil, fmt.Errorf("sink %q is nil", named.Name)
		}
		if !cfg.HasSink(named.Name) {
			continue
		}
		worker := &sinkWorker{
			name:  named.Name,
			sink:  named.Sink,
			queue: make(chan Event, buffer),
			done:  make(chan struct{}),
		}
		go worker.run()
		router.workers = append(router.workers, worker)
	}
	go router.dispatch()
	return router, nil
}

func (w *sinkWorker) run() {
	defer close(w.done)
	for event := range w.queue {
		// Sink errors are swallowed; logging must not take the race down.
		_ = w.sink.Write(event)
	}
	_ = w.sink.Close()
}

// dispatch moves events from the intake to the workers until Close fires,
// then drains what is already queued and shuts the workers down. Worker
// queues are closed here and only here.
func (r *Router) dispatch() {
	defer close(r.done)
	for {
		select {
		case event := <-r.intake:
			r.fanOut(event)
		case <-r.quit:
			for {
				select {
				case event := <-r.intake:
					r.fanOut(event)
				default:
					for _, worker := range r.workers {
						close(worker.queue)
					}
					return
				}
			}
		}
	}
}

func (r *Router) fanOut(event Event) {
	for _, worker := range r.workers {
		select {
		case worker.queue <- event:
		default:
			r.recordDrop()
		}
	}
}

func (r *Router) recordDrop() {
	r.mu.Lock()
	r.dropped++
	r.mu.Unlock()
}

// Publish stamps the event and hands it to the dispatcher. Events
// published while the router is closing or after it closed are dropped.
func (r *Router) Publish(_ context.Context, event Event) {
	select {
	case <-r.quit:
		return
	default:
	}

	if !r.cfg.allowsCategory(event.Category) {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock()
	}
	if len(r.fields) > 0 {
		event = cloneForFields(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}

	select {
	case r.intake <- event:
	default:
		r.recordDrop()
	}
}

// Dropped reports how many events were discarded on full queues.
func (r *Router) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close stops accepting events and waits for the dispatcher and workers
// to drain, up to the context deadline.
func (r *Router) Close(ctx context.Context) error {
	r.closer.Do(func() { close(r.quit) })

	select {
	case <-r.done:
	case <-ctx.Done():
		return fmt.Errorf("dispatcher did not drain: %w", ctx.Err())
	}
	for _, worker := range r.workers {
		select {
		case <-worker.done:
		case <-ctx.Done():
			return fmt.Errorf("sink %q did not drain: %w", worker.name, ctx.Err())
		}
	}
	return nil
}
