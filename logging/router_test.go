package logging

import (
	"context"
	"sync"
	"testing"
	"time"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (s *captureSink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *captureSink) closedNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *captureSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func closeRouter(t *testing.T, router *Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRouterDeliversAndStamps(t *testing.T) {
	sink := &captureSink{}
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	router, err := NewRouter(func() time.Time { return fixed }, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), Event{
		Type:     "race.started",
		Category: CategoryRace,
		Actor:    EntityRef{ID: "seed", Kind: EntityKindRace},
	})
	closeRouter(t, router)

	events := sink.snapshot()
	if len(events) != 1 {
		t.Fatalf("delivered %d events, want 1", len(events))
	}
	if !events[0].Time.Equal(fixed) {
		t.Fatalf("event time = %v, want clock time %v", events[0].Time, fixed)
	}
	if !sink.closed {
		t.Fatal("sink not closed on router shutdown")
	}
}

func TestRouterFiltersCategories(t *testing.T) {
	sink := &captureSink{}
	cfg := DefaultConfig()
	cfg.Categories = []string{CategoryRace}
	router, err := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), Event{Type: "race.started", Category: CategoryRace})
	router.Publish(context.Background(), Event{Type: "race.courseGenerated", Category: CategoryGeneration})
	closeRouter(t, router)

	events := sink.snapshot()
	if len(events) != 1 {
		t.Fatalf("delivered %d events, want 1 after filtering", len(events))
	}
	if events[0].Category != CategoryRace {
		t.Fatalf("wrong event passed the filter: %+v", events[0])
	}
}

func TestRouterAttachesStaticFields(t *testing.T) {
	sink := &captureSink{}
	cfg := DefaultConfig()
	cfg.Fields = map[string]any{"instance": "test-1"}
	router, err := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), Event{Type: "race.started", Category: CategoryRace})
	closeRouter(t, router)

	events := sink.snapshot()
	if len(events) != 1 {
		t.Fatalf("delivered %d events, want 1", len(events))
	}
	if events[0].Extra["instance"] != "test-1" {
		t.Fatalf("static field missing: %+v", events[0].Extra)
	}
}

func TestRouterIgnoresPublishAfterClose(t *testing.T) {
	sink := &captureSink{}
	router, err := NewRouter(nil, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	closeRouter(t, router)

	router.Publish(context.Background(), Event{Type: "race.started", Category: CategoryRace})
	if got := len(sink.snapshot()); got != 0 {
		t.Fatalf("delivered %d events after close, want 0", got)
	}
}

// Publishers keep running while the process shuts the router down; a
// publish racing Close must be dropped at worst, never panic.
func TestRouterPublishRacingCloseIsSafe(t *testing.T) {
	for iter := 0; iter < 50; iter++ {
		sink := &captureSink{}
		router, err := NewRouter(nil, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})
		if err != nil {
			t.Fatalf("NewRouter: %v", err)
		}

		var wg sync.WaitGroup
		start := make(chan struct{})
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for i := 0; i < 100; i++ {
					router.Publish(context.Background(), Event{Type: "race.started", Category: CategoryRace})
				}
			}()
		}
		close(start)
		closeRouter(t, router)
		wg.Wait()

		if !sink.closedNow() {
			t.Fatalf("iteration %d: sink not closed after router shutdown", iter)
		}
	}
}

func TestWithFieldsDoesNotOverrideEventFields(t *testing.T) {
	var got Event
	pub := WithFields(PublisherFunc(func(_ context.Context, event Event) {
		got = event
	}), map[string]any{"shared": "wrapper", "extra": "wrapper"})

	pub.Publish(context.Background(), Event{
		Type:  "race.started",
		Extra: map[string]any{"shared": "event"},
	})

	if got.Extra["shared"] != "event" {
		t.Fatalf("wrapper overwrote event field: %+v", got.Extra)
	}
	if got.Extra["extra"] != "wrapper" {
		t.Fatalf("wrapper field missing: %+v", got.Extra)
	}
}

func TestNopPublisherDoesNothing(t *testing.T) {
	NopPublisher().Publish(context.Background(), Event{Type: "race.started"})
}
