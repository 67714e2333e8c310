package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"marble-race/server/logging"
	loggingrace "marble-race/server/logging/race"
)

// Hub owns the running simulation and the renderer subscribers watching
// it. Subscribers are strictly read-only consumers; the only inbound
// traffic is connection lifecycle.
type Hub struct {
	mu          sync.Mutex
	sim         *RaceSimulation
	subscribers map[uint64]*subscriber
	nextID      atomic.Uint64
	publisher   logging.Publisher
	started     bool
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub(sim *RaceSimulation, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Hub{
		sim:         sim,
		subscribers: make(map[uint64]*subscriber),
		publisher:   publisher,
	}
}

// Watch registers a renderer connection and sends the course snapshot
// once. Per-tick state follows from the race loop.
func (h *Hub) Watch(conn *websocket.Conn) uint64 {
	id := h.nextID.Add(1)
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[id] = sub
	course := h.sim.course
	h.mu.Unlock()

	msg := courseMessage{Ver: ProtocolVersion, Type: "course", Course: course}
	if err := sub.send(msg); err != nil {
		log.Printf("failed to send course to subscriber %d: %v", id, err)
		h.Unwatch(id)
	}
	return id
}

// Unwatch removes a subscriber and closes its connection.
func (h *Hub) Unwatch(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
	}
}

// RunRace drives the fixed-timestep loop until the stop channel closes.
// The timestep is always 1/tickRate regardless of wall-clock jitter, so
// replays with the same seed stay tick-for-tick identical.
func (h *Hub) RunRace(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	const dt = 1.0 / float64(tickRate)

	h.mu.Lock()
	if !h.started {
		h.started = true
		loggingrace.RaceStarted(
			context.Background(),
			h.publisher,
			h.sim.Tick(),
			logging.EntityRef{ID: h.sim.course.Seed, Kind: logging.EntityKindRace},
			loggingrace.RaceStartedPayload{Marbles: len(h.sim.marbles), Complexity: h.sim.course.Complexity},
			nil,
		)
	}
	h.mu.Unlock()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.mu.Lock()
			h.sim.Step(dt)
			msg := stateMessage{
				Ver:            ProtocolVersion,
				Type:           "state",
				Tick:           h.sim.Tick(),
				Clock:          h.sim.Clock(),
				Marbles:        h.sim.MarbleSnapshots(),
				EffectTriggers: h.sim.DrainEffectTriggers(),
				Rankings:       h.sim.Rankings(),
				Complete:       h.sim.Complete(),
				ServerTime:     time.Now().UnixMilli(),
			}
			h.mu.Unlock()

			h.broadcastState(msg)
		}
	}
}

// broadcastState sends the latest snapshot to every subscriber, dropping
// connections that fail to take the write.
func (h *Hub) broadcastState(msg stateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.sendRaw(data); err != nil {
			log.Printf("failed to send update to subscriber %d: %v", id, err)
			h.Unwatch(id)
		}
	}
}

func (s *subscriber) send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.sendRaw(data)
}

func (s *subscriber) sendRaw(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
