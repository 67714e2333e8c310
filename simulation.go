package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/ByteArena/box2d"

	"marble-race/server/logging"
	loggingrace "marble-race/server/logging/race"
)

// bodyTagKind discriminates what a physics body belongs to.
type bodyTagKind int

const (
	tagSection bodyTagKind = iota
	tagMarble
)

// bodyTag is the typed back-reference stored as body user data. The index
// resolves through the simulation's own slices, so contact handling never
// downcasts domain pointers.
type bodyTag struct {
	kind  bodyTagKind
	index int
}

// RankingEntry pairs a marble with its live standing.
type RankingEntry struct {
	MarbleID string  `json:"marbleId"`
	Rank     int     `json:"rank"`
	Progress float64 `json:"progress"`
}

// RaceSimulation owns the physics world and every body in it. All
// mutation happens on the stepping goroutine; the hub serializes access.
type RaceSimulation struct {
	course    *Course
	world     *box2d.B2World
	marbles   []*marbleState
	finishers []int
	frozen    []RankingEntry
	triggers  []EffectTrigger
	rng       *rand.Rand
	publisher logging.Publisher
	clock     float64
	tick      uint64
	complete  bool
}

// newRaceSimulation builds the physics world with one static body per
// section. A section the generator could not shape into valid fixtures is
// a generator defect, so setup aborts instead of limping along.
func newRaceSimulation(course *Course, publisher logging.Publisher) (*RaceSimulation, error) {
	if course == nil || len(course.Sections) == 0 {
		return nil, fmt.Errorf("race simulation needs a course with at least one section")
	}
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	world := box2d.MakeB2World(box2d.MakeB2Vec2(0, gravityY))
	sim := &RaceSimulation{
		course:    course,
		world:     &world,
		rng:       newDeterministicRNG(course.Seed, "simulation.effects"),
		publisher: publisher,
	}

	for i, section := range course.Sections {
		if err := sim.createSectionBody(i, section); err != nil {
			return nil, fmt.Errorf("section %d (%s): %w", i, section.Type, err)
		}
	}
	sim.world.SetContactListener(&contactListener{sim: sim})
	return sim, nil
}

func (s *RaceSimulation) createSectionBody(index int, section *Section) error {
	if len(section.Vertices) < 3 {
		return fmt.Errorf("outline has %d vertices, need at least 3", len(section.Vertices))
	}

	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_staticBody
	body := s.world.CreateBody(&def)
	body.SetUserData(bodyTag{kind: tagSection, index: index})

	for _, rail := range [2][4]vec2{section.leftRail, section.rightRail} {
		if quadArea(rail) < 1e-6 {
			return fmt.Errorf("degenerate rail fixture")
		}
		verts := make([]box2d.B2Vec2, 0, len(rail))
		for _, v := range rail {
			verts = append(verts, box2d.MakeB2Vec2(v.X, v.Y))
		}
		shape := box2d.MakeB2PolygonShape()
		shape.Set(verts, len(verts))

		fixture := box2d.MakeB2FixtureDef()
		fixture.Shape = &shape
		fixture.Friction = section.Friction
		fixture.Restitution = section.Restitution
		body.CreateFixtureFromDef(&fixture)
	}
	return nil
}

// AddMarble registers one dynamic circular body for the marble. Marbles
// must be added before the first step; their bodies live for the whole
// race.
func (s *RaceSimulation) AddMarble(m Marble) error {
	if m.Radius <= 0 {
		return fmt.Errorf("marble %q needs a positive radius", m.ID)
	}
	if m.Mass <= 0 {
		return fmt.Errorf("marble %q needs a positive mass", m.ID)
	}

	index := len(s.marbles)
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Position = box2d.MakeB2Vec2(m.X, m.Y)
	def.Bullet = true
	def.LinearDamping = 0.05
	def.AngularDamping = 0.05
	body := s.world.CreateBody(&def)
	body.SetUserData(bodyTag{kind: tagMarble, index: index})

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = m.Radius

	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = &shape
	fixture.Density = m.Mass / (math.Pi * m.Radius * m.Radius)
	fixture.Friction = m.Friction
	fixture.Restitution = m.Restitution
	body.CreateFixtureFromDef(&fixture)

	m.FinishTime = finishTimeUnset
	s.marbles = append(s.marbles, &marbleState{
		Marble:  m,
		body:    body,
		lastPos: vec2{X: m.X, Y: m.Y},
	})
	return nil
}

// Step advances the race by one fixed timestep: physics, accumulator
// readback, finish detection, section effects, and the race-end check, in
// that order, all before returning.
func (s *RaceSimulation) Step(dt float64) {
	if dt <= 0 {
		dt = 1.0 / float64(tickRate)
	}
	s.tick++
	s.clock += dt

	s.world.Step(dt, velocityIterations, positionIterations)

	for _, marble := range s.marbles {
		pos := marble.body.GetPosition()
		vel := marble.body.GetLinearVelocity()
		marble.X, marble.Y = pos.X, pos.Y
		marble.VX, marble.VY = vel.X, vel.Y

		speed := math.Hypot(vel.X, vel.Y)
		if speed > marble.TopSpeed {
			marble.TopSpeed = speed
		}
		here := vec2{X: pos.X, Y: pos.Y}
		marble.Distance += here.sub(marble.lastPos).length()
		marble.lastPos = here
	}

	s.detectFinishes()
	s.applySectionEffects()

	if !s.complete && len(s.marbles) > 0 && len(s.finishers) == len(s.marbles) {
		s.freezeRankings()
	}
}

func (s *RaceSimulation) detectFinishes() {
	for i, marble := range s.marbles {
		if marble.Finished() {
			continue
		}
		distance := vec2{X: marble.X, Y: marble.Y}.sub(s.course.Finish).length()
		if distance >= finishRadius {
			continue
		}
		marble.FinishTime = s.clock
		s.finishers = append(s.finishers, i)
		s.queueTrigger(EffectTrigger{Type: TriggerFinish, MarbleID: marble.ID, X: marble.X, Y: marble.Y})
		loggingrace.MarbleFinished(
			context.Background(),
			s.publisher,
			s.tick,
			logging.EntityRef{ID: marble.ID, Kind: logging.EntityKindMarble},
			loggingrace.MarbleFinishedPayload{
				FinishTime: marble.FinishTime,
				Position:   len(s.finishers),
				TopSpeed:   marble.TopSpeed,
				Collisions: marble.Collisions,
			},
			nil,
		)
	}
}

// applySectionEffects applies exactly one gameplay effect per marble: the
// first section in list order whose outline contains the marble's center.
func (s *RaceSimulation) applySectionEffects() {
	for _, marble := range s.marbles {
		section, ok := s.sectionAt(vec2{X: marble.X, Y: marble.Y})
		if !ok {
			continue
		}
		switch section.Type {
		case SectionBooster:
			// Push along the channel's local direction; a section without
			// enough vertices to define one is skipped.
			if len(section.Vertices) < 2 || section.dir == (vec2{}) {
				continue
			}
			gain := boosterVelocityGain * marble.body.GetMass()
			impulse := box2d.MakeB2Vec2(section.dir.X*gain, section.dir.Y*gain)
			marble.body.ApplyLinearImpulse(impulse, marble.body.GetWorldCenter(), true)
		case SectionSpinner:
			marble.body.ApplyTorque(spinnerTorque, true)
		case SectionSlowField:
			vel := marble.body.GetLinearVelocity()
			marble.body.SetLinearVelocity(box2d.MakeB2Vec2(vel.X*slowFieldDamping, vel.Y*slowFieldDamping))
		case SectionBumpers:
			if s.rng.Float64() < bumperChance {
				angle := s.rng.Float64() * 2 * math.Pi
				impulse := box2d.MakeB2Vec2(math.Cos(angle)*bumperImpulse, math.Sin(angle)*bumperImpulse)
				marble.body.ApplyLinearImpulse(impulse, marble.body.GetWorldCenter(), true)
			}
		}
	}
}

// sectionAt returns the first section whose outline contains the point.
// Sections are assumed non-overlapping; when they do overlap anyway,
// insertion order is the defined tie-break.
func (s *RaceSimulation) sectionAt(p vec2) (*Section, bool) {
	for _, section := range s.course.Sections {
		if pointInPolygon(p, section.Vertices) {
			return section, true
		}
	}
	return nil, false
}

// freezeRankings stamps the final standings once every marble has
// finished. Finishers sort by finish time, not arrival order, so ranks
// stay correct under any update-order ambiguity.
func (s *RaceSimulation) freezeRankings() {
	s.complete = true

	order := append([]int(nil), s.finishers...)
	sort.SliceStable(order, func(a, b int) bool {
		return s.marbles[order[a]].FinishTime < s.marbles[order[b]].FinishTime
	})

	s.frozen = make([]RankingEntry, 0, len(order))
	for pos, idx := range order {
		marble := s.marbles[idx]
		marble.Rank = pos + 1
		s.frozen = append(s.frozen, RankingEntry{MarbleID: marble.ID, Rank: pos + 1, Progress: 1.0})
	}

	loggingrace.RaceCompleted(
		context.Background(),
		s.publisher,
		s.tick,
		logging.EntityRef{ID: s.course.Seed, Kind: logging.EntityKindRace},
		loggingrace.RaceCompletedPayload{Marbles: len(s.marbles), Clock: s.clock},
		nil,
	)
}

// Rankings returns the live standings: progress-sorted while the race
// runs, frozen finish-time order once everyone is home. Ranks are written
// back onto the marbles either way.
func (s *RaceSimulation) Rankings() []RankingEntry {
	if s.complete {
		return append([]RankingEntry(nil), s.frozen...)
	}

	type scored struct {
		index    int
		progress float64
	}
	entries := make([]scored, 0, len(s.marbles))
	for i, marble := range s.marbles {
		progress := 1.0
		if !marble.Finished() {
			progress = s.course.ProgressPercentage(vec2{X: marble.X, Y: marble.Y})
		}
		entries = append(entries, scored{index: i, progress: progress})
	}
	// Stable sort: ties break by marble list order.
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].progress > entries[b].progress
	})

	out := make([]RankingEntry, 0, len(entries))
	for pos, entry := range entries {
		marble := s.marbles[entry.index]
		marble.Rank = pos + 1
		out = append(out, RankingEntry{MarbleID: marble.ID, Rank: pos + 1, Progress: entry.progress})
	}
	return out
}

// Complete reports whether every marble has finished.
func (s *RaceSimulation) Complete() bool {
	return s.complete
}

// Clock returns the race clock in seconds.
func (s *RaceSimulation) Clock() float64 {
	return s.clock
}

// Tick returns the number of completed steps.
func (s *RaceSimulation) Tick() uint64 {
	return s.tick
}

// MarbleSnapshots copies the broadcast-facing marble state.
func (s *RaceSimulation) MarbleSnapshots() []Marble {
	marbles := make([]Marble, 0, len(s.marbles))
	for _, marble := range s.marbles {
		marbles = append(marbles, marble.snapshot())
	}
	return marbles
}
