package main

import (
	"math"

	"github.com/ByteArena/box2d"
)

// contactListener translates physics contacts into domain bookkeeping and
// render-facing triggers. It mutates nothing but counters and the trigger
// queue; the queue is drained once per tick by the hub.
type contactListener struct {
	sim *RaceSimulation
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	tagA, okA := bodyTagOf(contact.GetFixtureA().GetBody())
	tagB, okB := bodyTagOf(contact.GetFixtureB().GetBody())
	if !okA || !okB {
		return
	}

	switch {
	case tagA.kind == tagMarble && tagB.kind == tagMarble:
		l.sim.onMarbleMarbleContact(tagA.index, tagB.index)
	case tagA.kind == tagMarble && tagB.kind == tagSection:
		l.sim.onMarbleSectionContact(tagA.index, tagB.index)
	case tagA.kind == tagSection && tagB.kind == tagMarble:
		l.sim.onMarbleSectionContact(tagB.index, tagA.index)
	}
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

func bodyTagOf(body *box2d.B2Body) (bodyTag, bool) {
	tag, ok := body.GetUserData().(bodyTag)
	return tag, ok
}

func (s *RaceSimulation) onMarbleSectionContact(marbleIndex, sectionIndex int) {
	if marbleIndex < 0 || marbleIndex >= len(s.marbles) {
		return
	}
	if sectionIndex < 0 || sectionIndex >= len(s.course.Sections) {
		return
	}
	marble := s.marbles[marbleIndex]
	section := s.course.Sections[sectionIndex]
	marble.Collisions++

	vel := marble.body.GetLinearVelocity()
	pos := marble.body.GetPosition()
	marble.X, marble.Y = pos.X, pos.Y
	s.queueHardCollision(marble, math.Hypot(vel.X, vel.Y))

	switch section.Type {
	case SectionBooster:
		s.queueTrigger(EffectTrigger{Type: TriggerBoosterTrail, MarbleID: marble.ID, X: pos.X, Y: pos.Y})
	case SectionBumpers:
		s.queueTrigger(EffectTrigger{Type: TriggerBumperSpark, MarbleID: marble.ID, X: pos.X, Y: pos.Y})
	}
}

func (s *RaceSimulation) onMarbleMarbleContact(a, b int) {
	if a < 0 || a >= len(s.marbles) || b < 0 || b >= len(s.marbles) {
		return
	}
	first := s.marbles[a]
	second := s.marbles[b]
	first.Collisions++
	second.Collisions++

	velA := first.body.GetLinearVelocity()
	velB := second.body.GetLinearVelocity()
	relative := math.Hypot(velA.X-velB.X, velA.Y-velB.Y)
	s.queueHardCollision(first, relative)
}
