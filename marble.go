package main

import "github.com/ByteArena/box2d"

// Marble is the broadcast-facing state of one race participant.
type Marble struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Radius      float64 `json:"radius"`
	Mass        float64 `json:"mass"`
	Friction    float64 `json:"friction"`
	Restitution float64 `json:"restitution"`
	Color       string  `json:"color"`
	Collisions  int     `json:"collisions"`
	Distance    float64 `json:"distance"`
	TopSpeed    float64 `json:"topSpeed"`
	FinishTime  float64 `json:"finishTime"`
	Rank        int     `json:"rank"`
}

// Finished reports whether a finish time has been stamped.
func (m Marble) Finished() bool {
	return m.FinishTime >= 0
}

// marbleState wraps the wire struct with the physics body and per-tick
// bookkeeping. The body is created once and never destroyed mid-race.
type marbleState struct {
	Marble
	body    *box2d.B2Body
	lastPos vec2
}

func (m *marbleState) snapshot() Marble {
	return m.Marble
}
