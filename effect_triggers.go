package main

// TriggerType enumerates the render-facing effect triggers. The simulation
// holds no particle state; it only reports that something worth drawing
// happened.
type TriggerType string

const (
	TriggerHardCollisionStrong TriggerType = "hard-collision-strong"
	TriggerHardCollisionMedium TriggerType = "hard-collision-medium"
	TriggerBoosterTrail        TriggerType = "booster-trail"
	TriggerBumperSpark         TriggerType = "bumper-spark"
	TriggerFinish              TriggerType = "finish"
)

// EffectTrigger is a fire-and-forget event for the external visual system.
type EffectTrigger struct {
	Type     TriggerType `json:"type"`
	MarbleID string      `json:"marbleId,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Tick     uint64      `json:"tick"`
}

func (s *RaceSimulation) queueTrigger(trigger EffectTrigger) {
	trigger.Tick = s.tick
	s.triggers = append(s.triggers, trigger)
}

func (s *RaceSimulation) queueHardCollision(marble *marbleState, speed float64) {
	switch {
	case speed > hardCollisionStrong:
		s.queueTrigger(EffectTrigger{Type: TriggerHardCollisionStrong, MarbleID: marble.ID, X: marble.X, Y: marble.Y})
	case speed > hardCollisionMedium:
		s.queueTrigger(EffectTrigger{Type: TriggerHardCollisionMedium, MarbleID: marble.ID, X: marble.X, Y: marble.Y})
	}
}

// DrainEffectTriggers hands the queued triggers to the caller and clears
// the queue. The hub drains once per tick after stepping.
func (s *RaceSimulation) DrainEffectTriggers() []EffectTrigger {
	if len(s.triggers) == 0 {
		return nil
	}
	drained := make([]EffectTrigger, len(s.triggers))
	copy(drained, s.triggers)
	s.triggers = s.triggers[:0]
	return drained
}
