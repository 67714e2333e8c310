// Package race declares the event types and payloads the race loop and
// generator publish, plus helpers that build the envelopes consistently.
package race

import (
	"context"

	"marble-race/server/logging"
)

const (
	EventCourseGenerated logging.EventType = "race.courseGenerated"
	EventRaceStarted     logging.EventType = "race.started"
	EventMarbleFinished  logging.EventType = "race.marbleFinished"
	EventRaceCompleted   logging.EventType = "race.completed"
)

// CourseGeneratedPayload summarizes a freshly generated course.
type CourseGeneratedPayload struct {
	Complexity  int `json:"complexity"`
	Sections    int `json:"sections"`
	Checkpoints int `json:"checkpoints"`
}

// RaceStartedPayload is published once, on the first tick of the loop.
type RaceStartedPayload struct {
	Marbles    int `json:"marbles"`
	Complexity int `json:"complexity"`
}

// MarbleFinishedPayload captures a marble crossing the finish.
type MarbleFinishedPayload struct {
	FinishTime float64 `json:"finishTime"`
	Position   int     `json:"position"`
	TopSpeed   float64 `json:"topSpeed"`
	Collisions int     `json:"collisions"`
}

// RaceCompletedPayload is published when the last marble finishes.
type RaceCompletedPayload struct {
	Marbles int     `json:"marbles"`
	Clock   float64 `json:"clock"`
}

func CourseGenerated(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CourseGeneratedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventCourseGenerated,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGeneration,
		Payload:  payload,
		Extra:    extra,
	})
}

func RaceStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RaceStartedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventRaceStarted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryRace,
		Payload:  payload,
		Extra:    extra,
	})
}

func MarbleFinished(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MarbleFinishedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventMarbleFinished,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryRace,
		Payload:  payload,
		Extra:    extra,
	})
}

func RaceCompleted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RaceCompletedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventRaceCompleted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryRace,
		Payload:  payload,
		Extra:    extra,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
