package main

import "testing"

func TestProgressPercentageEmptyLadder(t *testing.T) {
	course := &Course{}
	if got := course.ProgressPercentage(vec2{X: 100, Y: 100}); got != 0 {
		t.Fatalf("progress with no checkpoints = %v, want 0", got)
	}
}

func TestProgressPercentageSingleCheckpoint(t *testing.T) {
	course := &Course{}
	course.AddCheckpoint(50, 50)
	if got := course.ProgressPercentage(vec2{X: 0, Y: 0}); got != 1 {
		t.Fatalf("progress with one checkpoint = %v, want 1", got)
	}
}

func TestProgressPercentageAlongLadder(t *testing.T) {
	course := &Course{}
	for i := 0; i < 5; i++ {
		course.AddCheckpoint(0, float64(i)*100)
	}

	cases := []struct {
		name string
		pos  vec2
		want float64
	}{
		{"at start", vec2{X: 0, Y: 0}, 0},
		{"near second", vec2{X: 10, Y: 110}, 0.25},
		{"near middle", vec2{X: -5, Y: 190}, 0.5},
		{"at finish", vec2{X: 0, Y: 400}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := course.ProgressPercentage(tc.pos); got != tc.want {
				t.Fatalf("progress at %+v = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}
}

func TestProgressPercentageMonotoneDescent(t *testing.T) {
	course := &Course{}
	for i := 0; i < 8; i++ {
		course.AddCheckpoint(0, float64(i)*120)
	}

	prev := -1.0
	for y := 0.0; y <= 840; y += 60 {
		got := course.ProgressPercentage(vec2{X: 0, Y: y})
		if got < prev {
			t.Fatalf("progress dropped from %v to %v at y=%v", prev, got, y)
		}
		prev = got
	}
	if prev != 1 {
		t.Fatalf("final progress = %v, want 1", prev)
	}
}

func TestInsertCheckpointKeepsTraversalOrder(t *testing.T) {
	course := &Course{}
	course.AddCheckpoint(0, 0)
	course.AddCheckpoint(0, 200)
	course.AddCheckpoint(0, 400)

	course.insertCheckpoint(10, 300)

	wantYs := []float64{0, 200, 300, 400}
	if len(course.Checkpoints) != len(wantYs) {
		t.Fatalf("checkpoint count = %d, want %d", len(course.Checkpoints), len(wantYs))
	}
	for i, want := range wantYs {
		if course.Checkpoints[i].Y != want {
			t.Fatalf("checkpoint %d Y = %v, want %v", i, course.Checkpoints[i].Y, want)
		}
	}
}

func TestInsertCheckpointAtTail(t *testing.T) {
	course := &Course{}
	course.AddCheckpoint(0, 100)
	course.insertCheckpoint(5, 500)

	if len(course.Checkpoints) != 2 {
		t.Fatalf("checkpoint count = %d, want 2", len(course.Checkpoints))
	}
	if course.Checkpoints[1].Y != 500 {
		t.Fatalf("tail checkpoint Y = %v, want 500", course.Checkpoints[1].Y)
	}
}
