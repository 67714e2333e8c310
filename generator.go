package main

import "math/rand"

// segmentContext describes one path segment while sections are being
// synthesized. It is discarded once the section exists.
type segmentContext struct {
	start     vec2
	end       vec2
	dir       vec2
	normal    vec2
	length    float64
	turnAngle float64
	drop      float64
}

// generateCourse builds a complete course from the seeded stream and the
// normalized config. The stream's draw sequence fully determines the
// result, so two calls with equal seeds yield identical courses.
func generateCourse(rng *rand.Rand, cfg courseConfig) *Course {
	cfg = cfg.normalized()
	course := &Course{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Complexity: cfg.Complexity,
		Seed:       cfg.Seed,
		Start:      vec2{X: cfg.Width * 0.5, Y: cfg.Height * 0.1},
		Finish:     vec2{X: cfg.Width * 0.5, Y: cfg.Height * 0.9},
	}

	points := synthesizePath(rng, course)
	synthesizeSections(rng, course, points)
	placeFeatures(rng, course)
	applyTheme(rng, course)
	optimizePhysics(course)
	return course
}
