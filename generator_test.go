package main

import (
	"math"
	"testing"
)

func generateTestCourse(t *testing.T, seed string, complexity int) *Course {
	t.Helper()
	cfg := courseConfig{Seed: seed, Complexity: complexity, Width: 1080, Height: 1920}
	rng := newDeterministicRNG(seed, "generator")
	return generateCourse(rng, cfg)
}

func TestGenerateCourseDeterministic(t *testing.T) {
	first := generateTestCourse(t, "determinism-check", 6)
	second := generateTestCourse(t, "determinism-check", 6)

	if len(first.Sections) != len(second.Sections) {
		t.Fatalf("section counts differ: %d vs %d", len(first.Sections), len(second.Sections))
	}
	for i := range first.Sections {
		a, b := first.Sections[i], second.Sections[i]
		if a.Type != b.Type {
			t.Fatalf("section %d type differs: %s vs %s", i, a.Type, b.Type)
		}
		if a.Color != b.Color {
			t.Fatalf("section %d color differs: %s vs %s", i, a.Color, b.Color)
		}
		if a.Friction != b.Friction || a.Restitution != b.Restitution {
			t.Fatalf("section %d surface differs", i)
		}
		if len(a.Vertices) != len(b.Vertices) {
			t.Fatalf("section %d vertex counts differ", i)
		}
		for j := range a.Vertices {
			if a.Vertices[j] != b.Vertices[j] {
				t.Fatalf("section %d vertex %d differs: %+v vs %+v", i, j, a.Vertices[j], b.Vertices[j])
			}
		}
	}
	if len(first.Checkpoints) != len(second.Checkpoints) {
		t.Fatalf("checkpoint counts differ: %d vs %d", len(first.Checkpoints), len(second.Checkpoints))
	}
	if first.Theme != second.Theme {
		t.Fatalf("themes differ: %+v vs %+v", first.Theme, second.Theme)
	}
}

func TestGenerateCoursePrototypeScenario(t *testing.T) {
	course := generateTestCourse(t, "12345", 5)

	// 10 + 3*5 control points yield one section per consecutive pair.
	if want := 24; len(course.Sections) != want {
		t.Fatalf("section count = %d, want %d", len(course.Sections), want)
	}
	if course.Start.X != 540 || math.Abs(course.Start.Y-192) > 1e-9 {
		t.Fatalf("start = %+v, want (540, 192)", course.Start)
	}
	if course.Finish.X != 540 || math.Abs(course.Finish.Y-1728) > 1e-9 {
		t.Fatalf("finish = %+v, want (540, 1728)", course.Finish)
	}
	if got := checkpointStride(5); got != 3 {
		t.Fatalf("stride = %d, want 3", got)
	}
	// The ladder gets a checkpoint every third control point plus the
	// endpoint; feature placement may splice in a few more.
	if len(course.Checkpoints) < 9 {
		t.Fatalf("checkpoint count = %d, want at least 9", len(course.Checkpoints))
	}

	specials := 0
	for _, section := range course.Sections {
		if section.Type != SectionNormal {
			specials++
		}
	}
	if specials == 0 {
		t.Fatal("expected at least one special section at complexity 5")
	}
}

func TestGenerateCourseSpecialSectionRules(t *testing.T) {
	seeds := []string{"rules-a", "rules-b", "rules-c", "rules-d"}
	for _, seed := range seeds {
		for complexity := 1; complexity <= 10; complexity += 3 {
			course := generateTestCourse(t, seed, complexity)
			total := len(course.Sections)

			if course.Sections[0].Type != SectionNormal {
				t.Fatalf("seed %s c%d: first section is %s", seed, complexity, course.Sections[0].Type)
			}
			for i := total - 2; i < total; i++ {
				if course.Sections[i].Type != SectionNormal {
					t.Fatalf("seed %s c%d: section %d/%d is %s", seed, complexity, i, total, course.Sections[i].Type)
				}
			}

			run := 0
			for i, section := range course.Sections {
				if section.Type == SectionNormal {
					run = 0
					continue
				}
				run++
				if run > 2 {
					t.Fatalf("seed %s c%d: special run of %d ending at section %d", seed, complexity, run, i)
				}
			}
		}
	}
}

func TestGenerateCourseCheckpointLadderDescends(t *testing.T) {
	course := generateTestCourse(t, "ladder-order", 7)
	if len(course.Checkpoints) < 2 {
		t.Fatalf("checkpoint count = %d, want at least 2", len(course.Checkpoints))
	}
	for i := 1; i < len(course.Checkpoints); i++ {
		if course.Checkpoints[i].Y < course.Checkpoints[i-1].Y {
			t.Fatalf("checkpoint %d (y=%v) above checkpoint %d (y=%v)",
				i, course.Checkpoints[i].Y, i-1, course.Checkpoints[i-1].Y)
		}
	}
	first := course.Checkpoints[0]
	if first.X != course.Start.X || first.Y != course.Start.Y {
		t.Fatalf("ladder starts at (%v,%v), want start %+v", first.X, first.Y, course.Start)
	}
	last := course.Checkpoints[len(course.Checkpoints)-1]
	if last.X != course.Finish.X || last.Y != course.Finish.Y {
		t.Fatalf("ladder ends at (%v,%v), want finish %+v", last.X, last.Y, course.Finish)
	}
}

func TestGenerateCourseOutlinesAndRails(t *testing.T) {
	course := generateTestCourse(t, "geometry-check", 8)
	for i, section := range course.Sections {
		if n := len(section.Vertices); n != 6 && n != 8 {
			t.Fatalf("section %d outline has %d vertices", i, n)
		}
		if section.Type == SectionRamp && len(section.Vertices) != 8 {
			t.Fatalf("ramp section %d outline has %d vertices, want 8", i, len(section.Vertices))
		}
		if quadArea(section.leftRail) < 1e-6 || quadArea(section.rightRail) < 1e-6 {
			t.Fatalf("section %d has a degenerate rail", i)
		}
		if !pointInPolygon(section.midpoint, section.Vertices) {
			t.Fatalf("section %d midpoint %+v outside its outline", i, section.midpoint)
		}
		for _, v := range section.Vertices {
			if v.Y < -1 || v.Y > course.Height*1.1 {
				t.Fatalf("section %d vertex %+v escapes the course vertically", i, v)
			}
		}
	}
}

func TestGenerateCoursePhysicsRanges(t *testing.T) {
	course := generateTestCourse(t, "physics-ranges", 9)
	for i, section := range course.Sections {
		if section.Friction < 0.04 || section.Friction > 0.42 {
			t.Fatalf("section %d friction %v outside [0.04, 0.42]", i, section.Friction)
		}
		if section.Restitution < 0 || section.Restitution > 1 {
			t.Fatalf("section %d restitution %v outside [0,1]", i, section.Restitution)
		}
		if section.Type == SectionFunnel && section.Restitution > 0.2 {
			t.Fatalf("funnel section %d restitution %v above ceiling 0.2", i, section.Restitution)
		}
		if section.Type == SectionRamp && section.Restitution < 0.3 {
			t.Fatalf("ramp section %d restitution %v below floor 0.3", i, section.Restitution)
		}
	}
}

func TestGenerateCourseTheme(t *testing.T) {
	course := generateTestCourse(t, "theme-check", 4)
	for _, hex := range []string{course.Theme.Primary, course.Theme.Secondary, course.Theme.Accent} {
		if len(hex) != 7 || hex[0] != '#' {
			t.Fatalf("theme color %q is not #rrggbb", hex)
		}
	}
	for i, section := range course.Sections {
		if section.Color == "" {
			t.Fatalf("section %d has no color", i)
		}
		if section.Glow < 0 || section.Glow > 1 {
			t.Fatalf("section %d glow %v outside [0,1]", i, section.Glow)
		}
	}
}

func TestCourseConfigNormalized(t *testing.T) {
	cases := []struct {
		name string
		in   courseConfig
		want int
	}{
		{"below minimum", courseConfig{Seed: "s", Complexity: -2, Width: 100, Height: 100}, minComplexity},
		{"above maximum", courseConfig{Seed: "s", Complexity: 40, Width: 100, Height: 100}, maxComplexity},
		{"in range", courseConfig{Seed: "s", Complexity: 6, Width: 100, Height: 100}, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.normalized().Complexity; got != tc.want {
				t.Fatalf("normalized complexity = %d, want %d", got, tc.want)
			}
		})
	}
}
