package main

import "math"

// optimizePhysics runs last so friction and restitution reflect the final
// geometry and types rather than the archetype defaults.
func optimizePhysics(course *Course) {
	for i, section := range course.Sections {
		section.Friction = frictionForGrade(sectionDelta(section))

		if i+1 < len(course.Sections) {
			// Taper toward the neighbor's bounciness instead of jumping,
			// so consecutive surfaces feel continuous under the marble.
			next := course.Sections[i+1]
			section.Restitution = lerp(section.Restitution, next.Restitution, 0.3)
		}

		switch section.Type {
		case SectionFunnel:
			// Funnels guide; a bouncy funnel spits marbles back out.
			if section.Restitution > 0.2 {
				section.Restitution = 0.2
			}
		case SectionRamp:
			// Ramps keep a bounce floor so landings stay lively.
			if section.Restitution < 0.3 {
				section.Restitution = 0.3
			}
		}
	}
}

// sectionDelta measures the displacement between the section's first and
// last vertex pairs, i.e. across its entry and exit mouths.
func sectionDelta(section *Section) vec2 {
	n := len(section.Vertices)
	if n < 4 {
		return vec2{}
	}
	entry := lerpVec(section.Vertices[0], section.Vertices[n-1], 0.5)
	exit := lerpVec(section.Vertices[n/2-1], section.Vertices[n/2], 0.5)
	return exit.sub(entry)
}

// frictionForGrade maps a section's incline onto the friction bands:
// steep descents run near-frictionless, flats grip moderately, and climbs
// get the most grip. Near-zero horizontal displacement reads as steep.
func frictionForGrade(delta vec2) float64 {
	if math.Abs(delta.X) < 1e-3 {
		return 0.04
	}
	grade := delta.Y / math.Abs(delta.X)
	switch {
	case grade > 2.5:
		return 0.04
	case grade > 0.8:
		return 0.10
	case grade > -0.2:
		return 0.22
	default:
		return 0.42
	}
}
