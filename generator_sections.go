package main

import (
	"math"
	"math/rand"
)

// sectionArchetype is the shape/property template a section is built from.
type sectionArchetype int

const (
	archetypeChannel sectionArchetype = iota
	archetypeDrop
	archetypeBankedTurn
	archetypeBoostLane
	archetypeSlowLane
)

// synthesizeSections builds one channel section per control-point pair.
// Hard rules: never more than two consecutive special sections, and no
// special section at index 0 or within the final two indices.
func synthesizeSections(rng *rand.Rand, course *Course, points []vec2) {
	sectionCount := len(points) - 1
	specialRun := 0
	var prevDir vec2
	prevNormal := vec2{X: -1, Y: 0}

	for i := 0; i+1 < len(points); i++ {
		ctx := buildSegmentContext(points[i], points[i+1], prevDir, prevNormal)
		prevDir = ctx.dir
		prevNormal = ctx.normal

		kind := classifySectionArchetype(rng, ctx)
		if kind != archetypeChannel {
			if specialRun >= 2 || i == 0 || i >= sectionCount-2 {
				kind = archetypeChannel
			}
		}
		if kind == archetypeChannel {
			specialRun = 0
		} else {
			specialRun++
		}

		course.AddSection(buildChannelSection(ctx, kind))
	}
}

// buildSegmentContext derives direction, normal, length, turn angle, and
// vertical drop for one control-point pair. A near-zero-length segment
// reuses the previous normal instead of dividing through its own length.
func buildSegmentContext(start, end, prevDir, prevNormal vec2) segmentContext {
	delta := end.sub(start)
	length := delta.length()
	dir := delta.normalized()
	normal := dir.perp()
	if length < minSegmentLength {
		dir = prevDir
		normal = prevNormal
		if dir == (vec2{}) {
			dir = vec2{X: 0, Y: 1}
			normal = dir.perp()
		}
		length = minSegmentLength
	}

	turn := 0.0
	if prevDir != (vec2{}) {
		turn = signedAngle(prevDir, dir)
	}

	return segmentContext{
		start:     start,
		end:       end,
		dir:       dir,
		normal:    normal,
		length:    length,
		turnAngle: turn,
		drop:      end.Y - start.Y,
	}
}

// classifySectionArchetype applies the fixed-order probabilistic rules:
// vertical drop, then sharp curve, then long segment, then the default
// channel. Long shallow segments become slow lanes so flats read as a
// hazard rather than free speed.
func classifySectionArchetype(rng *rand.Rand, ctx segmentContext) sectionArchetype {
	if ctx.drop > ctx.length*0.6 && rng.Float64() < 0.6 {
		return archetypeDrop
	}
	if math.Abs(ctx.turnAngle) > 0.55 && rng.Float64() < 0.4 {
		return archetypeBankedTurn
	}
	if ctx.length > 340 && rng.Float64() < 0.3 {
		if ctx.drop < ctx.length*0.3 {
			return archetypeSlowLane
		}
		return archetypeBoostLane
	}
	return archetypeChannel
}

// channelSpec holds the per-archetype channel dimensions and surface
// properties. Colors here are placeholders; theming repaints everything.
type channelSpec struct {
	halfWidth   float64
	wallLeft    float64
	wallRight   float64
	pinch       float64
	friction    float64
	restitution float64
	sectionType SectionType
}

func specForArchetype(ctx segmentContext, kind sectionArchetype) channelSpec {
	switch kind {
	case archetypeDrop:
		// Narrow rails and a near-frictionless bed.
		return channelSpec{halfWidth: 45, wallLeft: 30, wallRight: 30, friction: 0.05, restitution: 0.35, sectionType: SectionRamp}
	case archetypeBankedTurn:
		spec := channelSpec{halfWidth: 60, wallLeft: 18, wallRight: 18, pinch: 0.3, friction: 0.22, restitution: 0.3, sectionType: SectionFunnel}
		// The outer wall grows with the turn so marbles bank instead of
		// escaping. Positive turn angles bend toward +normal.
		boost := math.Min(34, math.Abs(ctx.turnAngle)*40)
		if ctx.turnAngle > 0 {
			spec.wallLeft += boost
		} else {
			spec.wallRight += boost
		}
		return spec
	case archetypeBoostLane:
		return channelSpec{halfWidth: 65, wallLeft: 22, wallRight: 22, friction: 0.08, restitution: 0.25, sectionType: SectionBooster}
	case archetypeSlowLane:
		return channelSpec{halfWidth: 75, wallLeft: 20, wallRight: 20, friction: 0.4, restitution: 0.2, sectionType: SectionSlowField}
	default:
		return channelSpec{halfWidth: 70, wallLeft: 26, wallRight: 26, friction: 0.3, restitution: 0.4, sectionType: SectionNormal}
	}
}

// buildChannelSection emits the closed 6-8 vertex outline plus the two
// convex rail quads used as physics fixtures. Ramps get the extra quarter
// points for an 8 vertex outline; everything else stays at 6.
func buildChannelSection(ctx segmentContext, kind sectionArchetype) *Section {
	spec := specForArchetype(ctx, kind)

	s := ctx.start
	e := ctx.end
	d := ctx.dir
	n := ctx.normal
	mid := lerpVec(s, e, 0.5)

	halfStart := spec.halfWidth
	halfEnd := spec.halfWidth * (1 - spec.pinch)
	halfMid := (halfStart + halfEnd) / 2

	outerL := func(p vec2, half float64) vec2 { return p.add(n.scale(half + spec.wallLeft)) }
	outerR := func(p vec2, half float64) vec2 { return p.sub(n.scale(half + spec.wallRight)) }

	var outline []vec2
	if kind == archetypeDrop {
		q1 := lerpVec(s, e, 0.25)
		q3 := lerpVec(s, e, 0.75)
		outline = []vec2{
			outerL(s, halfStart), outerL(q1, halfMid), outerL(q3, halfMid), outerL(e, halfEnd),
			outerR(e, halfEnd), outerR(q3, halfMid), outerR(q1, halfMid), outerR(s, halfStart),
		}
	} else {
		outline = []vec2{
			outerL(s, halfStart), outerL(mid, halfMid+spec.wallLeft*0.3), outerL(e, halfEnd),
			outerR(e, halfEnd), outerR(mid, halfMid+spec.wallRight*0.3), outerR(s, halfStart),
		}
	}

	// Rails overlap the neighboring sections so channel joints stay sealed.
	railS := s.sub(d.scale(railOverlap))
	railE := e.add(d.scale(railOverlap))
	leftRail := [4]vec2{
		railS.add(n.scale(halfStart)),
		railE.add(n.scale(halfEnd)),
		railE.add(n.scale(halfEnd + spec.wallLeft)),
		railS.add(n.scale(halfStart + spec.wallLeft)),
	}
	rightRail := [4]vec2{
		railS.sub(n.scale(halfStart)),
		railE.sub(n.scale(halfEnd)),
		railE.sub(n.scale(halfEnd + spec.wallRight)),
		railS.sub(n.scale(halfStart + spec.wallRight)),
	}

	return &Section{
		Vertices:    outline,
		Friction:    spec.friction,
		Restitution: spec.restitution,
		Type:        spec.sectionType,
		leftRail:    leftRail,
		rightRail:   rightRail,
		segStart:    s,
		segEnd:      e,
		dir:         d,
		midpoint:    mid,
	}
}
