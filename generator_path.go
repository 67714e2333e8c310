package main

import "math/rand"

// pathArchetype classifies how one control point advances to the next.
type pathArchetype int

const (
	pathStraight pathArchetype = iota
	pathCurveLeft
	pathCurveRight
	pathSwoop
	pathDrop
)

// checkpointStride returns the control-point interval between checkpoints:
// max(2, 5 - complexity/2), so denser courses get a denser ladder.
func checkpointStride(complexity int) int {
	stride := 5 - complexity/2
	if stride < 2 {
		stride = 2
	}
	return stride
}

// synthesizePath produces 10 + 3*complexity control points walking from
// the start toward the finish, inserts checkpoints along the way, and
// returns the points for section synthesis.
//
// The walk advances in absolute step sizes drawn from [150,500], then the
// whole point set is normalized so the first point sits on the start and
// the last lands exactly on the finish. Normalizing after the fact keeps
// the archetype proportions (and therefore the draw sequence) independent
// of course dimensions.
func synthesizePath(rng *rand.Rand, course *Course) []vec2 {
	count := 10 + course.Complexity*3
	points := make([]vec2, 0, count)
	current := course.Start
	points = append(points, current)

	for i := 1; i < count; i++ {
		kind := classifyPathArchetype(rng, i, count)
		base := randomRange(rng, segmentBaseMin, segmentBaseMax)
		current = advancePoint(rng, current, kind, base, course.Width)
		points = append(points, current)
	}

	normalizeToCourse(points, course)

	stride := checkpointStride(course.Complexity)
	for i, p := range points {
		if i%stride == 0 || i == count-1 {
			course.AddCheckpoint(p.X, p.Y)
		}
	}
	return points
}

// classifyPathArchetype draws a segment archetype from the position
// dependent probability table. Early segments favor gentle shapes so the
// pack stays together out of the gate; later segments draw uniformly.
func classifyPathArchetype(rng *rand.Rand, index, total int) pathArchetype {
	progress := 0.0
	if total > 1 {
		progress = float64(index) / float64(total-1)
	}
	roll := rng.Float64()
	if progress < 0.3 {
		switch {
		case roll < 0.40:
			return pathStraight
		case roll < 0.60:
			return pathCurveLeft
		case roll < 0.80:
			return pathCurveRight
		case roll < 0.95:
			return pathSwoop
		default:
			return pathDrop
		}
	}
	switch {
	case roll < 0.20:
		return pathStraight
	case roll < 0.40:
		return pathCurveLeft
	case roll < 0.60:
		return pathCurveRight
	case roll < 0.80:
		return pathSwoop
	default:
		return pathDrop
	}
}

// advancePoint applies the archetype's displacement to a control point.
// Straight pulls 20% back toward the horizontal center to curb drift;
// drops advance along the traversal axis at twice the usual step.
func advancePoint(rng *rand.Rand, from vec2, kind pathArchetype, base float64, width float64) vec2 {
	centerX := width * 0.5
	var dx, dy float64
	switch kind {
	case pathStraight:
		dy = base * 0.6
		dx = (centerX - from.X) * 0.2
	case pathCurveLeft:
		dx = -base * 0.55
		dy = base * 0.55
	case pathCurveRight:
		dx = base * 0.55
		dy = base * 0.55
	case pathSwoop:
		sign := 1.0
		if rng.Float64() < 0.5 {
			sign = -1
		}
		dx = sign * base * 0.8
		dy = base * randomRange(rng, 0.2, 0.5)
	case pathDrop:
		dx = randomRange(rng, -base*0.1, base*0.1)
		dy = base * 1.2
	}

	next := vec2{X: from.X + dx, Y: from.Y + dy}
	next.X = clamp(next.X, lateralMargin, width-lateralMargin)
	return next
}

// normalizeToCourse rescales the raw walk so the last point lands on the
// finish: vertical extents map onto [start.Y, finish.Y] and a progressive
// horizontal shift closes the gap to the finish column. The walk only ever
// descends, so the remap preserves traversal order.
func normalizeToCourse(points []vec2, course *Course) {
	if len(points) < 2 {
		return
	}
	last := points[len(points)-1]
	span := last.Y - course.Start.Y
	if span < 1e-6 {
		return
	}
	targetSpan := course.Finish.Y - course.Start.Y
	shiftX := course.Finish.X - last.X
	for i := range points {
		progress := (points[i].Y - course.Start.Y) / span
		points[i].Y = course.Start.Y + progress*targetSpan
		points[i].X = clamp(points[i].X+shiftX*progress, lateralMargin, course.Width-lateralMargin)
	}
	// Guard against the clamp nudging the endpoint off the finish column.
	points[len(points)-1] = course.Finish
}
