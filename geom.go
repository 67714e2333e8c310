package main

import "math"

// vec2 is the 2D vector shared by the generator and the simulation.
type vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v vec2) add(o vec2) vec2 {
	return vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v vec2) sub(o vec2) vec2 {
	return vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v vec2) scale(s float64) vec2 {
	return vec2{X: v.X * s, Y: v.Y * s}
}

func (v vec2) length() float64 {
	return math.Hypot(v.X, v.Y)
}

// normalized returns the unit vector, or the zero vector when the input is
// too short to carry a direction. Callers substitute their own fallback.
func (v vec2) normalized() vec2 {
	length := v.length()
	if length < 1e-9 {
		return vec2{}
	}
	return vec2{X: v.X / length, Y: v.Y / length}
}

// perp returns the counter-clockwise normal.
func (v vec2) perp() vec2 {
	return vec2{X: -v.Y, Y: v.X}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec(a, b vec2, t float64) vec2 {
	return vec2{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

// smoothstep eases t across [0,1] with zero slope at both ends.
func smoothstep(t float64) float64 {
	t = clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// normalizeAngle wraps an angle into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// signedAngle returns the signed turn from direction a to direction b.
func signedAngle(a, b vec2) float64 {
	return normalizeAngle(math.Atan2(b.Y, b.X) - math.Atan2(a.Y, a.X))
}

// pointInPolygon runs the edge-crossing parity test against a closed
// outline. Points exactly on an edge land on whichever side the parity
// rule picks; section lookup relies on list order for ties, not on edge
// precision.
func pointInPolygon(p vec2, vertices []vec2) bool {
	if len(vertices) < 3 {
		return false
	}
	inside := false
	j := len(vertices) - 1
	for i := 0; i < len(vertices); i++ {
		vi := vertices[i]
		vj := vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// quadArea returns the absolute shoelace area of a quad.
func quadArea(q [4]vec2) float64 {
	area := 0.0
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		area += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return math.Abs(area) / 2
}

// clamp limits value to the range [min, max].
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
