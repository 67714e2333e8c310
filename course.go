package main

import "math"

// SectionType tags the gameplay behavior attached to a course section.
type SectionType string

const (
	SectionNormal    SectionType = "normal"
	SectionRamp      SectionType = "ramp"
	SectionFunnel    SectionType = "funnel"
	SectionSpinner   SectionType = "spinner"
	SectionBooster   SectionType = "booster"
	SectionSlowField SectionType = "slow-field"
	SectionBumpers   SectionType = "bumpers"
)

// Section is one closed channel polygon plus its gameplay and render
// properties. The outline doubles as the containment volume for effect
// lookup; the two rail quads are the convex fixtures the static physics
// body is built from. Sections are mutated in place by the theming and
// physics passes and read-only once simulation starts.
type Section struct {
	Vertices    []vec2      `json:"vertices"`
	Friction    float64     `json:"friction"`
	Restitution float64     `json:"restitution"`
	Type        SectionType `json:"type"`
	Glow        float64     `json:"glow"`
	Color       string      `json:"color"`

	leftRail  [4]vec2
	rightRail [4]vec2
	segStart  vec2
	segEnd    vec2
	dir       vec2
	midpoint  vec2
}

// Checkpoint is a point on the progress ladder. Traversal order is
// insertion order.
type Checkpoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ThemeColors carries the course palette for the renderer.
type ThemeColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Course owns the generated sections and checkpoints.
type Course struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Complexity  int          `json:"complexity"`
	Seed        string       `json:"seed"`
	Start       vec2         `json:"start"`
	Finish      vec2         `json:"finish"`
	Sections    []*Section   `json:"sections"`
	Checkpoints []Checkpoint `json:"checkpoints"`
	Theme       ThemeColors  `json:"theme"`
}

// AddSection appends a section. Insertion order is path-traversal order
// and doubles as the tie-break when outlines overlap.
func (c *Course) AddSection(s *Section) {
	if s == nil {
		return
	}
	c.Sections = append(c.Sections, s)
}

// AddCheckpoint appends a checkpoint to the progress ladder.
func (c *Course) AddCheckpoint(x, y float64) {
	c.Checkpoints = append(c.Checkpoints, Checkpoint{X: x, Y: y})
}

// insertCheckpoint splices a checkpoint into its traversal position on
// the ladder. The walk only descends, so vertical order is traversal
// order; appending a mid-course checkpoint at the tail would let a marble
// halfway down report full progress.
func (c *Course) insertCheckpoint(x, y float64) {
	at := len(c.Checkpoints)
	for i, cp := range c.Checkpoints {
		if cp.Y > y {
			at = i
			break
		}
	}
	c.Checkpoints = append(c.Checkpoints, Checkpoint{})
	copy(c.Checkpoints[at+1:], c.Checkpoints[at:])
	c.Checkpoints[at] = Checkpoint{X: x, Y: y}
}

// ProgressPercentage approximates course progress as the index of the
// nearest checkpoint over the ladder length. A marble that overshoots and
// loops back near an earlier checkpoint reports the lower value; ranking
// tie-breaks depend on that, so the heuristic stays as-is.
func (c *Course) ProgressPercentage(pos vec2) float64 {
	if len(c.Checkpoints) == 0 {
		return 0
	}
	if len(c.Checkpoints) == 1 {
		return 1
	}
	nearest := 0
	best := math.MaxFloat64
	for i, cp := range c.Checkpoints {
		d := pos.sub(vec2{X: cp.X, Y: cp.Y}).length()
		if d < best {
			best = d
			nearest = i
		}
	}
	return float64(nearest) / float64(len(c.Checkpoints)-1)
}
