package main

import (
	"fmt"
	"math"
	"math/rand"
)

// cameraHueBands are the hue ranges that stay legible on a phone screen:
// blues, purples, teals, and warm ambers. Greens near pure #00ff00 and
// desaturated browns wash out against the usual backgrounds.
var cameraHueBands = [][2]float64{
	{195, 255},
	{270, 320},
	{150, 195},
	{8, 45},
}

// specialPalette overrides the gradient for sections that carry gameplay,
// paired with a glow intensity so the renderer can halo them.
var specialPalette = map[SectionType]struct {
	color string
	glow  float64
}{
	SectionRamp:      {color: "#ff8c42", glow: 0.5},
	SectionFunnel:    {color: "#b26ef2", glow: 0.55},
	SectionBooster:   {color: "#3ddc97", glow: 0.8},
	SectionSpinner:   {color: "#ffd166", glow: 0.7},
	SectionSlowField: {color: "#6c8dfa", glow: 0.6},
	SectionBumpers:   {color: "#ff5d73", glow: 0.7},
}

// applyTheme picks the course palette and sweeps section colors along a
// sine-weighted primary/secondary gradient by traversal progress, then
// repaints special sections and lights up checkpoint surroundings.
func applyTheme(rng *rand.Rand, course *Course) {
	band := cameraHueBands[rng.Intn(len(cameraHueBands))]
	primaryHue := randomRange(rng, band[0], band[1])

	secondaryHue := primaryHue + 30
	if rng.Float64() < 0.5 {
		secondaryHue = primaryHue - 30
	}
	accentHue := math.Mod(primaryHue+180+360, 360)

	const primaryLightness = 0.55
	course.Theme = ThemeColors{
		Primary:   hslToHex(primaryHue, 0.70, primaryLightness),
		Secondary: hslToHex(secondaryHue, 0.65, 0.50),
		Accent:    hslToHex(accentHue, 0.75, primaryLightness+0.10),
	}

	total := len(course.Sections)
	for i, section := range course.Sections {
		t := 0.0
		if total > 1 {
			t = float64(i) / float64(total-1)
		}
		w := math.Sin(t * math.Pi)
		hue := lerp(primaryHue, secondaryHue, w)
		section.Color = hslToHex(hue, 0.65, lerp(0.45, 0.60, w))
	}

	for _, section := range course.Sections {
		if override, ok := specialPalette[section.Type]; ok {
			section.Color = override.color
			section.Glow = override.glow
		}
	}

	// Checkpoint surroundings glow faintly unless something already does.
	for _, section := range course.Sections {
		if section.Glow > 0 {
			continue
		}
		for _, cp := range course.Checkpoints {
			if section.midpoint.sub(vec2{X: cp.X, Y: cp.Y}).length() < checkpointGlowRange {
				section.Glow = 0.35
				break
			}
		}
	}
}

// hslToHex converts hue (degrees) / saturation / lightness to a #rrggbb
// string for the renderer.
func hslToHex(h, s, l float64) string {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	s = clamp(s, 0, 1)
	l = clamp(l, 0, 1)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	toByte := func(v float64) int {
		return int(math.Round(clamp(v+m, 0, 1) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", toByte(r), toByte(g), toByte(b))
}
