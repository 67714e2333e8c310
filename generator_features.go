package main

import (
	"math"
	"math/rand"
	"sort"
)

// zoneKind classifies a short run of sections for feature placement.
type zoneKind int

const (
	zoneOpenArea zoneKind = iota
	zoneDownhill
	zoneTightTurn
	zoneTransition
)

// featureZone is a transient 2-3 section grouping; it only lives for the
// duration of the placement pass.
type featureZone struct {
	startIndex int
	endIndex   int
	kind       zoneKind
	priority   float64
}

// placeFeatures partitions the course into zones, scores them, and places
// gameplay features by descending priority until the target count is met.
// The priority curve favors the middle of the course so the opening and
// the finish approach stay calm.
func placeFeatures(rng *rand.Rand, course *Course) {
	total := len(course.Sections)
	if total == 0 {
		return
	}

	zones := make([]featureZone, 0, total/3+1)
	for i := 0; i < total; i += 3 {
		end := i + 2
		if end >= total {
			end = total - 1
		}
		zone := featureZone{startIndex: i, endIndex: end}
		zone.kind = classifyZone(course, zone)
		zone.priority = zonePriority(zone, total)
		zones = append(zones, zone)
	}
	sort.SliceStable(zones, func(a, b int) bool {
		return zones[a].priority > zones[b].priority
	})

	target := course.Complexity
	if target < 3 {
		target = 3
	}

	placed := 0
	for _, zone := range zones {
		if placed >= target {
			break
		}
		remaining := float64(target-placed) / float64(target)
		chance := math.Min(0.85, remaining*zone.priority)
		if rng.Float64() >= chance {
			continue
		}
		if applyZoneFeature(course, zone) {
			placed++
		}
	}

	// Uniform fallback keeps sparse courses interesting, excluding the
	// first section and the final two.
	span := total - 3
	for attempts := 0; placed < target && attempts < 10 && span > 1; attempts++ {
		idx := 1 + rng.Intn(span)
		zone := featureZone{startIndex: idx, endIndex: idx}
		zone.kind = classifyZone(course, zone)
		if applyZoneFeature(course, zone) {
			placed++
		}
	}
}

// classifyZone applies the fixed classification order: downhill beats
// tight turns beats transitions; everything else is open area.
func classifyZone(course *Course, zone featureZone) zoneKind {
	first := course.Sections[zone.startIndex]
	last := course.Sections[zone.endIndex]

	if last.segEnd.Y-first.segStart.Y > downhillZoneDrop {
		return zoneDownhill
	}
	for i := zone.startIndex; i <= zone.endIndex; i++ {
		if course.Sections[i].Type == SectionFunnel {
			return zoneTightTurn
		}
	}
	for i := zone.startIndex + 1; i <= zone.endIndex; i++ {
		if course.Sections[i].Type != course.Sections[zone.startIndex].Type {
			return zoneTransition
		}
	}
	return zoneOpenArea
}

func zonePriority(zone featureZone, total int) float64 {
	center := 1 - 2*math.Abs(float64(zone.startIndex)/float64(total)-0.5)
	weight := 1.0
	switch zone.kind {
	case zoneDownhill:
		weight = 1.2
	case zoneTightTurn:
		weight = 1.1
	case zoneTransition:
		weight = 0.9
	}
	return center * weight
}

// applyZoneFeature places the zone-appropriate feature and reports whether
// anything was placed. Type conversions respect the global run rule (no
// more than two consecutive special sections) and the protected indices.
func applyZoneFeature(course *Course, zone featureZone) bool {
	switch zone.kind {
	case zoneOpenArea:
		return convertSectionInZone(course, zone, SectionSpinner)
	case zoneDownhill:
		return convertSectionInZone(course, zone, SectionBooster)
	case zoneTightTurn:
		return convertSectionInZone(course, zone, SectionBumpers)
	case zoneTransition:
		return placeGlowCheckpoint(course, zone)
	}
	return false
}

// convertSectionInZone retargets the first eligible normal section in the
// zone to the requested special type.
func convertSectionInZone(course *Course, zone featureZone, target SectionType) bool {
	total := len(course.Sections)
	for i := zone.startIndex; i <= zone.endIndex; i++ {
		if i == 0 || i >= total-2 {
			continue
		}
		section := course.Sections[i]
		if section.Type != SectionNormal {
			continue
		}
		if !conversionKeepsRuns(course.Sections, i) {
			continue
		}
		section.Type = target
		return true
	}
	return false
}

// conversionKeepsRuns reports whether turning sections[idx] special keeps
// every special run at two or shorter.
func conversionKeepsRuns(sections []*Section, idx int) bool {
	run := 1
	for i := idx - 1; i >= 0 && sections[i].Type != SectionNormal; i-- {
		run++
	}
	for i := idx + 1; i < len(sections) && sections[i].Type != SectionNormal; i++ {
		run++
	}
	return run <= 2
}

// placeGlowCheckpoint lights up the middle of a transition zone and adds a
// checkpoint there unless one already sits within dedupe range.
func placeGlowCheckpoint(course *Course, zone featureZone) bool {
	mid := (zone.startIndex + zone.endIndex) / 2
	section := course.Sections[mid]
	if section.Glow < 0.4 {
		section.Glow = 0.4
	}

	for _, cp := range course.Checkpoints {
		if section.midpoint.sub(vec2{X: cp.X, Y: cp.Y}).length() < checkpointDedupeRange {
			return true
		}
	}
	course.insertCheckpoint(section.midpoint.X, section.midpoint.Y)
	return true
}
