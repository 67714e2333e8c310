package main

import "strings"

// courseConfig captures the generator inputs. Values arrive from viper in
// main or directly from tests.
type courseConfig struct {
	Seed       string  `json:"seed" mapstructure:"seed"`
	Complexity int     `json:"complexity" mapstructure:"complexity"`
	Width      float64 `json:"width" mapstructure:"width"`
	Height     float64 `json:"height" mapstructure:"height"`
}

// normalized returns a config with defaults applied. Out-of-range
// complexity is clamped into [1,10], never rejected.
func (cfg courseConfig) normalized() courseConfig {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultCourseSeed
	}
	if normalized.Complexity < minComplexity {
		normalized.Complexity = minComplexity
	}
	if normalized.Complexity > maxComplexity {
		normalized.Complexity = maxComplexity
	}
	if normalized.Width <= 0 {
		normalized.Width = defaultCourseWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = defaultCourseHeight
	}
	return normalized
}

// defaultCourseConfig is the vertical-video course every knob defaults to.
func defaultCourseConfig() courseConfig {
	return courseConfig{
		Seed:       defaultCourseSeed,
		Complexity: defaultComplexity,
		Width:      defaultCourseWidth,
		Height:     defaultCourseHeight,
	}
}
