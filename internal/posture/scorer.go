// Package posture evaluates sitting-posture metrics against ergonomic
// threshold bands and produces qualitative feedback.
package posture

import (
	"fmt"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// Evaluate scores a posture sample against the configured threshold bands.
//
// Scoring starts at 100 points. Each metric carries an independent penalty
// budget: nothing below its warning threshold, a linear ramp to half the
// budget between warning and critical, and the full budget at or beyond
// critical. The overall level is critical if any metric crossed its critical
// threshold, warning if any crossed its warning threshold, and good
// otherwise.
func Evaluate(sample types.PostureSample, rules config.PostureRules) types.PostureAnalysis {
	score := 100.0
	var issues []string

	spinePenalty := rampPenalty(sample.SpineAngle, rules.SpineWarning, rules.SpineCritical, rules.SpineMaxPenalty)
	score -= spinePenalty
	if spinePenalty > 0 && sample.SpineAngle >= rules.SpineCritical {
		issues = append(issues, fmt.Sprintf("spine: severe slouching (%.1f°)", sample.SpineAngle))
	}

	// Eye distance inverts the band: lower is worse.
	eyePenalty := rampPenalty(rules.EyeWarning-sample.EyeScreenDistance, 0, rules.EyeWarning-rules.EyeCritical, rules.EyeMaxPenalty)
	score -= eyePenalty
	if eyePenalty > 0 && sample.EyeScreenDistance <= rules.EyeCritical {
		issues = append(issues, fmt.Sprintf("distance: too close to the screen (%.1fcm)", sample.EyeScreenDistance))
	}

	headPenalty := rampPenalty(sample.HeadTilt, rules.HeadWarning, rules.HeadCritical, rules.HeadMaxPenalty)
	score -= headPenalty
	if headPenalty > 0 && sample.HeadTilt >= rules.HeadCritical {
		issues = append(issues, fmt.Sprintf("head: severe tilt (%.1f°)", sample.HeadTilt))
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	level := determineLevel(sample, rules)

	return types.PostureAnalysis{
		IsCorrect:         level == types.PostureGood,
		Score:             score,
		Level:             level,
		Issues:            issues,
		Feedback:          feedback(issues, score),
		SpineAngle:        sample.SpineAngle,
		EyeScreenDistance: sample.EyeScreenDistance,
		HeadTilt:          sample.HeadTilt,
	}
}

// rampPenalty returns 0 below warning, ramps linearly to maxPenalty/2
// between warning and critical, and returns the full maxPenalty at or
// beyond critical. Callers normalize inverted metrics so that larger values
// are always worse.
func rampPenalty(value, warning, critical, maxPenalty float64) float64 {
	if value < warning {
		return 0
	}
	if value >= critical {
		return maxPenalty
	}
	ratio := (value - warning) / (critical - warning)
	return ratio * (maxPenalty * 0.5)
}

func determineLevel(sample types.PostureSample, rules config.PostureRules) types.PostureLevel {
	switch {
	case sample.SpineAngle >= rules.SpineCritical,
		sample.EyeScreenDistance <= rules.EyeCritical,
		sample.HeadTilt >= rules.HeadCritical:
		return types.PostureCritical
	case sample.SpineAngle >= rules.SpineWarning,
		sample.EyeScreenDistance <= rules.EyeWarning,
		sample.HeadTilt >= rules.HeadWarning:
		return types.PostureWarning
	default:
		return types.PostureGood
	}
}

// feedback assembles the user-facing message from which metric categories
// triggered issues, not from raw thresholds, so messaging stays stable as
// thresholds are tuned.
func feedback(issues []string, score float64) string {
	if len(issues) == 0 {
		if score >= 95 {
			return "Posture looks great, keep it up!"
		}
		return "Posture is good; a small adjustment would make it perfect."
	}

	var parts []string
	for _, category := range []struct {
		prefix string
		advice string
	}{
		{"spine", "sit up straight and keep your spine upright"},
		{"distance", "move back and keep a comfortable distance from the screen"},
		{"head", "level your head and look straight ahead"},
	} {
		for _, issue := range issues {
			if len(issue) >= len(category.prefix) && issue[:len(category.prefix)] == category.prefix {
				parts = append(parts, category.advice)
				break
			}
		}
	}

	if len(parts) == 0 {
		return "Please adjust your posture before continuing."
	}

	msg := parts[0]
	for _, p := range parts[1:] {
		msg += ", " + p
	}
	return msg + "."
}
