package types

// ErrorCode identifies the reason a scoring result was short-circuited.
// Codes are machine-readable and stable; feedback text is not.
type ErrorCode string

const (
	// CodeStrokeOrderError marks a gating failure: the stroke count (or
	// order validity) ruled out meaningful quality scoring.
	CodeStrokeOrderError ErrorCode = "stroke_order_error"
	// CodeNoInk marks input whose extracted strokes carried too little
	// signal to score (blank or badly framed image).
	CodeNoInk ErrorCode = "no_ink_detected"
)

// Grade tiers for the total score.
const (
	GradeExcellent     = "excellent"
	GradeGood          = "good"
	GradePass          = "pass"
	GradeNeedsPractice = "needs practice"
)

// StrokeAnalysis is the per-stroke scoring detail returned to the user.
type StrokeAnalysis struct {
	StrokeIndex int      `json:"stroke_index"`
	Similarity  float64  `json:"similarity"`
	Score       float64  `json:"score"`
	Issues      []string `json:"issues,omitempty"`
}

// ScoreBreakdown summarizes per-stroke similarity scores for one character.
type ScoreBreakdown struct {
	TotalScore     float64 `json:"total_score"`
	StrokeCount    int     `json:"stroke_count"`
	ExpectedCount  *int    `json:"expected_count,omitempty"`
	AverageScore   float64 `json:"average_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	PerfectStrokes int     `json:"perfect_strokes"`
}

// OrderVerdict is the outcome of stroke order validation.
type OrderVerdict struct {
	IsValid            bool    `json:"is_valid"`
	Score              float64 `json:"score"`
	StrokeCountMatch   bool    `json:"stroke_count_match"`
	OrderPenalty       float64 `json:"order_penalty"`
	DirectionMatchRate float64 `json:"direction_match_rate"`
}

// Result is the comprehensive scoring outcome: handwriting and posture
// combined into one graded, explainable value. When Code is set the
// pipeline short-circuited and the scores are the fixed gating values.
type Result struct {
	TotalScore       float64          `json:"total_score"`
	HandwritingScore float64          `json:"handwriting_score"`
	PostureScore     float64          `json:"posture_score"`
	Grade            string           `json:"grade"`
	StrokeAnalysis   []StrokeAnalysis `json:"stroke_analysis"`
	Breakdown        *ScoreBreakdown  `json:"breakdown,omitempty"`
	OrderVerdict     OrderVerdict     `json:"order_verdict"`
	PostureAnalysis  *PostureAnalysis `json:"posture_analysis,omitempty"`
	Feedback         string           `json:"feedback"`
	Code             ErrorCode        `json:"code,omitempty"`
}
