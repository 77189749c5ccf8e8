package types

// PostureLevel classifies overall sitting posture quality.
type PostureLevel string

const (
	PostureGood     PostureLevel = "good"
	PostureWarning  PostureLevel = "warning"
	PostureCritical PostureLevel = "critical"
)

// PostureSample holds the three pose-detection metrics evaluated per request.
// SpineAngle and HeadTilt are deviations in degrees (lower is better);
// EyeScreenDistance is in centimeters (higher is better).
type PostureSample struct {
	SpineAngle        float64 `json:"spine_angle" validate:"gte=0,lte=90"`
	EyeScreenDistance float64 `json:"eye_screen_distance" validate:"gte=0,lte=100"`
	HeadTilt          float64 `json:"head_tilt" validate:"gte=0,lte=90"`
}

// PostureAnalysis is the scored outcome for one posture sample.
type PostureAnalysis struct {
	IsCorrect         bool         `json:"is_correct"`
	Score             float64      `json:"score"`
	Level             PostureLevel `json:"level"`
	Issues            []string     `json:"issues,omitempty"`
	Feedback          string       `json:"feedback"`
	SpineAngle        float64      `json:"spine_angle"`
	EyeScreenDistance float64      `json:"eye_screen_distance"`
	HeadTilt          float64      `json:"head_tilt"`
}
