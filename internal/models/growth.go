package models

// Sex selects which set of WHO reference tables applies to a child
type Sex string

const (
	SexBoy  Sex = "boy"
	SexGirl Sex = "girl"
)

// Valid reports whether s is a known sex value
func (s Sex) Valid() bool {
	return s == SexBoy || s == SexGirl
}

// MeasurementType is the kind of anthropometric measurement being evaluated
type MeasurementType string

const (
	MeasurementWeight MeasurementType = "weight"
	MeasurementLength MeasurementType = "length"
)

// Valid reports whether t is a known measurement type
func (t MeasurementType) Valid() bool {
	return t == MeasurementWeight || t == MeasurementLength
}

// LMS holds the Box-Cox power (L), median (M) and coefficient of
// variation (S) for one sex/age/measurement combination.
type LMS struct {
	L float64 `json:"l"`
	M float64 `json:"m"`
	S float64 `json:"s"`
}

// GrowthStatus is the coarse classification of a weight-for-age z-score
type GrowthStatus string

const (
	GrowthNormal  GrowthStatus = "normal"
	GrowthMonitor GrowthStatus = "monitor"
	GrowthConcern GrowthStatus = "concern"
)

// Measurement is one point of a weight series, month is age in whole months
type Measurement struct {
	Month  int     `json:"month"`
	Weight float64 `json:"weight"`
}

// GrowthAnalysis is the evaluation of a single weight (and optional length) reading
type GrowthAnalysis struct {
	ZScore           float64      `json:"z_score"`
	Percentile       int          `json:"percentile"`
	LengthZScore     *float64     `json:"length_z_score,omitempty"`
	LengthPercentile *int         `json:"length_percentile,omitempty"`
	Status           GrowthStatus `json:"status"`
	Message          string       `json:"message"`
	Color            string       `json:"color"`
}

// DriftSeverity grades how sharply a weight trajectory moved
type DriftSeverity string

const (
	DriftNone     DriftSeverity = "none"
	DriftMild     DriftSeverity = "mild"
	DriftModerate DriftSeverity = "moderate"
	DriftSevere   DriftSeverity = "severe"
)

// DriftResult reports whether a measurement series crossed percentile lines
type DriftResult struct {
	HasDrift bool          `json:"has_drift"`
	Message  string        `json:"message"`
	Severity DriftSeverity `json:"severity"`
}

// CurvePoint is one month of a reference percentile curve
type CurvePoint struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// PercentileLine is a reference curve for a single percentile
type PercentileLine struct {
	Percentile int          `json:"percentile"`
	Data       []CurvePoint `json:"data"`
}

// Trend is the direction of the most recent step in a series
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Sparkline is a normalised view of a weight series for compact display
type Sparkline struct {
	Points  []float64 `json:"points"`
	Trend   Trend     `json:"trend"`
	ZScores []float64 `json:"z_scores"`
}
