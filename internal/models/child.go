package models

import (
	"math"
	"time"
)

// daysPerMonth is the mean Gregorian month length used for age arithmetic
const daysPerMonth = 30.4375

// DateLayout is the ISO date format used for daily logs and birth dates
const DateLayout = "2006-01-02"

// Child represents a child profile tracked by a caregiver
type Child struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sex       Sex       `json:"sex"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeInMonths returns the child's age on the given day in fractional months.
// Dates before birth yield zero.
func (c *Child) AgeInMonths(at time.Time) float64 {
	return AgeInMonths(c.BirthDate, at)
}

// AgeInMonths converts the span between birth and at into fractional months
func AgeInMonths(birth, at time.Time) float64 {
	b := time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	days := a.Sub(b).Hours() / 24
	if days <= 0 {
		return 0
	}
	return math.Round(days/daysPerMonth*100) / 100
}

// GrowthRecord is a stored weight (and optional length) reading for a child
type GrowthRecord struct {
	ID         int64     `json:"id"`
	ChildID    string    `json:"child_id"`
	MeasuredOn time.Time `json:"measured_on"`
	WeightKg   float64   `json:"weight_kg"`
	LengthCm   *float64  `json:"length_cm,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Measurement converts the record into a series point keyed by completed months
func (r GrowthRecord) Measurement(birth time.Time) Measurement {
	return Measurement{
		Month:  int(math.Floor(AgeInMonths(birth, r.MeasuredOn))),
		Weight: r.WeightKg,
	}
}

// ChildGrowth is the evaluation of a child's stored growth series
type ChildGrowth struct {
	Child     Child           `json:"child"`
	AgeMonths float64         `json:"age_months"`
	Latest    *GrowthRecord   `json:"latest,omitempty"`
	Analysis  *GrowthAnalysis `json:"analysis,omitempty"`
	Drift     DriftResult     `json:"drift"`
	Sparkline Sparkline       `json:"sparkline"`
	ASCII     string          `json:"ascii"`
}
