package models

import "time"

// FeedType is the kind of feeding that was logged
type FeedType string

const (
	FeedBreast  FeedType = "breast"
	FeedFormula FeedType = "formula"
	FeedSolid   FeedType = "solid"
	FeedWater   FeedType = "water"
	FeedOther   FeedType = "other"
)

// Valid reports whether t is a known feed type
func (t FeedType) Valid() bool {
	switch t {
	case FeedBreast, FeedFormula, FeedSolid, FeedWater, FeedOther:
		return true
	}
	return false
}

// StoolType describes the consistency of a dirty diaper
type StoolType string

const (
	StoolNormal StoolType = "normal"
	StoolLoose  StoolType = "loose"
	StoolHard   StoolType = "hard"
	StoolMucus  StoolType = "mucus"
)

// Valid reports whether t is a known stool type
func (t StoolType) Valid() bool {
	switch t {
	case StoolNormal, StoolLoose, StoolHard, StoolMucus:
		return true
	}
	return false
}

// FeedingEntry is a single feeding. Quantity is ml for liquids and grams
// for solids; Duration is minutes and only meaningful for breast feeds.
type FeedingEntry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      FeedType  `json:"type"`
	Quantity  *float64  `json:"quantity,omitempty"`
	Duration  *float64  `json:"duration,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// DiaperEntry is a single diaper change
type DiaperEntry struct {
	ID        string     `json:"id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Wet       bool       `json:"wet"`
	Stool     bool       `json:"stool"`
	StoolType *StoolType `json:"stool_type,omitempty"`
}

// DailyLog is everything a caregiver recorded for one day
type DailyLog struct {
	Date         string         `json:"date"`
	Feedings     []FeedingEntry `json:"feedings"`
	Diapers      []DiaperEntry  `json:"diapers"`
	FreeTextLogs []string       `json:"free_text_logs"`
}

// AlertType is the urgency of an alert
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertDanger  AlertType = "danger"
)

// AlertCategory groups alerts by the concern they raise
type AlertCategory string

const (
	CategoryHydration   AlertCategory = "hydration"
	CategoryNutrition   AlertCategory = "nutrition"
	CategoryDevelopment AlertCategory = "development"
	CategoryHealth      AlertCategory = "health"
)

// Alert is a rule-generated notice for the caregiver
type Alert struct {
	Type     AlertType     `json:"type"`
	Category AlertCategory `json:"category"`
	Message  string        `json:"message"`
}

// DailySummary aggregates a DailyLog; it is recomputed on every request
type DailySummary struct {
	Date               string  `json:"date"`
	TotalFeedings      int     `json:"total_feedings"`
	TotalBreastMinutes float64 `json:"total_breast_minutes"`
	TotalFormulaMl     float64 `json:"total_formula_ml"`
	TotalSolidGrams    float64 `json:"total_solid_grams"`
	WetDiapers         int     `json:"wet_diapers"`
	StoolCount         int     `json:"stool_count"`
	Alerts             []Alert `json:"alerts"`
}

// Guidelines are the expectations for one age bracket
type Guidelines struct {
	MinFeedings   int  `json:"min_feedings"`
	MinWetDiapers int  `json:"min_wet_diapers"`
	SolidsSafe    bool `json:"solids_safe"`
}

// TipCategory groups nutrition tips
type TipCategory string

const (
	TipFeeding     TipCategory = "feeding"
	TipDevelopment TipCategory = "development"
	TipSleep       TipCategory = "sleep"
	TipGeneral     TipCategory = "general"
	TipNutrition   TipCategory = "nutrition"
)

// Tip is advice targeted at an inclusive age range in months
type Tip struct {
	MinAge   float64     `json:"min_age"`
	MaxAge   float64     `json:"max_age"`
	Tip      string      `json:"tip"`
	Category TipCategory `json:"category"`
}

// ParseResult is what the free-text parser recovered from one log line.
// Entries carry no ID or timestamp until they are stamped by an EntryFactory.
type ParseResult struct {
	Feedings []FeedingEntry `json:"feedings"`
	Diapers  []DiaperEntry  `json:"diapers"`
	Alerts   []Alert        `json:"alerts"`
	Unparsed []string       `json:"unparsed"`
}

// TrendReport is the daily summaries of a window of days, oldest first,
// and the alerts raised across them
type TrendReport struct {
	From      string         `json:"from"`
	To        string         `json:"to"`
	Summaries []DailySummary `json:"summaries"`
	Alerts    []Alert        `json:"alerts"`
}
