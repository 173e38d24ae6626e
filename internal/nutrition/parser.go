package nutrition

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"heybabyy/internal/models"
)

const ozToMl = 29.57

// maxDiaperCount is the largest per-segment diaper count accepted; larger
// counts leave the segment unrecognised
const maxDiaperCount = 50

var segmentSeparator = regexp.MustCompile(`[,;]+`)

// parseState accumulates what rules recover from a single log
type parseState struct {
	ageMonths float64
	result    *models.ParseResult
}

// rule recognises one kind of mention inside a segment and reports
// whether it matched. Rules run independently on every segment.
type rule struct {
	name  string
	apply func(segment string, st *parseState) bool
}

var (
	formulaPattern  = regexp.MustCompile(`(\d+)\s*(ml|oz)\s*(formula|bottle)`)
	breastPattern   = regexp.MustCompile(`(breast|nurse|bf)\w*\s*(\d+)\s*(min|m)`)
	solidPattern    = regexp.MustCompile(`(\d+)\s*g\s*(puree|solid|food|cereal)`)
	solidAltPattern = regexp.MustCompile(`(puree|solid|food|cereal)\s*(\d+)\s*g`)
	wetPattern      = regexp.MustCompile(`(\d+)\s*wet\s*(diaper)?s?`)
	stoolPattern    = regexp.MustCompile(`(\d+)\s*(poop|stool|dirty|bm)s?\s*(diaper)?s?`)
)

// rules is evaluated in order for every segment. New mention types are
// added by appending here.
var rules = []rule{
	{name: "formula", apply: parseFormula},
	{name: "breast", apply: parseBreast},
	{name: "solid", apply: parseSolid},
	{name: "wet", apply: parseWet},
	{name: "stool", apply: parseStool},
}

// ParseFreeText turns a caregiver's shorthand, e.g.
// "90ml formula, 6 wet diapers, 2 poops", into structured entries.
// Segments no rule recognises are returned in Unparsed; it never fails.
func ParseFreeText(text string, ageMonths float64) models.ParseResult {
	result := models.ParseResult{
		Feedings: []models.FeedingEntry{},
		Diapers:  []models.DiaperEntry{},
		Alerts:   []models.Alert{},
		Unparsed: []string{},
	}
	st := &parseState{ageMonths: ageMonths, result: &result}

	for _, segment := range splitSegments(text) {
		parsed := false
		for _, r := range rules {
			if r.apply(segment, st) {
				parsed = true
			}
		}
		if !parsed && len(segment) > 2 {
			result.Unparsed = append(result.Unparsed, segment)
		}
	}
	return result
}

func splitSegments(text string) []string {
	var segments []string
	for _, s := range segmentSeparator.Split(strings.ToLower(text), -1) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func parseFormula(segment string, st *parseState) bool {
	m := formulaPattern.FindStringSubmatch(segment)
	if m == nil {
		return false
	}
	n, ok := atoi(m[1])
	if !ok {
		return false
	}
	quantity := float64(n)
	if m[2] == "oz" {
		quantity = math.Round(quantity * ozToMl)
	}
	st.result.Feedings = append(st.result.Feedings, models.FeedingEntry{
		Type:     models.FeedFormula,
		Quantity: &quantity,
	})
	return true
}

func parseBreast(segment string, st *parseState) bool {
	m := breastPattern.FindStringSubmatch(segment)
	if m == nil {
		return false
	}
	n, ok := atoi(m[2])
	if !ok {
		return false
	}
	duration := float64(n)
	st.result.Feedings = append(st.result.Feedings, models.FeedingEntry{
		Type:     models.FeedBreast,
		Duration: &duration,
	})
	return true
}

func parseSolid(segment string, st *parseState) bool {
	var digits string
	if m := solidPattern.FindStringSubmatch(segment); m != nil {
		digits = m[1]
	} else if m := solidAltPattern.FindStringSubmatch(segment); m != nil {
		digits = m[2]
	} else {
		return false
	}
	n, ok := atoi(digits)
	if !ok {
		return false
	}
	grams := float64(n)
	st.result.Feedings = append(st.result.Feedings, models.FeedingEntry{
		Type:     models.FeedSolid,
		Quantity: &grams,
	})

	if !GuidelinesForAge(st.ageMonths).SolidsSafe {
		st.result.Alerts = append(st.result.Alerts, models.Alert{
			Type:     models.AlertWarning,
			Category: models.CategoryDevelopment,
			Message: fmt.Sprintf("Solids logged but baby is only %s months old. WHO recommends waiting until 6 months.",
				formatNumber(st.ageMonths)),
		})
	}
	return true
}

func parseWet(segment string, st *parseState) bool {
	m := wetPattern.FindStringSubmatch(segment)
	if m == nil {
		return false
	}
	count, ok := atoi(m[1])
	if !ok || count > maxDiaperCount {
		return false
	}
	for i := 0; i < count; i++ {
		st.result.Diapers = append(st.result.Diapers, models.DiaperEntry{Wet: true})
	}
	return true
}

func parseStool(segment string, st *parseState) bool {
	m := stoolPattern.FindStringSubmatch(segment)
	if m == nil {
		return false
	}
	count, ok := atoi(m[1])
	if !ok || count > maxDiaperCount {
		return false
	}
	for i := 0; i < count; i++ {
		st.result.Diapers = append(st.result.Diapers, models.DiaperEntry{Stool: true})
	}
	return true
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// formatNumber prints a float without trailing zeros, so 3 prints as "3"
// and 2.5 as "2.5"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
