package nutrition

import "heybabyy/internal/models"

// bracket is a half-open age range [from, next bracket's from)
type bracket struct {
	from       float64
	guidelines models.Guidelines
}

// brackets is ordered by ascending lower bound; the last one is open ended
var brackets = []bracket{
	{0, models.Guidelines{MinFeedings: 8, MinWetDiapers: 6, SolidsSafe: false}},
	{1, models.Guidelines{MinFeedings: 7, MinWetDiapers: 6, SolidsSafe: false}},
	{3, models.Guidelines{MinFeedings: 6, MinWetDiapers: 5, SolidsSafe: false}},
	{6, models.Guidelines{MinFeedings: 5, MinWetDiapers: 4, SolidsSafe: true}},
	{9, models.Guidelines{MinFeedings: 4, MinWetDiapers: 4, SolidsSafe: true}},
	{12, models.Guidelines{MinFeedings: 3, MinWetDiapers: 4, SolidsSafe: true}},
}

var tips = []models.Tip{
	{MinAge: 0, MaxAge: 1, Category: models.TipFeeding,
		Tip: "Feed on demand, typically 8-12 times per day. Watch for hunger cues like rooting and hand-to-mouth."},
	{MinAge: 0, MaxAge: 3, Category: models.TipFeeding,
		Tip: "Breast milk or formula provides all nutrition needed. No water or solids yet."},
	{MinAge: 1, MaxAge: 3, Category: models.TipDevelopment,
		Tip: "Growth spurts around 2-3 weeks, 6 weeks, and 3 months may increase feeding frequency."},
	{MinAge: 3, MaxAge: 6, Category: models.TipDevelopment,
		Tip: "Baby may start showing interest in food, but wait until 6 months for solids."},
	{MinAge: 4, MaxAge: 6, Category: models.TipFeeding,
		Tip: "Signs of readiness for solids: good head control, sitting with support, interest in food."},
	{MinAge: 6, MaxAge: 8, Category: models.TipFeeding,
		Tip: "Start with single-ingredient purees. Introduce one new food every 3-5 days to watch for allergies."},
	{MinAge: 6, MaxAge: 9, Category: models.TipNutrition,
		Tip: "Iron-rich foods are important now. Try iron-fortified cereals, pureed meats, or beans."},
	{MinAge: 8, MaxAge: 10, Category: models.TipFeeding,
		Tip: "Introduce soft finger foods as baby develops pincer grasp. Avoid choking hazards."},
	{MinAge: 9, MaxAge: 12, Category: models.TipFeeding,
		Tip: "Baby can try most family foods in appropriate textures. Continue breast milk or formula."},
	{MinAge: 10, MaxAge: 12, Category: models.TipFeeding,
		Tip: "Offer a sippy cup with water during meals. Limit juice."},
	{MinAge: 12, MaxAge: 24, Category: models.TipFeeding,
		Tip: "Transition to whole milk. Aim for 16-24 oz daily. Focus on variety in solid foods."},
}

// GuidelinesForAge returns the feeding and diaper expectations for the
// bracket containing ageMonths. Negative ages fall into the first bracket.
func GuidelinesForAge(ageMonths float64) models.Guidelines {
	g := brackets[0].guidelines
	for _, b := range brackets {
		if ageMonths >= b.from {
			g = b.guidelines
		}
	}
	return g
}

// TipsForAge returns every tip whose inclusive range contains ageMonths,
// in authored order.
func TipsForAge(ageMonths float64) []models.Tip {
	matched := []models.Tip{}
	for _, tip := range tips {
		if ageMonths >= tip.MinAge && ageMonths <= tip.MaxAge {
			matched = append(matched, tip)
		}
	}
	return matched
}
