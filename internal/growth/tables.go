package growth

import "heybabyy/internal/models"

// lmsEntry is one tabulated age of a WHO reference table
type lmsEntry struct {
	age    int
	params models.LMS
}

// lmsTable is sorted by ascending age and never written after init
type lmsTable []lmsEntry

// WHO Child Growth Standards, weight-for-age and length-for-age, 0-24 months.
var (
	boysWeight = lmsTable{
		{0, models.LMS{L: 0.3487, M: 3.3464, S: 0.14602}},
		{1, models.LMS{L: 0.2297, M: 4.4709, S: 0.13395}},
		{2, models.LMS{L: 0.197, M: 5.5675, S: 0.12385}},
		{3, models.LMS{L: 0.1738, M: 6.3762, S: 0.11727}},
		{4, models.LMS{L: 0.1553, M: 7.0023, S: 0.11316}},
		{5, models.LMS{L: 0.1395, M: 7.5105, S: 0.1108}},
		{6, models.LMS{L: 0.1257, M: 7.934, S: 0.10958}},
		{7, models.LMS{L: 0.1134, M: 8.297, S: 0.10902}},
		{8, models.LMS{L: 0.1021, M: 8.6151, S: 0.10882}},
		{9, models.LMS{L: 0.0917, M: 8.9014, S: 0.10881}},
		{10, models.LMS{L: 0.082, M: 9.1649, S: 0.10891}},
		{11, models.LMS{L: 0.073, M: 9.4122, S: 0.10906}},
		{12, models.LMS{L: 0.0644, M: 9.6479, S: 0.10925}},
		{18, models.LMS{L: 0.0271, M: 10.9, S: 0.11}},
		{24, models.LMS{L: -0.005, M: 12.2, S: 0.112}},
	}

	girlsWeight = lmsTable{
		{0, models.LMS{L: 0.3809, M: 3.2322, S: 0.14171}},
		{1, models.LMS{L: 0.1714, M: 4.1873, S: 0.13724}},
		{2, models.LMS{L: 0.0962, M: 5.1282, S: 0.12619}},
		{3, models.LMS{L: 0.0402, M: 5.8458, S: 0.11872}},
		{4, models.LMS{L: -0.005, M: 6.4237, S: 0.11342}},
		{5, models.LMS{L: -0.043, M: 6.8985, S: 0.10973}},
		{6, models.LMS{L: -0.0756, M: 7.297, S: 0.10717}},
		{7, models.LMS{L: -0.1039, M: 7.6422, S: 0.10531}},
		{8, models.LMS{L: -0.1288, M: 7.9487, S: 0.10393}},
		{9, models.LMS{L: -0.1507, M: 8.2254, S: 0.10287}},
		{10, models.LMS{L: -0.17, M: 8.48, S: 0.10203}},
		{11, models.LMS{L: -0.187, M: 8.7167, S: 0.10134}},
		{12, models.LMS{L: -0.202, M: 8.9396, S: 0.10076}},
		{18, models.LMS{L: -0.27, M: 10.2, S: 0.102}},
		{24, models.LMS{L: -0.32, M: 11.5, S: 0.105}},
	}

	boysLength = lmsTable{
		{0, models.LMS{L: 1, M: 49.9, S: 0.03795}},
		{1, models.LMS{L: 1, M: 54.7, S: 0.03557}},
		{2, models.LMS{L: 1, M: 58.4, S: 0.03424}},
		{3, models.LMS{L: 1, M: 61.4, S: 0.03328}},
		{4, models.LMS{L: 1, M: 63.9, S: 0.03257}},
		{5, models.LMS{L: 1, M: 65.9, S: 0.03204}},
		{6, models.LMS{L: 1, M: 67.6, S: 0.03165}},
		{7, models.LMS{L: 1, M: 69.2, S: 0.03139}},
		{8, models.LMS{L: 1, M: 70.6, S: 0.03124}},
		{9, models.LMS{L: 1, M: 72.0, S: 0.03117}},
		{10, models.LMS{L: 1, M: 73.3, S: 0.03118}},
		{11, models.LMS{L: 1, M: 74.5, S: 0.03125}},
		{12, models.LMS{L: 1, M: 75.7, S: 0.03137}},
		{18, models.LMS{L: 1, M: 82.3, S: 0.032}},
		{24, models.LMS{L: 1, M: 87.8, S: 0.033}},
	}

	girlsLength = lmsTable{
		{0, models.LMS{L: 1, M: 49.1, S: 0.0379}},
		{1, models.LMS{L: 1, M: 53.7, S: 0.03614}},
		{2, models.LMS{L: 1, M: 57.1, S: 0.03508}},
		{3, models.LMS{L: 1, M: 59.8, S: 0.03428}},
		{4, models.LMS{L: 1, M: 62.1, S: 0.03362}},
		{5, models.LMS{L: 1, M: 64.0, S: 0.03309}},
		{6, models.LMS{L: 1, M: 65.7, S: 0.03264}},
		{7, models.LMS{L: 1, M: 67.3, S: 0.03228}},
		{8, models.LMS{L: 1, M: 68.7, S: 0.03199}},
		{9, models.LMS{L: 1, M: 70.1, S: 0.03177}},
		{10, models.LMS{L: 1, M: 71.5, S: 0.03162}},
		{11, models.LMS{L: 1, M: 72.8, S: 0.03154}},
		{12, models.LMS{L: 1, M: 74.0, S: 0.03153}},
		{18, models.LMS{L: 1, M: 80.7, S: 0.032}},
		{24, models.LMS{L: 1, M: 86.4, S: 0.033}},
	}
)

// tableFor selects the reference table. Anything that is not a girl is
// treated as a boy and anything that is not length as weight, matching the
// lookup being total; callers validate enums at the boundary.
func tableFor(sex models.Sex, kind models.MeasurementType) lmsTable {
	if kind == models.MeasurementLength {
		if sex == models.SexGirl {
			return girlsLength
		}
		return boysLength
	}
	if sex == models.SexGirl {
		return girlsWeight
	}
	return boysWeight
}

// lookup returns the tabulated or interpolated parameters for age
func (t lmsTable) lookup(age float64) models.LMS {
	first, last := t[0], t[len(t)-1]
	if age <= float64(first.age) {
		return first.params
	}
	if age >= float64(last.age) {
		return last.params
	}

	for i := 0; i < len(t)-1; i++ {
		lower, upper := t[i], t[i+1]
		if age == float64(lower.age) {
			return lower.params
		}
		if age > float64(lower.age) && age < float64(upper.age) {
			ratio := (age - float64(lower.age)) / float64(upper.age-lower.age)
			return models.LMS{
				L: lerp(lower.params.L, upper.params.L, ratio),
				M: lerp(lower.params.M, upper.params.M, ratio),
				S: lerp(lower.params.S, upper.params.S, ratio),
			}
		}
	}
	return last.params
}

func lerp(a, b, ratio float64) float64 {
	return a + ratio*(b-a)
}
