package analytics

import "surveypulse/internal/model"

// Choice summarizes multiple_choice and yes_no answers. Falsy answers are
// dropped; the rest are grouped by their trimmed display string.
func Choice(answers []any) model.Summary {
	counts := make(map[string]int)
	var order []string // first-seen order, for most_common ties
	total := 0
	for _, a := range answers {
		if !truthy(a) {
			continue
		}
		key := trimmed(a)
		if key == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
		total++
	}

	percentages := make(map[string]float64, len(counts))
	for k, v := range counts {
		percentages[k] = Round(float64(v)/float64(total)*100, 1)
	}

	var mostCommon *model.ChoiceCount
	for _, k := range order {
		if mostCommon == nil || counts[k] > mostCommon.Count {
			mostCommon = &model.ChoiceCount{Answer: k, Count: counts[k]}
		}
	}

	return model.ChoiceSummary{
		Responses:   counts,
		Percentages: percentages,
		MostCommon:  mostCommon,
	}
}
