package analytics

import (
	"github.com/montanaflynn/stats"

	"surveypulse/internal/model"
)

// Rating summarizes rating answers
func Rating(answers []any) model.Summary {
	nums := Numbers(answers)
	if len(nums) == 0 {
		return model.MarkerNoValidRatings
	}
	return scalar(nums)
}

// Numeric summarizes number answers; it adds the value range to the rating stats
func Numeric(answers []any) model.Summary {
	nums := Numbers(answers)
	if len(nums) == 0 {
		return model.MarkerNoValidNumbers
	}
	s := scalar(nums)
	return model.NumericSummary{
		RatingSummary: s,
		Range:         s.Max - s.Min,
	}
}

func scalar(nums []float64) model.RatingSummary {
	data := stats.Float64Data(nums)
	// Errors only arise on empty input, which callers rule out.
	mean, _ := data.Mean()
	median, _ := data.Median()
	lo, _ := data.Min()
	hi, _ := data.Max()

	dist := make(map[string]int, len(nums))
	for _, n := range nums {
		dist[FormatNumber(n)]++
	}

	return model.RatingSummary{
		Average:        Round(mean, 2),
		Median:         Round(median, 2),
		Min:            lo,
		Max:            hi,
		Distribution:   dist,
		ValidResponses: len(nums),
	}
}
