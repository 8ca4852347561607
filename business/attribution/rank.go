package attribution

import (
	"math"
	"sort"

	"liverRisk/domain"
	"liverRisk/pkg/mlmodel"
)

// Rank pairs contributions with names and raw values and orders them by
// descending magnitude. Equal magnitudes keep their input order. Values are
// rounded to 2 decimals and contributions to 4 for presentation only.
func Rank(names []string, original, contributions []float64) []domain.ShapContribution {
	order := make([]int, len(contributions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(contributions[order[a]]) > math.Abs(contributions[order[b]])
	})

	out := make([]domain.ShapContribution, len(order))
	for i, j := range order {
		c := contributions[j]
		impact := domain.ImpactNegative
		if c > 0 {
			impact = domain.ImpactPositive
		}
		out[i] = domain.ShapContribution{
			Feature:      names[j],
			Value:        mlmodel.Round(original[j], 2),
			Contribution: mlmodel.Round(c, 4),
			Impact:       impact,
		}
	}
	return out
}
