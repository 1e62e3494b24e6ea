package batch

import (
	"github.com/montanaflynn/stats"
)

// Summary describes the distribution of normalized complexity for one
// estimator across a batch. Sequences with n <= 1 or errors are counted but
// excluded from the statistics.
type Summary struct {
	Estimator string  `json:"estimator"`
	Sequences int     `json:"sequences"`
	Measured  int     `json:"measured"`
	Failed    int     `json:"failed"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Median    float64 `json:"median"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	P25       float64 `json:"p25"`
	P75       float64 `json:"p75"`
}

// Summarize builds one Summary per estimator name, in the given order
func Summarize(items []Item, estimators []string) []Summary {
	out := make([]Summary, 0, len(estimators))
	for _, name := range estimators {
		s := Summary{Estimator: name, Sequences: len(items)}
		var data stats.Float64Data
		for _, it := range items {
			if it.Error != "" {
				s.Failed++
				continue
			}
			if res, ok := it.Results[name]; ok && res.HasNormalized() {
				data = append(data, res.Normalized)
			}
		}
		s.Measured = len(data)
		if len(data) > 0 {
			// Errors only signal empty input, which is ruled out above.
			s.Mean, _ = stats.Mean(data)
			s.StdDev, _ = stats.StandardDeviation(data)
			s.Median, _ = stats.Median(data)
			s.Min, _ = stats.Min(data)
			s.Max, _ = stats.Max(data)
			s.P25, _ = stats.PercentileNearestRank(data, 25)
			s.P75, _ = stats.PercentileNearestRank(data, 75)
		}
		out = append(out, s)
	}
	return out
}
