package sequence

import (
	"encoding/json"
	"math"
)

// Complexity is the outcome of one estimator call over one sequence.
// Normalized is NaN when N <= 1.
type Complexity struct {
	Estimator  string        `json:"estimator"`
	N          int           `json:"n"`
	Count      int           `json:"count"`
	Normalized float64       `json:"normalized"`
	Factors    Factorization `json:"factors,omitempty"`
}

// HasNormalized reports whether Normalized carries a finite value
func (c Complexity) HasNormalized() bool {
	return !math.IsNaN(c.Normalized) && !math.IsInf(c.Normalized, 0)
}

// MarshalJSON writes a non-finite Normalized as null, which encoding/json
// would otherwise reject.
func (c Complexity) MarshalJSON() ([]byte, error) {
	type alias Complexity
	out := struct {
		alias
		Normalized *float64 `json:"normalized"`
	}{alias: alias(c)}
	if c.HasNormalized() {
		v := c.Normalized
		out.Normalized = &v
	}
	return json.Marshal(out)
}
