package stats

import "math"

// SeriesSummary aggregates one numeric series sampled across generations.
type SeriesSummary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// Summarize computes min, max, mean and population standard deviation.
// An empty series yields the zero summary.
func Summarize(values []float64) SeriesSummary {
	if len(values) == 0 {
		return SeriesSummary{}
	}

	summary := SeriesSummary{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}
	sum := 0.0
	for _, value := range values {
		if value < summary.Min {
			summary.Min = value
		}
		if value > summary.Max {
			summary.Max = value
		}
		sum += value
	}
	summary.Mean = sum / float64(len(values))

	variance := 0.0
	for _, value := range values {
		delta := value - summary.Mean
		variance += delta * delta
	}
	summary.Std = math.Sqrt(variance / float64(len(values)))
	return summary
}
