package track

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a loaded track.
type Summary struct {
	Samples          int
	Start            time.Time
	End              time.Time
	Duration         time.Duration
	MaxDepthMM       float64
	MeanDepthMM      float64
	MinTemperatureC  float64
	MeanTemperatureC float64
}

// Summarize computes basic statistics over samples in any order.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	depths := make([]float64, len(samples))
	temps := make([]float64, len(samples))
	first, last := samples[0].Timestamp, samples[0].Timestamp
	for i, s := range samples {
		depths[i] = float64(s.DepthMM)
		temps[i] = s.TemperatureC
		first = min(first, s.Timestamp)
		last = max(last, s.Timestamp)
	}
	start := time.Unix(first, 0).UTC()
	end := time.Unix(last, 0).UTC()
	return Summary{
		Samples:          len(samples),
		Start:            start,
		End:              end,
		Duration:         end.Sub(start),
		MaxDepthMM:       floats.Max(depths),
		MeanDepthMM:      stat.Mean(depths, nil),
		MinTemperatureC:  floats.Min(temps),
		MeanTemperatureC: stat.Mean(temps, nil),
	}
}
