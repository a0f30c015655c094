package forecast

import "math"

// PredictNextTemp projects the next day's average temperature by fitting an
// ordinary least-squares line over the daily averages and evaluating it one
// step beyond the known range. It is a deliberately minimal extrapolation,
// not a forecast model. The second return value is false when fewer than
// two aggregates are available.
func PredictNextTemp(daily []DailyAggregate) (float64, bool) {
	if len(daily) < 2 {
		return 0, false
	}

	n := float64(len(daily))
	var sumX, sumY, sumXY, sumXX float64
	for i, d := range daily {
		x := float64(i)
		sumX += x
		sumY += d.TempAvg
		sumXY += x * d.TempAvg
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, false
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	pred := slope*n + intercept
	return math.Round(pred*100) / 100, true
}
