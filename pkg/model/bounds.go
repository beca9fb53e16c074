package model

import "math"

func BoundMaxIterations(v int) int {
	return int(math.Max(0, math.Min(100000, float64(v)))) // Default: 100
}

func BoundLearningRate(v float64) float64 {
	return math.Max(1e-6, math.Min(10, v)) // Default: 0.01
}

func BoundVarSmoothing(v float64) float64 {
	return math.Max(0, math.Min(1, v)) // Default: 1e-9
}

func BoundTrainRatio(v float64) float64 {
	return math.Max(0.1, math.Min(0.95, v)) // Default: 0.7
}

func BoundSeed(v int) int {
	return int(math.Max(0, float64(v)))
}
