package model

func flattenFeatures(features [][]float64) []float64 {
	if len(features) == 0 {
		return []float64{}
	}
	totalSize := len(features) * len(features[0])
	flattened := make([]float64, 0, totalSize)
	for _, feature := range features {
		flattened = append(flattened, feature...)
	}
	return flattened
}

func unflatten(flat []float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range rows {
		out[i] = append([]float64{}, flat[i*cols:(i+1)*cols]...)
	}
	return out
}

// appendBias copies every sample with a trailing constant 1 feature.
func appendBias(features [][]float64) [][]float64 {
	out := make([][]float64, len(features))
	for i, feature := range features {
		row := make([]float64, len(feature)+1)
		copy(row, feature)
		row[len(feature)] = 1.0
		out[i] = row
	}
	return out
}
