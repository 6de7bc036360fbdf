package metrics

// Hamming returns the fraction of positions where observed and predicted
// differ (loss) and that fraction scaled back to a count (distance).
func Hamming(observed, predicted []int) (loss, distance float64, err error) {
	if len(observed) == 0 {
		return 0, 0, ErrEmptyInput
	}
	if len(predicted) != len(observed) {
		return 0, 0, &ErrShapeMismatch{Op: "hamming", Want: len(observed), Got: len(predicted)}
	}

	var diff int
	for i := range observed {
		if observed[i] != predicted[i] {
			diff++
		}
	}
	n := float64(len(observed))
	loss = float64(diff) / n
	return loss, loss * n, nil
}

// Accuracy is the fraction of positions where observed equals predicted.
func Accuracy(observed, predicted []int) (float64, error) {
	loss, _, err := Hamming(observed, predicted)
	if err != nil {
		return 0, err
	}
	return 1 - loss, nil
}

// ExactMatchRatio is the fraction of rows whose every label matches.
func ExactMatchRatio(observed, predicted [][]int) (float64, error) {
	if len(observed) == 0 {
		return 0, ErrEmptyInput
	}
	if len(predicted) != len(observed) {
		return 0, &ErrShapeMismatch{Op: "exact match rows", Want: len(observed), Got: len(predicted)}
	}

	var matched int
	for i := range observed {
		if len(predicted[i]) != len(observed[i]) {
			return 0, &ErrShapeMismatch{Op: "exact match labels", Want: len(observed[i]), Got: len(predicted[i])}
		}
		if equalRow(observed[i], predicted[i]) {
			matched++
		}
	}
	return float64(matched) / float64(len(observed)), nil
}

func equalRow(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
