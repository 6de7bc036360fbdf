package metrics

// Brier returns the multi-category Brier score of every row.
//
// targets is (rows x skills) holding the true state of each skill; probs is
// (rows x skills x states) holding the predicted distribution. For each
// skill the squared error against the one-hot target is summed over the
// states; the row score is the mean over skills halved, so it lies in [0,1]
// for proper distributions.
func Brier(targets [][]int, probs [][][]float64, states int) ([]float64, error) {
	if len(targets) == 0 {
		return nil, ErrEmptyInput
	}
	if len(probs) != len(targets) {
		return nil, &ErrShapeMismatch{Op: "brier rows", Want: len(targets), Got: len(probs)}
	}

	scores := make([]float64, len(targets))
	for i, row := range targets {
		if len(row) == 0 {
			return nil, ErrEmptyInput
		}
		if len(probs[i]) != len(row) {
			return nil, &ErrShapeMismatch{Op: "brier skills", Want: len(row), Got: len(probs[i])}
		}

		var sum float64
		for k, level := range row {
			if level < 0 || level >= states {
				return nil, &ErrLabelOutOfRange{Label: level, Labels: states}
			}
			dist := probs[i][k]
			if len(dist) != states {
				return nil, &ErrShapeMismatch{Op: "brier states", Want: states, Got: len(dist)}
			}
			for s, p := range dist {
				d := p
				if s == level {
					d = p - 1
				}
				sum += d * d
			}
		}
		scores[i] = sum / float64(len(row)) / 2
	}
	return scores, nil
}
