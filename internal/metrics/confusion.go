package metrics

// ConfusionMatrix counts (observed, predicted) label pairs. Rows index the
// observed label, columns the predicted label.
type ConfusionMatrix struct {
	Labels int
	Counts [][]int
}

// NewConfusionMatrix tallies observed against predicted over labels
// 0..labels-1.
func NewConfusionMatrix(observed, predicted []int, labels int) (*ConfusionMatrix, error) {
	if labels <= 0 {
		return nil, &ErrLabelOutOfRange{Label: labels, Labels: labels}
	}
	if len(predicted) != len(observed) {
		return nil, &ErrShapeMismatch{Op: "confusion matrix", Want: len(observed), Got: len(predicted)}
	}

	counts := make([][]int, labels)
	for i := range counts {
		counts[i] = make([]int, labels)
	}
	for i := range observed {
		o, p := observed[i], predicted[i]
		if o < 0 || o >= labels {
			return nil, &ErrLabelOutOfRange{Label: o, Labels: labels}
		}
		if p < 0 || p >= labels {
			return nil, &ErrLabelOutOfRange{Label: p, Labels: labels}
		}
		counts[o][p]++
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// Max returns the largest cell count.
func (m *ConfusionMatrix) Max() int {
	var top int
	for _, row := range m.Counts {
		for _, c := range row {
			if c > top {
				top = c
			}
		}
	}
	return top
}

func (m *ConfusionMatrix) rowSum(i int) int {
	var s int
	for _, c := range m.Counts[i] {
		s += c
	}
	return s
}

func (m *ConfusionMatrix) colSum(j int) int {
	var s int
	for i := range m.Counts {
		s += m.Counts[i][j]
	}
	return s
}

// ClassReport holds per-class scores indexed by label.
type ClassReport struct {
	Accuracy  []float64
	Precision []float64
	Recall    []float64
	F1        []float64
}

// Report computes per-class accuracy (row-normalised diagonal), precision,
// recall and F1. A zero denominator yields 0 for that class.
func (m *ConfusionMatrix) Report() ClassReport {
	r := ClassReport{
		Accuracy:  make([]float64, m.Labels),
		Precision: make([]float64, m.Labels),
		Recall:    make([]float64, m.Labels),
		F1:        make([]float64, m.Labels),
	}
	for c := 0; c < m.Labels; c++ {
		tp := float64(m.Counts[c][c])
		row := float64(m.rowSum(c))
		col := float64(m.colSum(c))

		r.Precision[c] = safeDiv(tp, col)
		r.Recall[c] = safeDiv(tp, row)
		// Accuracy of a class is its recall; kept as a separate column.
		r.Accuracy[c] = r.Recall[c]
		r.F1[c] = f1(r.Precision[c], r.Recall[c])
	}
	return r
}

// Macro averages precision, recall and F1 over every label, including
// labels that never occur.
func (m *ConfusionMatrix) Macro() (precision, recall, f1Score float64) {
	r := m.Report()
	return Mean(r.Precision), Mean(r.Recall), Mean(r.F1)
}

func f1(p, r float64) float64 {
	return safeDiv(2*p*r, p+r)
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
