package dataset

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Posterior holds predicted state distributions with shape
// (students, questions, skills, states).
type Posterior struct {
	t    *tensor.Dense
	data []float64

	Students  int
	Questions int
	Skills    int
	States    int
}

// NewPosterior wraps data, laid out row-major as
// (students, questions, skills, states).
func NewPosterior(data []float64, students, questions, skills, states int) (*Posterior, error) {
	if students <= 0 || questions <= 0 || skills <= 0 || states <= 0 {
		return nil, fmt.Errorf("posterior: non-positive shape (%d,%d,%d,%d)", students, questions, skills, states)
	}
	if want := students * questions * skills * states; len(data) != want {
		return nil, fmt.Errorf("posterior: %d values for shape (%d,%d,%d,%d), want %d",
			len(data), students, questions, skills, states, want)
	}

	t := tensor.New(
		tensor.WithShape(students, questions, skills, states),
		tensor.WithBacking(data),
	)
	return &Posterior{
		t:         t,
		data:      data,
		Students:  students,
		Questions: questions,
		Skills:    skills,
		States:    states,
	}, nil
}

// Dist returns the state distribution of student i, question j, skill k.
// The slice aliases the posterior's storage.
func (p *Posterior) Dist(i, j, k int) []float64 {
	off := ((i*p.Questions+j)*p.Skills + k) * p.States
	return p.data[off : off+p.States : off+p.States]
}

// AtQuestion returns the (students, skills, states) distributions after
// question j.
func (p *Posterior) AtQuestion(j int) [][][]float64 {
	out := make([][][]float64, p.Students)
	for i := range out {
		out[i] = make([][]float64, p.Skills)
		for k := range out[i] {
			out[i][k] = p.Dist(i, j, k)
		}
	}
	return out
}

// Final returns the distributions after the last question.
func (p *Posterior) Final() [][][]float64 {
	return p.AtQuestion(p.Questions - 1)
}

// Predictions returns the argmax state for every (student, question, skill).
// Ties resolve to the lowest state.
func (p *Posterior) Predictions() ([][][]int, error) {
	am, err := p.t.Argmax(3)
	if err != nil {
		return nil, fmt.Errorf("argmax over states: %w", err)
	}
	flat, ok := am.Data().([]int)
	if !ok {
		return nil, fmt.Errorf("argmax over states: unexpected backing %T", am.Data())
	}

	out := make([][][]int, p.Students)
	for i := range out {
		out[i] = make([][]int, p.Questions)
		for j := range out[i] {
			off := (i*p.Questions + j) * p.Skills
			out[i][j] = flat[off : off+p.Skills : off+p.Skills]
		}
	}
	return out, nil
}

// splitCredal separates per-skill [lower..., upper...] blocks of raw, shaped
// (students, questions, skills, 2*states), into two posteriors.
func splitCredal(raw []float64, students, questions, skills, states int) (lower, upper *Posterior, err error) {
	n := students * questions * skills
	lo := make([]float64, 0, n*states)
	hi := make([]float64, 0, n*states)
	for c := 0; c < n; c++ {
		block := raw[c*2*states : (c+1)*2*states]
		lo = append(lo, block[:states]...)
		hi = append(hi, block[states:]...)
	}

	if lower, err = NewPosterior(lo, students, questions, skills, states); err != nil {
		return nil, nil, err
	}
	if upper, err = NewPosterior(hi, students, questions, skills, states); err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}
