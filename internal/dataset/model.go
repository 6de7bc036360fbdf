package dataset

import (
	"fmt"
	"strings"
)

// ModelType identifies how a posteriors file lays out each skill.
type ModelType string

const (
	// Bayesian files carry S probabilities per skill.
	Bayesian ModelType = "bayesian"
	// Credal files carry S lower bounds followed by S upper bounds per skill.
	Credal ModelType = "credal"
)

// ErrInvalidModelType is returned for any model type other than bayesian or
// credal.
type ErrInvalidModelType struct {
	Value string
}

func (e *ErrInvalidModelType) Error() string {
	return fmt.Sprintf("invalid model type %q: only bayesian or credal models are supported", e.Value)
}

// ParseModelType validates s. Matching is case-insensitive.
func ParseModelType(s string) (ModelType, error) {
	switch ModelType(strings.ToLower(strings.TrimSpace(s))) {
	case Bayesian:
		return Bayesian, nil
	case Credal:
		return Credal, nil
	default:
		return "", &ErrInvalidModelType{Value: s}
	}
}

// Bounds lists the posterior variants a model of this type produces.
func (m ModelType) Bounds() []Bound {
	if m == Credal {
		return []Bound{Lower, Upper}
	}
	return []Bound{Point}
}

// width is the number of values stored per skill per question.
func (m ModelType) width(states int) int {
	if m == Credal {
		return 2 * states
	}
	return states
}

// Bound selects which side of a credal interval a posterior represents.
type Bound string

const (
	Point Bound = ""
	Lower Bound = "lower"
	Upper Bound = "upper"
)

// Suffix returns the file-name suffix for b: empty for point estimates,
// ".lower" or ".upper" otherwise.
func (b Bound) Suffix() string {
	if b == Point {
		return ""
	}
	return "." + string(b)
}

func (b Bound) String() string {
	if b == Point {
		return "point"
	}
	return string(b)
}
