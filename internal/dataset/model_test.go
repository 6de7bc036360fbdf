package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelType(t *testing.T) {
	tests := []struct {
		in   string
		want ModelType
	}{
		{"bayesian", Bayesian},
		{"Credal", Credal},
		{" credal ", Credal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModelType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModelTypeInvalid(t *testing.T) {
	_, err := ParseModelType("frequentist")
	var invalid *ErrInvalidModelType
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "frequentist", invalid.Value)
	assert.Contains(t, err.Error(), "only bayesian or credal")
}

func TestBounds(t *testing.T) {
	assert.Equal(t, []Bound{Point}, Bayesian.Bounds())
	assert.Equal(t, []Bound{Lower, Upper}, Credal.Bounds())

	assert.Equal(t, "", Point.Suffix())
	assert.Equal(t, ".lower", Lower.Suffix())
	assert.Equal(t, "upper", Upper.String())
	assert.Equal(t, "point", Point.String())
}
