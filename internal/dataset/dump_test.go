package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDumpProbabilities(t *testing.T) {
	in := "student 0: {0.123,0.877} {{ignored}} {0.456,0.544}\n\n"

	got, err := ParseDump(strings.NewReader(in), DumpProbabilities)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDeltaSlice(t, []float64{0.12, 0.88}, got[0][0], 1e-12)
	assert.InDeltaSlice(t, []float64{0.46, 0.54}, got[0][1], 1e-12)
}

func TestParseDumpProfiles(t *testing.T) {
	in := "{1,0,2} {9,9}\n{0,0,1}\n"

	got, err := ParseDump(strings.NewReader(in), DumpProfiles)
	require.NoError(t, err)
	assert.Equal(t, [][][]float64{{{1, 0, 2}}, {{0, 0, 1}}}, got)
}

func TestParseDumpErrors(t *testing.T) {
	_, err := ParseDump(strings.NewReader("no groups here\n"), DumpProfiles)
	assert.Error(t, err)

	_, err = ParseDump(strings.NewReader("{a,b}\n"), DumpProfiles)
	assert.Error(t, err)

	_, err = ParseDumpKind("histogram")
	assert.Error(t, err)

	k, err := ParseDumpKind("Profiles")
	require.NoError(t, err)
	assert.Equal(t, DumpProfiles, k)
}
