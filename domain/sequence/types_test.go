package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqentropy/internal/errors"
)

func TestParseTokens(t *testing.T) {
	seq, err := ParseTokens("0 1,2;\t-3\n 4")
	require.NoError(t, err)
	assert.Equal(t, Sequence{0, 1, 2, -3, 4}, seq)

	seq, err = ParseTokens("   ")
	require.NoError(t, err)
	assert.Empty(t, seq)

	_, err = ParseTokens("0 1 x")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestFromStringsSkipsBlankCells(t *testing.T) {
	seq, err := FromStrings([]string{"3", " ", "1", ""})
	require.NoError(t, err)
	assert.Equal(t, Sequence{3, 1}, seq)

	_, err = FromStrings([]string{"3", "1.5"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestDistinctAndRelabel(t *testing.T) {
	s := Sequence{5, 5, 7, 9, 7}
	assert.Equal(t, 3, s.Distinct())

	r := s.Relabel(map[int]int{5: 0, 7: 1})
	assert.Equal(t, Sequence{0, 0, 1, 9, 1}, r)
	assert.Equal(t, Sequence{5, 5, 7, 9, 7}, s, "relabel must not mutate its receiver")
}

func TestFactorizationValidate(t *testing.T) {
	ok := Factorization{{0, 1, -1}, {1, 2, 0}, {3, 1, -1}}
	assert.NoError(t, ok.Validate(4))
	assert.Equal(t, []int{0, 1, 3}, ok.Boundaries())
	assert.Equal(t, []int{1, 2, 1}, ok.Lengths())

	tests := []struct {
		name string
		p    Factorization
		n    int
	}{
		{"gap", Factorization{{0, 1, -1}, {2, 1, -1}}, 3},
		{"overlap", Factorization{{0, 2, -1}, {1, 1, -1}}, 3},
		{"short", Factorization{{0, 1, -1}}, 2},
		{"empty factor", Factorization{{0, 0, -1}, {0, 1, -1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.p.Validate(tt.n))
		})
	}

	assert.NoError(t, Factorization{}.Validate(0))
}

func TestVerifySources(t *testing.T) {
	s := Sequence{0, 1, 0, 1}
	whole := func(f Factor) int { return f.Length }

	good := Factorization{{0, 1, -1}, {1, 1, -1}, {2, 2, 0}}
	assert.NoError(t, good.VerifySources(s, whole))

	bad := Factorization{{0, 1, -1}, {1, 1, -1}, {2, 2, 1}}
	assert.Error(t, bad.VerifySources(s, whole))
}
