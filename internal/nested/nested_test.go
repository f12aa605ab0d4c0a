package nested

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensions(t *testing.T) {
	data := [][][]int{
		{{2, 3}, {4, 5}, {6, 7}},
		{{8, 9}, {0, 1}, {2, 3}},
		{{4, 5}, {6, 7}, {8, 9}},
		{{0, 1}, {2, 3}, {4, 5}},
	}
	shape, err := Dimensions(data)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, shape)
}

func TestDimensionsScalars(t *testing.T) {
	for _, v := range []any{"hi", 3, 4.5, []byte("ab"), time.Now()} {
		shape, err := Dimensions(v)
		require.NoError(t, err)
		assert.Empty(t, shape)
	}
}

func TestDimensionsEmpty(t *testing.T) {
	shape, err := Dimensions([]int{})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, shape)
}

func TestDimensionsIrregular(t *testing.T) {
	data := []any{
		[][]int{{2, 3}, {4, 5}, {6, 7}},
		[][]int{{8, 9}, {0, 1}, {2, 3}},
		[][]int{{4, 5}, {6, 7}},
		[][]int{{0, 1}, {2, 3}, {4, 5}},
	}
	_, err := Dimensions(data)
	var irr *IrregularityError
	require.ErrorAs(t, err, &irr)
	assert.Equal(t, 1, irr.Depth)
	assert.Equal(t, "data irregular in dimension 1", err.Error())
}

func TestFlipThreeD(t *testing.T) {
	three := make([][][]int, 5)
	for i := range three {
		three[i] = make([][]int, 5)
		for j := range three[i] {
			three[i][j] = make([]int, 5)
			for k := range three[i][j] {
				three[i][j][k] = i*100 + j*10 + k
			}
		}
	}
	flipped, err := Flip(three)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 5; k++ {
				assert.Equal(t, three[i][j][k], At(flipped, []int{k, j, i}),
					"index %d,%d,%d", i, j, k)
			}
		}
	}
}

func TestFlipFourD(t *testing.T) {
	four := make([][][][]int, 2)
	for i := range four {
		four[i] = make([][][]int, 3)
		for j := range four[i] {
			four[i][j] = make([][]int, 4)
			for k := range four[i][j] {
				four[i][j][k] = make([]int, 5)
				for l := range four[i][j][k] {
					four[i][j][k][l] = i*1000 + j*100 + k*10 + l
				}
			}
		}
	}
	flipped, err := Flip(four)
	require.NoError(t, err)
	shape, err := Dimensions(flipped)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3, 2}, shape)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 5; l++ {
					assert.Equal(t, four[i][j][k][l],
						At(flipped, []int{l, k, j, i}))
				}
			}
		}
	}
}

func TestFlipLowRankIdentity(t *testing.T) {
	flipped, err := Flip(1)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	oneD := []int{1, 2, 3, 4}
	flipped, err = Flip(oneD)
	require.NoError(t, err)
	assert.Equal(t, oneD, flipped)
}

func TestFlipInvolution(t *testing.T) {
	two := [][]int{{6, 7, 48, 81}, {61, 67, 90, 99}, {71, 96, 58, 85},
		{35, 31, 71, 73}, {77, 41, 71, 92}, {74, 89, 94, 64},
		{64, 30, 66, 94}}
	once, err := Flip(two)
	require.NoError(t, err)
	twice, err := Flip(once)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, two[i][j], At(once, []int{j, i}))
			assert.Equal(t, two[i][j], At(twice, []int{i, j}))
		}
	}
}

func TestFlipIrregular(t *testing.T) {
	_, err := Flip([]any{[]int{1, 2, 3}, []int{1, 2}})
	var irr *IrregularityError
	require.ErrorAs(t, err, &irr)
	assert.Equal(t, 1, irr.Depth)
}
