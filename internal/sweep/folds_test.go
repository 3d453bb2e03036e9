//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package sweep

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignBlock(t *testing.T) {
	ff, err := Assign(130, 5, STRATEGYBLOCK)
	assert.NoError(t, err)
	assert.Len(t, ff, 130)

	// contiguous runs of 26
	assert.Equal(t, 0, ff[0])
	assert.Equal(t, 0, ff[25])
	assert.Equal(t, 1, ff[26])
	assert.Equal(t, 4, ff[129])

	// block assignment never decreases along the corpus
	for i := 1; i < len(ff); i++ {
		assert.GreaterOrEqual(t, ff[i], ff[i-1])
	}
}

func TestAssignInterleave(t *testing.T) {
	ff, err := Assign(130, 5, STRATEGYINTERLEAVE)
	assert.NoError(t, err)
	assert.Equal(t, 0, ff[0])
	assert.Equal(t, 1, ff[1])
	assert.Equal(t, 4, ff[4])
	assert.Equal(t, 0, ff[5])
}

func TestAssignIsDeterministic(t *testing.T) {
	a, err := Assign(130, 5, STRATEGYBLOCK)
	assert.NoError(t, err)
	b, err := Assign(130, 5, STRATEGYBLOCK)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssignBalance(t *testing.T) {
	for _, strategy := range []string{STRATEGYBLOCK, STRATEGYINTERLEAVE} {
		ff, err := Assign(130, 5, strategy)
		assert.NoError(t, err)

		sizes := make(map[int]int)
		for _, f := range ff {
			sizes[f]++
		}
		assert.Len(t, sizes, 5)
		for f := 0; f < 5; f++ {
			assert.Equal(t, 26, sizes[f], strategy)
		}
	}
}

func TestAssignErrors(t *testing.T) {
	_, err := Assign(130, 1, STRATEGYBLOCK)
	assert.Error(t, err)

	_, err = Assign(3, 5, STRATEGYBLOCK)
	assert.Error(t, err)

	_, err = Assign(130, 5, "bogus")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	ff, err := Assign(130, 5, STRATEGYBLOCK)
	assert.NoError(t, err)

	for fold := 0; fold < 5; fold++ {
		train, test := Split(ff, fold)
		assert.Len(t, test, 26)
		assert.Len(t, train, 104)

		// disjoint...
		seen := make(map[int]bool)
		for _, i := range train {
			seen[i] = true
		}
		for _, i := range test {
			assert.False(t, seen[i])
			seen[i] = true
		}

		// ...and together they cover every document exactly once
		all := append(append([]int(nil), train...), test...)
		sort.Ints(all)
		for i := 0; i < 130; i++ {
			assert.Equal(t, i, all[i])
		}
	}
}
