package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := SeqConcat(slices.Values([]int{1, 2}), slices.Values([]int{}), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	// Early stop must not continue into later sequences.
	var got []int
	for v := range seq {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, got)
}

func TestSeqFilter(t *testing.T) {
	assert := assert.New(t)

	even := SeqFilter(slices.Values([]int{1, 2, 3, 4, 5, 6}), func(v int) bool { return v%2 == 0 })
	assert.Equal([]int{2, 4, 6}, slices.Collect(even))
}
