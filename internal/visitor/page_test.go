package visitor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateEmpty(t *testing.T) {
	w := Paginate([]int{}, 1, 10)
	assert.Empty(t, w.Visible)
	assert.Equal(t, 1, w.TotalPages, "empty result is page 1 of 1")
	assert.Equal(t, 0, w.Total)
	assert.False(t, w.HasPrev())
	assert.False(t, w.HasNext())
}

func TestPaginateTwentyThree(t *testing.T) {
	items := seq(23)

	p1 := Paginate(items, 1, 10)
	p2 := Paginate(items, 2, 10)
	p3 := Paginate(items, 3, 10)

	assert.Len(t, p1.Visible, 10)
	assert.Len(t, p2.Visible, 10)
	assert.Len(t, p3.Visible, 3)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, []int{20, 21, 22}, p3.Visible)
	assert.True(t, p2.HasPrev())
	assert.True(t, p2.HasNext())
	assert.False(t, p3.HasNext())
}

func TestPaginateReconstructs(t *testing.T) {
	for n := 0; n <= 35; n++ {
		for size := 1; size <= 12; size++ {
			items := seq(n)
			first := Paginate(items, 1, size)
			require.GreaterOrEqual(t, first.TotalPages, 1)

			var joined []int
			for page := 1; page <= first.TotalPages; page++ {
				joined = append(joined, Paginate(items, page, size).Visible...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, items, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	items := seq(5)

	past := Paginate(items, 9, 2)
	assert.Empty(t, past.Visible)
	assert.Equal(t, 3, past.TotalPages)

	below := Paginate(items, 0, 2)
	assert.Equal(t, 1, below.Page)
	assert.Equal(t, []int{0, 1}, below.Visible)
}

func TestPaginateHugePage(t *testing.T) {
	w := Paginate(seq(3), math.MaxInt, 10)
	assert.Empty(t, w.Visible)
	assert.Equal(t, math.MaxInt, w.Page)
	assert.Equal(t, 1, w.TotalPages)
	assert.False(t, w.HasNext())

	big := Paginate(seq(3), 1, math.MaxInt)
	assert.Equal(t, []int{0, 1, 2}, big.Visible)
	assert.Equal(t, 1, big.TotalPages)
}

func TestPaginateDefaultSize(t *testing.T) {
	w := Paginate(seq(15), 1, 0)
	assert.Equal(t, DefaultPageSize, w.PageSize)
	assert.Len(t, w.Visible, DefaultPageSize)
}

func TestPaginateVisibleDoesNotAlias(t *testing.T) {
	items := seq(4)
	w := Paginate(items, 1, 2)
	_ = append(w.Visible, 99)
	assert.Equal(t, 2, items[2], "appending to a page must not overwrite the next page")
}
