package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(1))
	assert.Equal(t, 28, DaysInMonth(2))
	assert.Equal(t, 31, DaysInMonth(3))
	assert.Equal(t, 30, DaysInMonth(4))
	assert.Equal(t, 30, DaysInMonth(6))
	assert.Equal(t, 31, DaysInMonth(8))
	assert.Equal(t, 30, DaysInMonth(9))
	assert.Equal(t, 30, DaysInMonth(11))
	assert.Equal(t, 31, DaysInMonth(12))
}

func TestHoursInYear(t *testing.T) {
	// 365 days, no leap years.
	assert.Equal(t, 8760, HoursInYear())
}

func TestNextHourBoundaries(t *testing.T) {
	y, m, d, h, ok := NextHour(1, 1, 1, 22)
	require.True(t, ok)
	assert.Equal(t, []int{1, 1, 1, 23}, []int{y, m, d, h})

	// Day boundary.
	y, m, d, h, ok = NextHour(1, 1, 1, 23)
	require.True(t, ok)
	assert.Equal(t, []int{1, 1, 2, 0}, []int{y, m, d, h})

	// Month boundary, February end.
	y, m, d, h, ok = NextHour(3, 2, 28, 23)
	require.True(t, ok)
	assert.Equal(t, []int{3, 3, 1, 0}, []int{y, m, d, h})

	// Year boundary.
	y, m, d, h, ok = NextHour(4, 12, 31, 23)
	require.True(t, ok)
	assert.Equal(t, []int{5, 1, 1, 0}, []int{y, m, d, h})

	// End of horizon.
	_, _, _, _, ok = NextHour(Years, 12, 31, 23)
	assert.False(t, ok)
}

func TestPrevHourBoundaries(t *testing.T) {
	y, m, d, h, ok := PrevHour(1, 1, 2, 0)
	require.True(t, ok)
	assert.Equal(t, []int{1, 1, 1, 23}, []int{y, m, d, h})

	y, m, d, h, ok = PrevHour(3, 3, 1, 0)
	require.True(t, ok)
	assert.Equal(t, []int{3, 2, 28, 23}, []int{y, m, d, h})

	y, m, d, h, ok = PrevHour(5, 1, 1, 0)
	require.True(t, ok)
	assert.Equal(t, []int{4, 12, 31, 23}, []int{y, m, d, h})

	_, _, _, _, ok = PrevHour(1, 1, 1, 0)
	assert.False(t, ok)
}

func TestNextPrevRoundTrip(t *testing.T) {
	coords := [][4]int{{1, 1, 1, 0}, {2, 2, 28, 23}, {6, 6, 30, 5}, {12, 12, 31, 22}}
	for _, c := range coords {
		y, m, d, h, ok := NextHour(c[0], c[1], c[2], c[3])
		require.True(t, ok)
		py, pm, pd, ph, ok := PrevHour(y, m, d, h)
		require.True(t, ok)
		assert.Equal(t, c, [4]int{py, pm, pd, ph})
	}
}

func TestCellIndexDistinct(t *testing.T) {
	seen := make(map[int]struct{})
	for y := 1; y <= Years; y++ {
		for m := 1; m <= MonthsPerYear; m++ {
			for d := 1; d <= DaysInMonth(m); d++ {
				for h := 0; h < HoursPerDay; h++ {
					idx := CellIndex(y, m, d, h)
					require.GreaterOrEqual(t, idx, 0)
					require.Less(t, idx, CellsPerSource)
					_, dup := seen[idx]
					require.False(t, dup, "duplicate index at y%d m%d d%d h%d", y, m, d, h)
					seen[idx] = struct{}{}
				}
			}
		}
	}
}
