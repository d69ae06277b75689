package NepaliDate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochAnchor(t *testing.T) {
	ad, err := ToAD(2000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "1943-04-14", ad.Format("2006-01-02"))

	y, m, d, err := FromAD(time.Date(1943, time.April, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []int{2000, 1, 1}, []int{y, m, d})
}

func TestRoundTripAcrossRange(t *testing.T) {
	for _, date := range []struct{ y, m, d int }{
		{2000, 1, 1},
		{2000, 12, 31},
		{2046, 7, 15},
		{2080, 4, 1},
		{2080, 12, 30},
		{2090, 1, 1},
	} {
		ad, err := ToAD(date.y, date.m, date.d)
		require.NoError(t, err)
		y, m, d, err := FromAD(ad)
		require.NoError(t, err)
		assert.Equal(t, date.y, y)
		assert.Equal(t, date.m, m)
		assert.Equal(t, date.d, d)
	}
}

func TestConsecutiveDaysAreAdjacent(t *testing.T) {
	// Crossing a BS month boundary must advance the AD date by exactly one day.
	dim, err := DaysInMonth(2080, 3)
	require.NoError(t, err)

	last, err := ToAD(2080, 3, dim)
	require.NoError(t, err)
	first, err := ToAD(2080, 4, 1)
	require.NoError(t, err)

	assert.Equal(t, last.AddDate(0, 0, 1), first)
}

func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds(2080, 1)
	require.NoError(t, err)

	dim, _ := DaysInMonth(2080, 1)
	assert.Equal(t, dim-1, int(end.Sub(start).Hours()/24))
}

func TestOutOfRange(t *testing.T) {
	_, err := ToAD(1999, 1, 1)
	assert.Error(t, err)

	_, err = ToAD(2080, 13, 1)
	assert.Error(t, err)

	_, err = ToAD(2080, 1, 33)
	assert.Error(t, err)

	_, _, _, err = FromAD(time.Date(1940, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}
