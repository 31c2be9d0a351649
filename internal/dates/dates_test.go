package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "05 JAN 2026", Format(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 DEC 2025", Format(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestMonthsAgoClampsDay(t *testing.T) {
	got := MonthsAgo(2)
	want := time.Now().AddDate(0, -2, 0)
	// AddDate overflows short months; MonthsAgo must never land in the
	// month after the target.
	assert.LessOrEqual(t, got.Month(), want.Month())
	assert.False(t, got.After(time.Now()))
}

func TestLastDay(t *testing.T) {
	assert.Equal(t, 29, lastDay(2024, time.February))
	assert.Equal(t, 28, lastDay(2025, time.February))
	assert.Equal(t, 30, lastDay(2025, time.April))
}
