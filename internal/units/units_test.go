package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightKg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"bare number is kilograms", "12.5", 12.5},
		{"explicit kg suffix", "12.5kg", 12.5},
		{"explicit kgs suffix", "3 kgs", 3},
		{"millilitres divided by 1000", "500ml", 0.5},
		{"litres map to kilograms", "2l", 2},
		{"ltr suffix", "1.5 ltr", 1.5},
		{"uppercase tolerated", "250ML", 0.25},
		{"garbage yields zero", "ten kilos", 0},
		{"negative yields zero", "-4", 0},
		{"empty yields zero", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeightKg(tt.in), 1e-9)
		})
	}
}

func TestMoney(t *testing.T) {
	assert.InDelta(t, 1234.56, Money("$1,234.56"), 1e-9)
	assert.InDelta(t, 80.5, Money(" 80.50 "), 1e-9)
	assert.InDelta(t, 0, Money("free"), 1e-9)
}

func TestInt(t *testing.T) {
	assert.Equal(t, 12, Int("12"))
	assert.Equal(t, 1200, Int("1,200"))
	assert.Equal(t, 0, Int("3.5"))
	assert.Equal(t, 0, Int("box two"))
}

func TestRounding(t *testing.T) {
	assert.InDelta(t, 1.23, Round2(1.2349), 1e-9)
	assert.InDelta(t, 1.235, Round3(1.23456), 1e-9)
	assert.InDelta(t, -1.24, Round2(-1.235), 1e-9)
}
