package timerange

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinutes(tt.in))
		})
	}
}

func TestInRange(t *testing.T) {
	start := types.TimeString("09:00")
	end := types.TimeString("18:00")

	tests := []struct {
		name string
		t    types.TimeString
		want bool
	}{
		{"inside", "12:00", true},
		{"at start", "09:00", true},
		{"at end is excluded", "18:00", false},
		{"before start", "08:59", false},
		{"after end", "18:01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.t, start, end))
		})
	}
}

func TestLaterOfEarlierOf(t *testing.T) {
	a := types.TimeString("09:00")
	b := types.TimeString("10:00")

	assert.Equal(t, b, LaterOf(a, b))
	assert.Equal(t, b, LaterOf(b, a))
	assert.Equal(t, a, EarlierOf(a, b))
	assert.Equal(t, a, EarlierOf(b, a))

	// При равных временах возвращается первый аргумент
	assert.Equal(t, a, LaterOf(a, a))
	assert.Equal(t, a, EarlierOf(a, a))
}

func TestIsNonEmptyRange(t *testing.T) {
	assert.True(t, IsNonEmptyRange("09:00", "09:01"))
	assert.False(t, IsNonEmptyRange("09:00", "09:00"))
	assert.False(t, IsNonEmptyRange("10:00", "09:00"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd types.TimeString
		want                       bool
	}{
		{"full overlap", "09:00", "18:00", "10:00", "11:00", true},
		{"partial overlap at start", "09:00", "10:00", "09:30", "11:00", true},
		{"partial overlap at end", "10:00", "12:00", "09:00", "10:30", true},
		{"identical intervals", "10:00", "11:00", "10:00", "11:00", true},
		{"back to back do not overlap", "09:00", "10:00", "10:00", "11:00", false},
		{"back to back reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}
