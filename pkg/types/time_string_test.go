package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{"valid morning", "09:00", "09:00", false},
		{"valid midnight", "00:00", "00:00", false},
		{"valid end of day", "23:59", "23:59", false},
		{"missing leading zero", "9:00", "", true},
		{"with seconds", "09:00:00", "", true},
		{"out of range hour", "24:00", "", true},
		{"out of range minute", "09:60", "", true},
		{"garbage", "abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 1, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("14:30"), NewTimeString(moment))
}

func TestScan(t *testing.T) {
	t.Run("postgres TIME with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:30:00"))
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("18:00:00")))
		assert.Equal(t, TimeString("18:00"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("09:15"), ts)
	})

	t.Run("nil", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 540, TimeString("09:00").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
	assert.Equal(t, 0, TimeString("garbage").Minutes())
}

func TestComparisons(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.False(t, a.IsBefore(a))

	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(b))
	assert.False(t, a.IsAfter(a))
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{"within hour", "09:00", 30, "09:30", false},
		{"crosses hour", "09:45", 30, "10:15", false},
		{"zero", "09:00", 0, "09:00", false},
		{"negative shift", "09:00", -30, "08:30", false},
		{"crosses midnight", "23:45", 30, "", true},
		{"exactly midnight", "23:00", 60, "", true},
		{"below zero", "00:10", -20, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.AddMinutes(tt.add)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, TimeString("09:00").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("25:00").Validate())
}
