package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, s := range []string{"00:00", "08:00", "13:30", "23:59"} {
			ts, err := NewTimeStringFromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, ts.String())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, s := range []string{"", "8:00:00", "24:00", "12:60", "noon", "12-30"} {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input=%q", s)
		}
	})
}

func TestTimeStringMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("13:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+30, minutes)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	t.Run("WithinDay", func(t *testing.T) {
		result, err := ts.AddMinutes(60)
		require.NoError(t, err)
		assert.Equal(t, "11:00", result.String())

		result, err = ts.AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, "11:30", result.String())
	})

	t.Run("PastMidnight", func(t *testing.T) {
		late, err := NewTimeStringFromString("23:30")
		require.NoError(t, err)

		_, err = late.AddMinutes(60)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("Negative", func(t *testing.T) {
		result, err := ts.AddMinutes(-30)
		require.NoError(t, err)
		assert.Equal(t, "09:30", result.String())

		early, err := NewTimeStringFromString("00:10")
		require.NoError(t, err)
		_, err = early.AddMinutes(-30)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeStringOrdering(t *testing.T) {
	a, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	b, err := NewTimeStringFromString("14:00")
	require.NoError(t, err)

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeStringAt(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	at, err := ts.At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC), at)
}

func TestTimeStringJSON(t *testing.T) {
	ts, err := NewTimeStringFromString("08:00")
	require.NoError(t, err)

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"08:00"`, string(data))

	var decoded TimeString
	require.NoError(t, json.Unmarshal([]byte(`"16:00"`), &decoded))
	assert.Equal(t, "16:00", decoded.String())

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &decoded))
}

func TestTimeStringScan(t *testing.T) {
	t.Run("PostgresTimeWithSeconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, "10:00", ts.String())
	})

	t.Run("Bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("13:00:00")))
		assert.Equal(t, "13:00", ts.String())
	})

	t.Run("Nil", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeStringValue(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	var zero TimeString
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
