package session_test

import (
	"testing"
	"time"

	"go-presence/internal/capture"
	"go-presence/internal/location"
	"go-presence/internal/session"
	sessionerrors "go-presence/internal/session/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmClock(t *testing.T) {
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	clockIn := day.Add(9 * time.Hour)
	clockOut := day.Add(18*time.Hour + 30*time.Minute + 59*time.Second)

	s := session.New("user-1", session.DayOf(day))
	s.Photo = &capture.CapturedPhoto{ImageBase64: "aW1n", Action: capture.ClockIn}
	s.LastVerdict = &location.Verdict{DistanceMeters: 12, WithinRange: true}
	assert.Equal(t, capture.ClockIn, session.NextAction(s))

	t.Run("first confirmation clocks in", func(t *testing.T) {
		in, err := session.ConfirmClock(s, clockIn)
		require.NoError(t, err)
		require.NotNil(t, in.ClockInTime)
		assert.Equal(t, clockIn, *in.ClockInTime)
		assert.Nil(t, in.ClockOutTime)
		assert.Equal(t, "0h 0m", in.WorkedDuration)
		assert.Nil(t, in.Photo)
		assert.Equal(t, capture.ClockOut, session.NextAction(in))
		// input value is untouched
		assert.Nil(t, s.ClockInTime)
		assert.NotNil(t, s.Photo)

		t.Run("second confirmation clocks out", func(t *testing.T) {
			in.Photo = &capture.CapturedPhoto{ImageBase64: "aW1n", Action: capture.ClockOut}
			out, err := session.ConfirmClock(in, clockOut)
			require.NoError(t, err)
			require.NotNil(t, out.ClockOutTime)
			assert.Equal(t, "9h 30m", out.WorkedDuration)
			assert.True(t, out.Completed())
			assert.Nil(t, out.Photo)

			t.Run("third confirmation is rejected", func(t *testing.T) {
				_, err := session.ConfirmClock(out, clockOut.Add(time.Hour))
				assert.ErrorIs(t, err, sessionerrors.ErrAlreadyClockedOut)
			})
		})
	})

	t.Run("clock-out before clock-in is flagged", func(t *testing.T) {
		in, err := session.ConfirmClock(s, clockIn)
		require.NoError(t, err)

		_, err = session.ConfirmClock(in, clockIn.Add(-time.Minute))
		assert.ErrorIs(t, err, sessionerrors.ErrNegativeDuration)
	})
}

func TestWorkedDurationFromClock(t *testing.T) {
	tests := []struct {
		in, out string
		want    string
		wantErr error
	}{
		{in: "09:00:00 AM", out: "06:00:00 PM", want: "9h 0m"},
		{in: "12:00:00 AM", out: "12:30:00 AM", want: "0h 30m"},
		{in: "11:45:10 AM", out: "12:15:09 PM", want: "0h 29m"},
		{in: "10:00:00 PM", out: "06:00:00 AM", wantErr: sessionerrors.ErrNegativeDuration},
		{in: "9am", out: "06:00:00 PM", wantErr: sessionerrors.ErrInvalidClockTime},
	}

	for _, tt := range tests {
		t.Run(tt.in+"-"+tt.out, func(t *testing.T) {
			got, err := session.WorkedDurationFromClock(tt.in, tt.out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkedDuration_Missing(t *testing.T) {
	now := time.Now()
	got, err := session.WorkedDuration(&now, nil)
	assert.NoError(t, err)
	assert.Equal(t, "0h 0m", got)
}

func TestFormatClockTime(t *testing.T) {
	ts := time.Date(2026, 1, 1, 18, 5, 7, 0, time.UTC)
	assert.Equal(t, "06:05:07 PM", session.FormatClockTime(ts))
}
