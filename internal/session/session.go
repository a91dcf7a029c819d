package session

import (
	"fmt"
	"time"

	"go-presence/internal/capture"
	"go-presence/internal/location"
	sessionerrors "go-presence/internal/session/errors"
)

const (
	DayLayout   = "2006-01-02"
	clockLayout = "03:04:05 PM"
	zeroWorked  = "0h 0m"
)

// Session is one user's attendance state for one day. It is a value: every
// mutation returns a new Session and the caller decides where to keep it.
type Session struct {
	UserID         string                 `json:"user_id"`
	Day            string                 `json:"day"`
	ClockInTime    *time.Time             `json:"clock_in_time,omitempty"`
	ClockOutTime   *time.Time             `json:"clock_out_time,omitempty"`
	WorkedDuration string                 `json:"worked_duration"`
	LastVerdict    *location.Verdict      `json:"last_verdict,omitempty"`
	Photo          *capture.CapturedPhoto `json:"-"`
}

func New(userID string, day string) Session {
	return Session{UserID: userID, Day: day, WorkedDuration: zeroWorked}
}

func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// NextAction is the clock action the next confirmation will record.
func NextAction(s Session) capture.Action {
	if s.ClockInTime == nil {
		return capture.ClockIn
	}
	return capture.ClockOut
}

func (s Session) Completed() bool {
	return s.ClockInTime != nil && s.ClockOutTime != nil
}

// ConfirmClock records a clock-in, or a clock-out when a clock-in exists.
// The photo reference is always dropped from the returned session.
func ConfirmClock(s Session, now time.Time) (Session, error) {
	next := s
	next.Photo = nil

	switch {
	case s.ClockInTime == nil:
		t := now
		next.ClockInTime = &t
		next.WorkedDuration = zeroWorked
	case s.ClockOutTime == nil:
		worked, err := WorkedDuration(s.ClockInTime, &now)
		if err != nil {
			return s, err
		}
		t := now
		next.ClockOutTime = &t
		next.WorkedDuration = worked
	default:
		return s, sessionerrors.ErrAlreadyClockedOut
	}

	return next, nil
}

// WorkedDuration formats out-in as "Hh Mm" in whole minutes. It is "0h 0m" while either is missing.
func WorkedDuration(in, out *time.Time) (string, error) {
	if in == nil || out == nil {
		return zeroWorked, nil
	}
	diff := out.Sub(*in)
	if diff < 0 {
		return "", sessionerrors.ErrNegativeDuration
	}
	return FormatDuration(diff), nil
}

func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// ParseClockTime parses a 12-hour "hh:mm:ss AM" wall clock reading on a fixed reference day.
func ParseClockTime(v string) (time.Time, error) {
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		return time.Time{}, sessionerrors.ErrInvalidClockTime.WithCause(err)
	}
	return t, nil
}

func FormatClockTime(t time.Time) string {
	return t.Format(clockLayout)
}

// WorkedDurationFromClock computes the worked duration between two same-day 12-hour clock readings.
func WorkedDurationFromClock(clockIn, clockOut string) (string, error) {
	in, err := ParseClockTime(clockIn)
	if err != nil {
		return "", err
	}
	out, err := ParseClockTime(clockOut)
	if err != nil {
		return "", err
	}
	return WorkedDuration(&in, &out)
}
