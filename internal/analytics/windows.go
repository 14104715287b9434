package analytics

import (
	"time"

	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

// TimeWindow scopes metrics to a reporting period.
type TimeWindow string

const (
	WindowAll       TimeWindow = "all"
	WindowThisWeek  TimeWindow = "this_week"
	WindowThisMonth TimeWindow = "this_month"
)

// ParseWindow converts raw strings into a TimeWindow, defaulting to all.
func ParseWindow(value string) (TimeWindow, error) {
	switch TimeWindow(value) {
	case "", WindowAll:
		return WindowAll, nil
	case WindowThisWeek:
		return WindowThisWeek, nil
	case WindowThisMonth:
		return WindowThisMonth, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid time window")
	}
}

// WindowStart returns the inclusive lower bound for the window, or nil for all.
// Weeks start on the most recent Sunday 00:00 UTC; months are calendar months.
func WindowStart(window TimeWindow, now time.Time) *time.Time {
	now = now.UTC()
	switch window {
	case WindowThisWeek:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		return &start
	case WindowThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &start
	default:
		return nil
	}
}
