// Package schedule turns a calendar date and a 12-hour time-slot label
// into an absolute appointment time.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidSlot = errors.New("invalid time slot")
)

// Slot is a time of day in 24-hour form.
type Slot struct {
	Hour   int
	Minute int
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Label renders the slot back in the "h:mm AM" form the dashboard uses.
func (s Slot) Label() string {
	suffix := "AM"
	h := s.Hour
	if h >= 12 {
		suffix = "PM"
	}
	if h%12 == 0 {
		h = 12
	} else {
		h %= 12
	}
	return fmt.Sprintf("%d:%02d %s", h, s.Minute, suffix)
}

// ParseSlot reads labels like "10:30 AM", "9 pm" or "12:00AM".
// 12 AM is midnight and 12 PM is noon.
func ParseSlot(label string) (Slot, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	var pm bool
	switch {
	case strings.HasSuffix(s, "AM"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "AM"))
	case strings.HasSuffix(s, "PM"):
		pm = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "PM"))
	default:
		return Slot{}, fmt.Errorf("%w: %q missing AM/PM", ErrInvalidSlot, label)
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	minute := 0
	if hasMinutes {
		if len(minutePart) != 2 {
			return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
		}
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
		}
	}

	hour %= 12
	if pm {
		hour += 12
	}
	return Slot{Hour: hour, Minute: minute}, nil
}

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Combine places the slot on the given calendar day in loc.
// Only the year, month and day of date are used.
func Combine(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	sl, err := ParseSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	return sl.On(date, loc), nil
}

// On places an already parsed slot on the calendar day of date in loc (UTC when nil).
func (s Slot) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, s.Hour, s.Minute, 0, 0, loc)
}

// CombineStrings is Combine for raw request values.
func CombineStrings(date, slot string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return Combine(d, slot, loc)
}
