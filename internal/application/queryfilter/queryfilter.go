// Package queryfilter normalizes the dashboard/assignment filter
// {date, time, base, equipmentType} into a closed time window plus
// predicate. An absent field is unconstrained for its dimension.
package queryfilter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// Params are the raw query-string values as the front end sends them.
type Params struct {
	Date          string
	Time          string
	Base          string
	EquipmentType string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Evaluate builds the normalized EventFilter.
//
// Window rules: date alone bounds that full calendar day (UTC). Combining
// date and time produces a single instant used as the inclusive upper
// bound, with the day's start as the lower bound. The UI may also merge
// date+time client-side into an RFC3339 instant in the date field; that is
// treated the same as date+time. No date means an unbounded window.
func Evaluate(p Params) (repository.EventFilter, error) {
	f := repository.EventFilter{
		BaseID:        strings.TrimSpace(p.Base),
		EquipmentType: strings.TrimSpace(p.EquipmentType),
	}

	date := strings.TrimSpace(p.Date)
	if date == "" {
		return f, nil
	}

	if strings.Contains(date, "T") {
		instant, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return f, fmt.Errorf("%w: date %q", domain.ErrValidation, date)
		}
		instant = instant.UTC()
		start := startOfDay(instant)
		f.Start, f.End = &start, &instant
		return f, nil
	}

	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return f, fmt.Errorf("%w: date %q", domain.ErrValidation, date)
	}

	start := day
	end := day.Add(24*time.Hour - time.Nanosecond)
	if clock := strings.TrimSpace(p.Time); clock != "" {
		t, err := parseClock(clock)
		if err != nil {
			return f, fmt.Errorf("%w: time %q", domain.ErrValidation, clock)
		}
		end = day.Add(t)
	}
	f.Start, f.End = &start, &end
	return f, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, err
		}
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
