package ctf

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is the base time step the CTFs are derived for.
type Interval string

const (
	IntervalH1  Interval = "1h"
	IntervalM30 Interval = "30m"
	IntervalM20 Interval = "20m"
	IntervalM15 Interval = "15m"
	IntervalM10 Interval = "10m"
)

/*
Number of steps one hour is divided into.

	Notes:
		1h: 1
		30m: 2
		15m: 4
*/
func (i Interval) NHour() int {
	switch i {
	case IntervalH1:
		return 1
	case IntervalM30:
		return 2
	case IntervalM20:
		return 3
	case IntervalM15:
		return 4
	case IntervalM10:
		return 6
	default:
		panic("invalid interval")
	}
}

// Hours returns the interval length, h.
func (i Interval) Hours() float64 {
	return 1.0 / float64(i.NHour())
}

/*
ParseInterval accepts the interval names ("15m", "1h") or a plain number of
minutes that divides an hour evenly.
*/
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch Interval(s) {
	case IntervalH1, IntervalM30, IntervalM20, IntervalM15, IntervalM10:
		return Interval(s), nil
	}

	minutes, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
	if err != nil {
		return "", fmt.Errorf("invalid interval %q", s)
	}
	switch minutes {
	case 60:
		return IntervalH1, nil
	case 30:
		return IntervalM30, nil
	case 20:
		return IntervalM20, nil
	case 15:
		return IntervalM15, nil
	case 10:
		return IntervalM10, nil
	}
	return "", fmt.Errorf("invalid interval %q", s)
}
