package stringutils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// LooksNumeric reports whether s is a finite number, ignoring surrounding space.
// NaN and the infinities are words here, so "nan" or "inf" do not count.
func LooksNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Too large for a float64 is still a number.
		return errors.Is(err, strconv.ErrRange)
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseID parses a path identifier. Only positive base-10 integers that fit
// the 32-bit serial columns are accepted.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ParseOptionalInt parses a query value. present is false for an empty value.
func ParseOptionalInt(s string) (value int64, present bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}
