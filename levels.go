package isoband

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var ErrLevels = errors.New("isoband: malformed levels")

// Band is an interval of the field between two levels.
type Band struct {
	Low, High float64
}

// NewBand returns the band between a and b, whichever is larger.
func NewBand(a, b float64) Band {
	if a > b {
		a, b = b, a
	}
	return Band{a, b}
}

// Contains reports whether value falls in the band under the same
// half-open rule Classify uses.
func (b Band) Contains(value float64) bool {
	return Classify(value, b.Low, b.High) == Within
}

// Levels is a list of band boundaries sorted ascending.
type Levels []float64

// NewLevels returns a sorted copy of values. Duplicates are kept; they
// produce empty bands.
func NewLevels(values []float64) Levels {
	levels := make(Levels, len(values))
	copy(levels, values)
	sort.Float64s(levels)
	return levels
}

// Range returns levels start, start+step, ... up to but excluding stop.
func Range(start, stop, step float64) Levels {
	var levels Levels
	if step <= 0 {
		return levels
	}
	n := int(math.Ceil((stop - start) / step))
	for i := 0; i < n; i++ {
		levels = append(levels, start+float64(i)*step)
	}
	return levels
}

// ParseLevels reads either a comma separated list of levels or a range
// written start:stop:step, stop excluded.
func ParseLevels(s string) (Levels, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty: %w", ErrLevels)
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%q: want start:stop:step: %w", s, ErrLevels)
		}
		var v [3]float64
		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", s, ErrLevels)
			}
			v[i] = f
		}
		if v[2] <= 0 {
			return nil, fmt.Errorf("%q: step must be positive: %w", s, ErrLevels)
		}
		return Range(v[0], v[1], v[2]), nil
	}
	var values []float64
	for _, part := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, ErrLevels)
		}
		values = append(values, f)
	}
	return NewLevels(values), nil
}

func (levels Levels) Bands() []Band {
	if len(levels) < 2 {
		return nil
	}
	bands := make([]Band, len(levels)-1)
	for i := range bands {
		bands[i] = Band{levels[i], levels[i+1]}
	}
	return bands
}

// Limits returns the closest levels enclosing value: the largest level not
// above it and the smallest level not below it. A value equal to a level
// returns that level twice. ok is false if value lies outside the levels.
func (levels Levels) Limits(value float64) (lo, hi float64, ok bool) {
	if len(levels) == 0 || value < levels[0] || value > levels[len(levels)-1] {
		return 0, 0, false
	}
	i := sort.SearchFloat64s(levels, value)
	if levels[i] == value {
		return value, value, true
	}
	return levels[i-1], levels[i], true
}

// Bracket snaps the value range of ring to the band of levels enclosing it.
// It recovers the band of a ring whose vertex values carry rounding noise.
func (levels Levels) Bracket(ring Ring) (Band, bool) {
	zmin, zmax := ring.ZRange()
	lo, _, ok := levels.Limits(zmin)
	if !ok {
		return Band{}, false
	}
	_, hi, ok := levels.Limits(zmax)
	if !ok {
		return Band{}, false
	}
	return Band{lo, hi}, true
}
