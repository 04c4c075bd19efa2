// Package export writes isobands to GIS formats.
package export

import (
	"math"
	"strconv"

	"github.com/fogleman/isoband"
)

const maxDigits = 14

// PrecisionAndScale returns the number of significant digits of x and how
// many of them follow the decimal point, considering at most 14 digits.
func PrecisionAndScale(x float64) (precision, scale int) {
	x = math.Abs(x)
	intPart := math.Floor(x)
	magnitude := len(strconv.FormatFloat(intPart, 'f', 0, 64))
	if magnitude >= maxDigits {
		return magnitude, 0
	}
	multiplier := int64(math.Pow10(maxDigits - magnitude))
	digits := multiplier + int64(float64(multiplier)*(x-intPart)+0.5)
	for digits%10 == 0 {
		digits /= 10
	}
	scale = len(strconv.FormatInt(digits, 10)) - 1
	return magnitude + scale, scale
}

// levelFormat returns the widest precision and scale over levels.
func levelFormat(levels isoband.Levels) (precision, scale int) {
	for i, level := range levels {
		p, s := PrecisionAndScale(level)
		if i == 0 || p > precision || (p == precision && s > scale) {
			precision, scale = p, s
		}
	}
	return
}

// Record is a numbered isoband ready to be written.
type Record struct {
	ID   int
	Band isoband.Band
	Ring isoband.Ring
}

// Records numbers bands from 1 and snaps each to the levels enclosing the
// values of its ring.
func Records(bands []isoband.Isoband, levels []float64) []Record {
	sorted := isoband.NewLevels(levels)
	records := make([]Record, len(bands))
	for i, b := range bands {
		band, ok := sorted.Bracket(b.Ring)
		if !ok || band.Low == band.High {
			band = isoband.NewBand(b.Low, b.High)
		}
		records[i] = Record{i + 1, band, b.Ring}
	}
	return records
}
