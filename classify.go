package isoband

import (
	"fmt"
	"strings"
)

// Class locates a value relative to a band.
type Class uint8

const (
	Below Class = iota
	Within
	Above
)

func (c Class) String() string {
	switch c {
	case Below:
		return "Below"
	case Within:
		return "Within"
	case Above:
		return "Above"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Classify assigns value to the half-open band [low, high). The bounds are
// swapped if given in reverse order. With this rule every value falls in
// exactly one band of a sorted level list.
func Classify(value, low, high float64) Class {
	if low > high {
		low, high = high, low
	}
	if value < low {
		return Below
	}
	if value >= high {
		return Above
	}
	return Within
}

// Classification is the class of each corner of a cell, in p1..p4 order.
type Classification [4]Class

// ParseClassification parses a 4-digit key such as "2120".
func ParseClassification(s string) (Classification, error) {
	var c Classification
	if len(s) != len(c) {
		return c, fmt.Errorf("isoband: invalid classification %q", s)
	}
	for i := range c {
		d := s[i] - '0'
		if d > 2 {
			return c, fmt.Errorf("isoband: invalid classification %q", s)
		}
		c[i] = Class(d)
	}
	return c, nil
}

func (c Classification) String() string {
	var b strings.Builder
	for _, x := range c {
		b.WriteByte('0' + byte(x))
	}
	return b.String()
}

// Index returns the classification as a base-3 number in [0, 81).
func (c Classification) Index() int {
	i := 0
	for _, x := range c {
		i = i*3 + int(x)
	}
	return i
}

func classificationAt(index int) Classification {
	var c Classification
	for i := len(c) - 1; i >= 0; i-- {
		c[i] = Class(index % 3)
		index /= 3
	}
	return c
}
