package isoband

// Interpolate returns the point where the scalar value crosses level along
// the segment p1-p2, assuming the value varies linearly. It returns false
// if level lies outside the range of the two endpoint values.
func Interpolate(p1, p2 Point, level float64) (Point, bool) {
	lo, hi := p1, p2
	if p2.Z < p1.Z {
		lo, hi = p2, p1
	}
	if level < lo.Z || level > hi.Z {
		return Point{}, false
	}
	var t float64
	if hi.Z > lo.Z {
		t = (level - lo.Z) / (hi.Z - lo.Z)
	}
	// endpoints are returned verbatim so they compare equal to the corners
	switch t {
	case 0:
		return Point{lo.X, lo.Y, level}, true
	case 1:
		return Point{hi.X, hi.Y, level}, true
	}
	v0 := lo.vector()
	v1 := hi.vector()
	v := v0.Add(v1.Sub(v0).MulScalar(t))
	return Point{v.X, v.Y, level}, true
}
