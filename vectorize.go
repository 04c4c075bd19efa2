package isoband

// Isoband is a ring together with the band it covers.
type Isoband struct {
	Low, High float64
	Ring      Ring
}

// vertex is a point of the band boundary. corner is the index of the cell
// corner it came from, or -1 for a level crossing.
type vertex struct {
	Point
	corner int
}

// boundary walks the cell edges in order and collects the points each
// edge contributes. A corner shared by two consecutive edges is kept once.
func (cell Cell) boundary(low, high float64) []vertex {
	result := make([]vertex, 0, 8)
	seen := [4]bool{}
	for i := 0; i < 4; i++ {
		pi, pe, ii, ie := cell.edge(i)
		ci := Classify(pi.Z, low, high)
		ce := Classify(pe.Z, low, high)
		for _, t := range edgeRules[ci][ce] {
			var v vertex
			switch t {
			case termStart:
				v = vertex{pi, ii}
			case termEnd:
				v = vertex{pe, ie}
			case termLow, termHigh:
				level := low
				if t == termHigh {
					level = high
				}
				p, ok := Interpolate(pi, pe, level)
				if !ok {
					continue
				}
				v = vertex{p, -1}
			}
			if v.corner >= 0 {
				if seen[v.corner] {
					continue
				}
				seen[v.corner] = true
			}
			result = append(result, v)
		}
	}
	return result
}

// VectorizeBand returns the polygons covering the part of the cell whose
// value lies in [low, high). The result holds zero, one or two rings; two
// only for a saddle whose centre falls outside the band.
func (cell Cell) VectorizeBand(low, high float64) []Ring {
	if low > high {
		low, high = high, low
	}
	if low == high {
		return nil
	}
	rule := caseTable[cell.Classify(low, high).Index()]
	if rule.assembly == uniform {
		return nil
	}
	vertices := cell.boundary(low, high)
	if rule.assembly == saddle {
		switch Classify(cell.CentralMean(), low, high) {
		case Below:
			return assembleLobes(vertices, rule.below)
		case Above:
			return assembleLobes(vertices, rule.above)
		}
	}
	points := make([]Point, len(vertices))
	for i, v := range vertices {
		points[i] = v.Point
	}
	if ring, ok := newRing(points); ok {
		return []Ring{ring}
	}
	return nil
}

func assembleLobes(vertices []vertex, split lobes) []Ring {
	var result []Ring
	for _, indices := range split {
		points := make([]Point, 0, len(indices))
		for _, i := range indices {
			if i < len(vertices) {
				points = append(points, vertices[i].Point)
			}
		}
		if ring, ok := newRing(points); ok {
			result = append(result, ring)
		}
	}
	return result
}

// VectorizeBands runs VectorizeBand for each pair of consecutive levels,
// which should be sorted ascending, and concatenates the results in band
// order.
func (cell Cell) VectorizeBands(levels []float64) []Isoband {
	var result []Isoband
	for i := 1; i < len(levels); i++ {
		low, high := levels[i-1], levels[i]
		for _, ring := range cell.VectorizeBand(low, high) {
			result = append(result, Isoband{low, high, ring})
		}
	}
	return result
}
