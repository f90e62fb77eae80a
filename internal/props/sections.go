package props

import "math"

// torsionBeta returns the Saint-Venant β factor for a rectangle of
// aspect ratio a/b (a the larger side). Table values for the common
// ratios, linear interpolation toward the square case below 2.
func torsionBeta(aspect float64) float64 {
	switch {
	case aspect >= 10:
		return 0.333
	case aspect >= 5:
		return 0.299
	case aspect >= 3:
		return 0.263
	case aspect >= 2:
		return 0.229
	default:
		return 0.141 + 0.196*(1.0/aspect)
	}
}

// Rectangle computes the geometric properties of a B×D rectangle:
// Ixx = B·D³/12 about the strong axis, Iyy = D·B³/12 about the weak,
// and J = β·a·b³ with a the larger and b the smaller dimension.
func Rectangle(b, d float64) SectionGeometry {
	area := b * d
	ixx := b * math.Pow(d, 3) / 12
	iyy := d * math.Pow(b, 3) / 12

	long := math.Max(b, d)
	short := math.Min(b, d)
	j := torsionBeta(long/short) * long * math.Pow(short, 3)

	return SectionGeometry{
		Area: area,
		Ixx:  ixx,
		Iyy:  iyy,
		J:    j,
		Sxx:  ixx / (d / 2),
		Syy:  iyy / (b / 2),
		Rx:   math.Sqrt(ixx / area),
		Ry:   math.Sqrt(iyy / area),
	}
}
