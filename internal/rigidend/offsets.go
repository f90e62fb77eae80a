// Package rigidend turns ETABS end-length and lateral offsets into the
// two supported member treatments: rigid joint offsets handed to the
// geometric transform (default), or an explicit decomposition into
// rigid and deformable segments joined at interface nodes.
package rigidend

import (
	"math"

	"github.com/dmirandah/e2kops/internal/e2k"
)

// DefaultTol is the absolute component tolerance below which a joint
// offset vector counts as zero.
const DefaultTol = 1e-12

// Offsets converts end lengths and lateral offsets into the rigid
// joint-offset vectors at the member ends. The axial parts point along
// the member: +lenI·û at I, −lenJ·û at J. Zero-length members get only
// the lateral parts.
func Offsets(pI, pJ [3]float64, lenI, lenJ float64, latI, latJ *e2k.Offsets) (dI, dJ [3]float64) {
	v := [3]float64{pJ[0] - pI[0], pJ[1] - pI[1], pJ[2] - pI[2]}
	length := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])

	var u [3]float64
	if length > 0 {
		u = [3]float64{v[0] / length, v[1] / length, v[2] / length}
	}

	li := lateral(latI)
	lj := lateral(latJ)
	for k := 0; k < 3; k++ {
		dI[k] = lenI*u[k] + li[k]
		dJ[k] = -lenJ*u[k] + lj[k]
	}
	return dI, dJ
}

func lateral(o *e2k.Offsets) [3]float64 {
	var out [3]float64
	if o == nil {
		return out
	}
	if o.X != nil {
		out[0] = *o.X
	}
	if o.Y != nil {
		out[1] = *o.Y
	}
	if o.Z != nil {
		out[2] = *o.Z
	}
	return out
}

// HasOffsets reports whether any component of either vector exceeds the
// tolerance. Members without offsets get a plain transform.
func HasOffsets(dI, dJ [3]float64, tol float64) bool {
	for k := 0; k < 3; k++ {
		if math.Abs(dI[k]) > tol || math.Abs(dJ[k]) > tol {
			return true
		}
	}
	return false
}
