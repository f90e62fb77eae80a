// Package ops defines the write-only capability surface the translator
// drives a finite-element backend through. Calls define entities and
// return errors; the backend is never queried back, so any Domain that
// accepts the calls in order reproduces the model.
package ops

// SectionArgs are the elastic section constants of one beam-column
// element, in backend axis convention (Iz strong, Iy weak).
type SectionArgs struct {
	A  float64
	E  float64
	G  float64
	J  float64
	Iy float64
	Iz float64
}

// Domain is the backend capability set used by the assembly stages.
// Transform kinds are "Linear" with a local xz vector; dI and dJ, when
// non-nil, are rigid joint offsets at the element ends.
type Domain interface {
	Node(tag int, x, y, z float64) error
	Fix(tag int, ux, uy, uz, rx, ry, rz int) error
	Mass(tag int, mx, my, mz, rx, ry, rz float64) error
	GeomTransf(tag int, kind string, vecxz [3]float64, dI, dJ *[3]float64) error
	ElasticBeamColumn(tag, iNode, jNode int, sec SectionArgs, transfTag int) error
	RigidDiaphragm(perpDirn, master int, slaves []int) error
	UniaxialElastic(matTag int, stiffness float64) error
	ZeroLength(eleTag, iNode, jNode int, mats, dirs []int) error
}
