package ops

// Recorder is a Domain that appends every call to typed slices, in call
// order. Tests and dry runs inspect the slices; nothing ever fails.
type Recorder struct {
	Nodes       []NodeCall
	Fixes       []FixCall
	Masses      []MassCall
	Transforms  []GeomTransfCall
	Elements    []ElementCall
	Diaphragms  []DiaphragmCall
	Materials   []MaterialCall
	ZeroLengths []ZeroLengthCall
}

var _ Domain = (*Recorder)(nil)

// NodeCall records one Node definition.
type NodeCall struct {
	Tag     int
	X, Y, Z float64
}

// FixCall records one Fix application, mask in (UX..RZ) order.
type FixCall struct {
	Tag  int
	Mask [6]int
}

// MassCall records one Mass application, values in (UX..RZ) order.
type MassCall struct {
	Tag    int
	Values [6]float64
}

// GeomTransfCall records one geometric transform definition.
type GeomTransfCall struct {
	Tag   int
	Kind  string
	VecXZ [3]float64
	DI    *[3]float64
	DJ    *[3]float64
}

// ElementCall records one elasticBeamColumn definition.
type ElementCall struct {
	Tag       int
	INode     int
	JNode     int
	Sec       SectionArgs
	TransfTag int
}

// DiaphragmCall records one rigidDiaphragm constraint.
type DiaphragmCall struct {
	PerpDirn int
	Master   int
	Slaves   []int
}

// MaterialCall records one uniaxial elastic material definition.
type MaterialCall struct {
	Tag       int
	Stiffness float64
}

// ZeroLengthCall records one zeroLength element definition.
type ZeroLengthCall struct {
	Tag   int
	INode int
	JNode int
	Mats  []int
	Dirs  []int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Node(tag int, x, y, z float64) error {
	r.Nodes = append(r.Nodes, NodeCall{Tag: tag, X: x, Y: y, Z: z})
	return nil
}

func (r *Recorder) Fix(tag int, ux, uy, uz, rx, ry, rz int) error {
	r.Fixes = append(r.Fixes, FixCall{Tag: tag, Mask: [6]int{ux, uy, uz, rx, ry, rz}})
	return nil
}

func (r *Recorder) Mass(tag int, mx, my, mz, rx, ry, rz float64) error {
	r.Masses = append(r.Masses, MassCall{Tag: tag, Values: [6]float64{mx, my, mz, rx, ry, rz}})
	return nil
}

func (r *Recorder) GeomTransf(tag int, kind string, vecxz [3]float64, dI, dJ *[3]float64) error {
	call := GeomTransfCall{Tag: tag, Kind: kind, VecXZ: vecxz}
	if dI != nil {
		v := *dI
		call.DI = &v
	}
	if dJ != nil {
		v := *dJ
		call.DJ = &v
	}
	r.Transforms = append(r.Transforms, call)
	return nil
}

func (r *Recorder) ElasticBeamColumn(tag, iNode, jNode int, sec SectionArgs, transfTag int) error {
	r.Elements = append(r.Elements, ElementCall{
		Tag: tag, INode: iNode, JNode: jNode, Sec: sec, TransfTag: transfTag,
	})
	return nil
}

func (r *Recorder) RigidDiaphragm(perpDirn, master int, slaves []int) error {
	copied := append([]int(nil), slaves...)
	r.Diaphragms = append(r.Diaphragms, DiaphragmCall{PerpDirn: perpDirn, Master: master, Slaves: copied})
	return nil
}

func (r *Recorder) UniaxialElastic(matTag int, stiffness float64) error {
	r.Materials = append(r.Materials, MaterialCall{Tag: matTag, Stiffness: stiffness})
	return nil
}

func (r *Recorder) ZeroLength(eleTag, iNode, jNode int, mats, dirs []int) error {
	r.ZeroLengths = append(r.ZeroLengths, ZeroLengthCall{
		Tag:   eleTag,
		INode: iNode,
		JNode: jNode,
		Mats:  append([]int(nil), mats...),
		Dirs:  append([]int(nil), dirs...),
	})
	return nil
}

// NodeTag reports whether a node with the tag was defined.
func (r *Recorder) NodeTag(tag int) bool {
	for _, n := range r.Nodes {
		if n.Tag == tag {
			return true
		}
	}
	return false
}

// TransformByTag returns the transform defined with the tag.
func (r *Recorder) TransformByTag(tag int) (GeomTransfCall, bool) {
	for _, t := range r.Transforms {
		if t.Tag == tag {
			return t, true
		}
	}
	return GeomTransfCall{}, false
}
