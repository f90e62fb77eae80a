package model

import "github.com/dmirandah/e2kops/internal/props"

// ElementKind distinguishes column and beam members.
type ElementKind string

const (
	ElemColumn ElementKind = "column"
	ElemBeam   ElementKind = "beam"
)

// Segment labels for members decomposed into rigid-end segments. Whole
// members carry an empty segment.
const (
	SegmentRigidI     = "rigid_i"
	SegmentDeformable = "deformable"
	SegmentRigidJ     = "rigid_j"
)

// Element is one elasticBeamColumn sent to the backend, with the inputs
// that produced it kept for the artifact files.
type Element struct {
	Tag          int                `json:"tag"`
	Kind         ElementKind        `json:"kind"`
	Line         string             `json:"line"`
	Story        string             `json:"story"`
	StoryIndex   int                `json:"story_index"`
	INode        int                `json:"i_node"`
	JNode        int                `json:"j_node"`
	Section      string             `json:"section,omitempty"`
	Props        props.SectionValues `json:"props"`
	TransformTag int                `json:"transf_tag"`
	JointOffsetI [3]float64         `json:"joint_offset_i"`
	JointOffsetJ [3]float64         `json:"joint_offset_j"`
	HasOffsets   bool               `json:"has_offsets"`
	Segment      string             `json:"segment,omitempty"`
	Length       float64            `json:"length"`
}

// MassBlock records the lumped mass applied to a diaphragm master:
// M = density·thickness·hullArea on the two translations, Izz on the
// plan rotation.
type MassBlock struct {
	M         float64 `json:"M"`
	Izz       float64 `json:"Izz"`
	Area      float64 `json:"A"`
	Thickness float64 `json:"t"`
	Density   float64 `json:"rho"`
	Applied   bool    `json:"applied"`
}

// FixBlock records the fixity pattern applied to a diaphragm master:
// out-of-plane DOFs restrained, in-plane free.
type FixBlock struct {
	UX      int  `json:"ux"`
	UY      int  `json:"uy"`
	UZ      int  `json:"uz"`
	RX      int  `json:"rx"`
	RY      int  `json:"ry"`
	RZ      int  `json:"rz"`
	Applied bool `json:"applied"`
}

// Diaphragm is one rigid diaphragm: a synthetic master node at the
// candidate centroid tied to the sorted slave set.
type Diaphragm struct {
	Story  string    `json:"story"`
	Master int       `json:"master"`
	Slaves []int     `json:"slaves"`
	Mass   MassBlock `json:"mass"`
	Fix    FixBlock  `json:"fix"`
}

// Support is one applied point restraint. Mask components follow
// (UX, UY, UZ, RX, RY, RZ), 1 restrained.
type Support struct {
	Node   int    `json:"node"`
	Mask   [6]int `json:"mask"`
	Source string `json:"source,omitempty"`
	Story  string `json:"story,omitempty"`
}

// SpringMaterial is one uniaxial elastic material backing a spring DOF.
// Materials are created once per (property, DOF) pair and reused.
type SpringMaterial struct {
	Tag       int     `json:"tag"`
	Property  string  `json:"property"`
	DOF       string  `json:"dof"`
	Stiffness float64 `json:"stiffness"`
}

// Spring is one zeroLength spring assembly between a structural node
// and its fixed ground twin. Mats and Dirs are parallel slices.
type Spring struct {
	Element  int    `json:"element"`
	Node     int    `json:"node"`
	Ground   int    `json:"ground"`
	Property string `json:"property"`
	Story    string `json:"story"`
	Point    string `json:"point"`
	Mats     []int  `json:"mats"`
	Dirs     []int  `json:"dirs"`
}

// Skip is one per-item diagnostic: the unit that was skipped, where,
// and why. Stages collect skips instead of aborting.
type Skip struct {
	Unit   string `json:"unit"`
	Story  string `json:"story,omitempty"`
	Reason string `json:"reason"`
}
