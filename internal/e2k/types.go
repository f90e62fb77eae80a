// Package e2k parses the essentials of an ETABS ".e2k" text export into
// typed records. Parsing is tolerant: absent sections yield empty
// collections and malformed lines are skipped, never errors.
package e2k

// LineKind is the member kind declared in $ LINE CONNECTIVITIES.
type LineKind string

const (
	LineBeam   LineKind = "BEAM"
	LineColumn LineKind = "COLUMN"
	LineBrace  LineKind = "BRACE"
)

// StoryRecord is one STORY line, listed top to bottom. Height and Elev are
// optional in the export; absolute elevations are resolved later.
type StoryRecord struct {
	Name        string   `json:"name"`
	Height      *float64 `json:"height"`
	Elev        *float64 `json:"elev"`
	SimilarTo   string   `json:"similar_to,omitempty"`
	MasterStory string   `json:"masterstory,omitempty"`
}

// PointRecord is a plan-grid coordinate. Third, when present, is a vertical
// drop below the story elevation (not an absolute Z).
type PointRecord struct {
	ID       string   `json:"-"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Third    *float64 `json:"third"`
	HasThree bool     `json:"has_three"`
}

// PointAssign binds a point to a story with optional labels. DIAPH and
// DIAPHRAGM are accepted as synonyms and normalized into Diaphragm.
// A Diaphragm value of "DISCONNECTED" (any case) opts the point out of
// diaphragm membership downstream.
type PointAssign struct {
	Point     string            `json:"point"`
	Story     string            `json:"story"`
	Diaphragm string            `json:"diaphragm,omitempty"`
	Spring    string            `json:"springprop,omitempty"`
	Restraint string            `json:"restraint,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// LineRecord is the connectivity of a named member: kind plus the i and j
// endpoint point ids.
type LineRecord struct {
	Name string   `json:"name"`
	Kind LineKind `json:"kind"`
	I    string   `json:"i"`
	J    string   `json:"j"`
}

// Offsets are optional per-axis nodal offsets from a LINEASSIGN.
type Offsets struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

// LineAssign is the consolidated per-(line, story) assignment. Several
// LINEASSIGN lines may target the same pair; they merge field-wise: the
// first section label wins, numeric fields take the latest value, Extra
// accumulates.
type LineAssign struct {
	Line       string            `json:"line"`
	Story      string            `json:"story"`
	Section    string            `json:"section,omitempty"`
	LengthOffI *float64          `json:"length_off_i,omitempty"`
	LengthOffJ *float64          `json:"length_off_j,omitempty"`
	OffsetsI   *Offsets          `json:"offsets_i,omitempty"`
	OffsetsJ   *Offsets          `json:"offsets_j,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Material collects the property lines of one MATERIAL name. ETABS splits a
// material over several lines (TYPE, SYMTYPE, FY, FC, HYSTYPE); they merge
// into a single record here. Units are whatever the export uses, Pa in the
// metric exports this tool targets.
type Material struct {
	Name            string  `json:"name"`
	Type            string  `json:"type,omitempty"`
	WeightPerVolume float64 `json:"weight_per_volume,omitempty"`
	SymType         string  `json:"symtype,omitempty"`
	E               float64 `json:"E,omitempty"`
	Poisson         float64 `json:"poisson,omitempty"`
	ThermalCoeff    float64 `json:"thermal_coeff,omitempty"`
	Fy              float64 `json:"fy,omitempty"`
	Fu              float64 `json:"fu,omitempty"`
	Fye             float64 `json:"fye,omitempty"`
	Fue             float64 `json:"fue,omitempty"`
	Fc              float64 `json:"fc,omitempty"`
	HysType         string  `json:"hystype,omitempty"`
}

// Materials indexes parsed materials by name, with steel and concrete
// views categorized from the TYPE token.
type Materials struct {
	Steel      map[string]*Material `json:"steel"`
	Concrete   map[string]*Material `json:"concrete"`
	Properties map[string]*Material `json:"properties"`
}

// RebarDef is one REBARDEFINITION entry (area m², diameter m).
type RebarDef struct {
	Area     float64 `json:"area"`
	Diameter float64 `json:"diameter"`
}

// SectionDims are the rectangle dimensions of a frame section: D depth, B
// width. Either may be absent for non-rectangular shapes.
type SectionDims struct {
	D *float64 `json:"D,omitempty"`
	B *float64 `json:"B,omitempty"`
}

// FrameSection is one FRAMESECTION entry. Modifiers holds numeric property
// tokens such as JMOD and NOTIONALUSERVALUE.
type FrameSection struct {
	Name      string             `json:"name"`
	Material  string             `json:"material,omitempty"`
	Shape     string             `json:"shape,omitempty"`
	Dims      SectionDims        `json:"dimensions"`
	Modifiers map[string]float64 `json:"modifiers,omitempty"`
}

// SpringProp is one POINTSPRING entry: per-DOF stiffnesses, zero when the
// export omits a direction.
type SpringProp struct {
	Name string  `json:"name"`
	UX   float64 `json:"ux"`
	UY   float64 `json:"uy"`
	UZ   float64 `json:"uz"`
	RX   float64 `json:"rx"`
	RY   float64 `json:"ry"`
	RZ   float64 `json:"rz"`
}

// Model is the flat parse result of one .e2k text. Slices preserve the
// order the export listed entries in; maps index by name.
type Model struct {
	Stories        []StoryRecord           `json:"stories"`
	Points         map[string]PointRecord  `json:"points"`
	PointAssigns   []PointAssign           `json:"point_assigns"`
	Lines          map[string]LineRecord   `json:"lines"`
	LineAssigns    []*LineAssign           `json:"line_assigns"`
	DiaphragmNames []string                `json:"diaphragm_names"`
	Materials      Materials               `json:"materials"`
	Rebar          map[string]RebarDef     `json:"rebar_definitions"`
	FrameSections  map[string]FrameSection `json:"frame_sections"`
	SpringProps    map[string]SpringProp   `json:"spring_properties"`
}

// Story returns the record for a story name, or nil.
func (m *Model) Story(name string) *StoryRecord {
	for i := range m.Stories {
		if m.Stories[i].Name == name {
			return &m.Stories[i]
		}
	}
	return nil
}

// HasDiaphragmCatalogue reports whether the export declared any diaphragm
// names. When false, membership labels are accepted without a catalogue
// check.
func (m *Model) HasDiaphragmCatalogue() bool {
	return len(m.DiaphragmNames) > 0
}

// DiaphragmDeclared reports whether name appears in $ DIAPHRAGM NAMES.
func (m *Model) DiaphragmDeclared(name string) bool {
	for _, d := range m.DiaphragmNames {
		if d == name {
			return true
		}
	}
	return false
}
