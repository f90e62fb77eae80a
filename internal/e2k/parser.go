package e2k

import (
	"regexp"
	"strconv"
	"strings"
)

// Artifact version identifiers carried into parsed_raw.json so downstream
// consumers can check compatibility.
const (
	ArtifactsVersion = "2.1"
	MaterialsVersion = "1.0"
	SectionsVersion  = "1.0"
	SpringsVersion   = "1.0"
)

// Plain decimal and scientific-notation number fragments used by the token
// regexes below. Story, point and line-assign tokens use the plain form;
// material and section properties also appear in exponent notation.
const (
	numPat = `[-+]?\d+(?:\.\d+)?`
	sciPat = `[-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`
)

var (
	reSectionStart = regexp.MustCompile(`(?m)^\s*\$[^\n]*\n`)

	reStoriesHdr    = regexp.MustCompile(`(?im)^\s*\$ STORIES[^\n]*\n`)
	rePointsHdr     = regexp.MustCompile(`(?im)^\s*\$ POINT COORDINATES[^\n]*\n`)
	rePtAssignsHdr  = regexp.MustCompile(`(?im)^\s*\$ POINT ASSIGNS[^\n]*\n`)
	reLinesHdr      = regexp.MustCompile(`(?im)^\s*\$ LINE CONNECTIVITIES[^\n]*\n`)
	reLnAssignsHdr  = regexp.MustCompile(`(?im)^\s*\$ LINE ASSIGNS[^\n]*\n`)
	reDiaphragmsHdr = regexp.MustCompile(`(?im)^\s*\$ DIAPHRAGM NAMES[^\n]*\n`)
	reMaterialsHdr  = regexp.MustCompile(`(?im)^\s*\$ MATERIAL PROPERTIES[^\n]*\n`)
	reRebarHdr      = regexp.MustCompile(`(?im)^\s*\$ REBAR DEFINITIONS[^\n]*\n`)
	reFrameSecHdr   = regexp.MustCompile(`(?im)^\s*\$ FRAME SECTIONS[^\n]*\n`)
	reSpringsHdr    = regexp.MustCompile(`(?im)^\s*\$ POINT SPRING PROPERTIES[^\n]*\n`)

	reStory = regexp.MustCompile(`(?i)^\s*STORY\s+"([^"]+)"` +
		`(?:\s+HEIGHT\s+(` + numPat + `))?` +
		`(?:\s+ELEV\s+(` + numPat + `))?` +
		`(?:\s+SIMILARTO\s+"([^"]+)")?` +
		`(?:\s+MASTERSTORY\s+"([^"]+)")?`)
	rePoint = regexp.MustCompile(`(?i)^\s*POINT\s+"([^"]+)"\s+(` + numPat + `)\s+(` + numPat + `)(?:\s+(` + numPat + `))?`)

	rePAHead  = regexp.MustCompile(`(?i)^\s*POINTASSIGN\s+"([^"]+)"\s+"([^"]+)"(.*)$`)
	rePAToken = regexp.MustCompile(`(?i)\b(DIAPHRAGM|DIAPH|SPRINGPROP|POINTMASS|RESTRAINT|FRAMEPROP|JOINTPATTERN|SPCONSTRAINT)\b\s+"([^"]+)"`)

	reLine = regexp.MustCompile(`(?i)^\s*LINE\s+"([^"]+)"\s+([A-Z]+)\s+"([^"]+)"\s+"([^"]+)"`)

	reLAHead   = regexp.MustCompile(`(?i)^\s*LINEASSIGN\s+"([^"]+)"\s+"([^"]+)"(.*)$`)
	reLAQuoted = regexp.MustCompile(`(?i)\b(SECTION|SECT|FRAMEPROP|PIER|SPANDREL|LOCALAXIS|RELEASE)\b\s+"([^"]+)"`)
	reLANumber = regexp.MustCompile(`(?i)\b(LENGTHOFFI|LENGTHOFFJ|OFFSETXI|OFFSETYI|OFFSETZI|OFFSETXJ|OFFSETYJ|OFFSETZJ)\b\s+(` + numPat + `)`)

	reDiaphragm = regexp.MustCompile(`(?i)^\s*DIAPHRAGM\s+"([^"]+)"`)

	reMatHead   = regexp.MustCompile(`(?i)^\s*MATERIAL\s+"([^"]+)"\s+(.+)$`)
	reMatType   = regexp.MustCompile(`(?i)\bTYPE\s+"([^"]+)"`)
	reMatSym    = regexp.MustCompile(`(?i)\bSYMTYPE\s+"([^"]+)"`)
	reMatHys    = regexp.MustCompile(`(?i)\bHYSTYPE\s+"([^"]+)"`)
	reMatWeight = regexp.MustCompile(`(?i)\bWEIGHTPERVOLUME\s+(` + sciPat + `)`)
	reMatE      = regexp.MustCompile(`(?i)\bE\s+(` + sciPat + `)`)
	reMatU      = regexp.MustCompile(`(?i)\bU\s+(` + sciPat + `)`)
	reMatA      = regexp.MustCompile(`(?i)\bA\s+(` + sciPat + `)`)
	reMatFy     = regexp.MustCompile(`(?i)\bFY\s+(` + sciPat + `)`)
	reMatFu     = regexp.MustCompile(`(?i)\bFU\s+(` + sciPat + `)`)
	reMatFye    = regexp.MustCompile(`(?i)\bFYE\s+(` + sciPat + `)`)
	reMatFue    = regexp.MustCompile(`(?i)\bFUE\s+(` + sciPat + `)`)
	reMatFc     = regexp.MustCompile(`(?i)\bFC\s+(` + sciPat + `)`)

	reRebar = regexp.MustCompile(`(?i)^\s*REBARDEFINITION\s+"([^"]+)"\s+AREA\s+(` + sciPat + `)\s+DIA\s+(` + sciPat + `)`)

	reFSHead     = regexp.MustCompile(`(?i)^\s*FRAMESECTION\s+"([^"]+)"\s+(.+)$`)
	reFSMaterial = regexp.MustCompile(`(?i)\bMATERIAL\s+"([^"]+)"`)
	reFSShape    = regexp.MustCompile(`(?i)\bSHAPE\s+"([^"]+)"`)
	reFSDepth    = regexp.MustCompile(`(?i)\bD\s+(` + sciPat + `)`)
	reFSWidth    = regexp.MustCompile(`(?i)\bB\s+(` + sciPat + `)`)
	reFSJMod     = regexp.MustCompile(`(?i)\bJMOD\s+(` + sciPat + `)`)
	reFSNotional = regexp.MustCompile(`(?i)\bNOTIONALUSERVALUE\s+(` + sciPat + `)`)

	reSpringHead = regexp.MustCompile(`(?i)^\s*POINTSPRING\s+"([^"]+)"\s+(.+)$`)
	reSpringDOF  = regexp.MustCompile(`(?i)\b(UX|UY|UZ|RX|RY|RZ)\s+(` + sciPat + `)`)
)

// sectionBody returns the text between a section header and the next "$"
// header line, or "" when the section is absent.
func sectionBody(text string, header *regexp.Regexp) string {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if next := reSectionStart.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return rest
}

func contentLines(body string) []string {
	var out []string
	for _, ln := range strings.Split(body, "\n") {
		t := strings.TrimSpace(ln)
		if t == "" || strings.HasPrefix(t, "$") {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func floatOrNil(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Parse reads an .e2k text into a Model. It is total: any section may be
// missing and any line may be malformed without failing the parse.
func Parse(text string) *Model {
	m := &Model{
		Points:        map[string]PointRecord{},
		Lines:         map[string]LineRecord{},
		FrameSections: map[string]FrameSection{},
		Rebar:         map[string]RebarDef{},
		SpringProps:   map[string]SpringProp{},
		Materials: Materials{
			Steel:      map[string]*Material{},
			Concrete:   map[string]*Material{},
			Properties: map[string]*Material{},
		},
	}

	for _, ln := range contentLines(sectionBody(text, reStoriesHdr)) {
		g := reStory.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		m.Stories = append(m.Stories, StoryRecord{
			Name:        g[1],
			Height:      floatOrNil(g[2]),
			Elev:        floatOrNil(g[3]),
			SimilarTo:   g[4],
			MasterStory: g[5],
		})
	}

	for _, ln := range contentLines(sectionBody(text, rePointsHdr)) {
		g := rePoint.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		m.Points[g[1]] = PointRecord{
			ID:       g[1],
			X:        floatOrZero(g[2]),
			Y:        floatOrZero(g[3]),
			Third:    floatOrNil(g[4]),
			HasThree: g[4] != "",
		}
	}

	for _, ln := range contentLines(sectionBody(text, rePtAssignsHdr)) {
		g := rePAHead.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		found := map[string]string{}
		for _, kv := range rePAToken.FindAllStringSubmatch(g[3], -1) {
			found[strings.ToUpper(kv[1])] = kv[2]
		}
		dia := found["DIAPHRAGM"]
		if dia == "" {
			dia = found["DIAPH"]
		}
		pa := PointAssign{
			Point:     g[1],
			Story:     g[2],
			Diaphragm: dia,
			Spring:    found["SPRINGPROP"],
			Restraint: found["RESTRAINT"],
		}
		for k, v := range found {
			switch k {
			case "DIAPHRAGM", "DIAPH", "SPRINGPROP", "RESTRAINT":
			default:
				if pa.Extra == nil {
					pa.Extra = map[string]string{}
				}
				pa.Extra[k] = v
			}
		}
		m.PointAssigns = append(m.PointAssigns, pa)
	}

	for _, ln := range contentLines(sectionBody(text, reLinesHdr)) {
		g := reLine.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		m.Lines[g[1]] = LineRecord{
			Name: g[1],
			Kind: LineKind(strings.ToUpper(g[2])),
			I:    g[3],
			J:    g[4],
		}
	}

	parseLineAssigns(m, sectionBody(text, reLnAssignsHdr))

	for _, ln := range contentLines(sectionBody(text, reDiaphragmsHdr)) {
		if g := reDiaphragm.FindStringSubmatch(ln); g != nil {
			m.DiaphragmNames = append(m.DiaphragmNames, g[1])
		}
	}

	parseMaterials(m, sectionBody(text, reMaterialsHdr))

	for _, ln := range contentLines(sectionBody(text, reRebarHdr)) {
		if g := reRebar.FindStringSubmatch(ln); g != nil {
			m.Rebar[g[1]] = RebarDef{Area: floatOrZero(g[2]), Diameter: floatOrZero(g[3])}
		}
	}

	parseFrameSections(m, sectionBody(text, reFrameSecHdr))
	parseSprings(m, sectionBody(text, reSpringsHdr))

	return m
}

// parseLineAssigns consolidates LINEASSIGN lines per (line, story) pair.
// The export commonly splits one assignment over several lines; the first
// section label wins, numeric fields take the latest value, offset groups
// replace wholesale, Extra accumulates.
func parseLineAssigns(m *Model, body string) {
	type key struct{ line, story string }
	byKey := map[key]*LineAssign{}

	for _, ln := range contentLines(body) {
		g := reLAHead.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		k := key{g[1], g[2]}
		tail := g[3]

		quoted := map[string]string{}
		for _, kv := range reLAQuoted.FindAllStringSubmatch(tail, -1) {
			quoted[strings.ToUpper(kv[1])] = kv[2]
		}
		section := quoted["SECTION"]
		if section == "" {
			section = quoted["SECT"]
		}
		if section == "" {
			section = quoted["FRAMEPROP"]
		}

		nums := map[string]float64{}
		rawNums := map[string]string{}
		for _, kv := range reLANumber.FindAllStringSubmatch(tail, -1) {
			name := strings.ToUpper(kv[1])
			nums[name] = floatOrZero(kv[2])
			rawNums[name] = kv[2]
		}

		entry, ok := byKey[k]
		if !ok {
			entry = &LineAssign{Line: k.line, Story: k.story}
			byKey[k] = entry
			m.LineAssigns = append(m.LineAssigns, entry)
		}

		if section != "" && entry.Section == "" {
			entry.Section = section
		}
		if v, ok := nums["LENGTHOFFI"]; ok {
			entry.LengthOffI = &v
		}
		if v, ok := nums["LENGTHOFFJ"]; ok {
			entry.LengthOffJ = &v
		}
		if o := offsetsFrom(nums, "I"); o != nil {
			entry.OffsetsI = o
		}
		if o := offsetsFrom(nums, "J"); o != nil {
			entry.OffsetsJ = o
		}

		if len(quoted) > 0 || len(rawNums) > 0 {
			if entry.Extra == nil {
				entry.Extra = map[string]string{}
			}
			for name, v := range quoted {
				entry.Extra[name] = v
			}
			for name, v := range rawNums {
				entry.Extra[name] = v
			}
		}
	}
}

func offsetsFrom(nums map[string]float64, end string) *Offsets {
	var o Offsets
	any := false
	if v, ok := nums["OFFSETX"+end]; ok {
		o.X, any = &v, true
	}
	if v, ok := nums["OFFSETY"+end]; ok {
		o.Y, any = &v, true
	}
	if v, ok := nums["OFFSETZ"+end]; ok {
		o.Z, any = &v, true
	}
	if !any {
		return nil
	}
	return &o
}

// parseMaterials merges the multi-line MATERIAL definitions. Every
// recognized token contributes to the named record regardless of which
// line carries it, so single-line exports merge identically.
func parseMaterials(m *Model, body string) {
	for _, ln := range contentLines(body) {
		g := reMatHead.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		name, tail := g[1], g[2]
		mat, ok := m.Materials.Properties[name]
		if !ok {
			mat = &Material{Name: name}
			m.Materials.Properties[name] = mat
		}
		if v := reMatType.FindStringSubmatch(tail); v != nil {
			mat.Type = v[1]
		}
		if v := reMatSym.FindStringSubmatch(tail); v != nil {
			mat.SymType = v[1]
		}
		if v := reMatHys.FindStringSubmatch(tail); v != nil {
			mat.HysType = v[1]
		}
		if v := reMatWeight.FindStringSubmatch(tail); v != nil {
			mat.WeightPerVolume = floatOrZero(v[1])
		}
		if v := reMatE.FindStringSubmatch(tail); v != nil {
			mat.E = floatOrZero(v[1])
		}
		if v := reMatU.FindStringSubmatch(tail); v != nil {
			mat.Poisson = floatOrZero(v[1])
		}
		if v := reMatA.FindStringSubmatch(tail); v != nil {
			mat.ThermalCoeff = floatOrZero(v[1])
		}
		if v := reMatFye.FindStringSubmatch(tail); v != nil {
			mat.Fye = floatOrZero(v[1])
		}
		if v := reMatFue.FindStringSubmatch(tail); v != nil {
			mat.Fue = floatOrZero(v[1])
		}
		if v := reMatFy.FindStringSubmatch(tail); v != nil {
			mat.Fy = floatOrZero(v[1])
		}
		if v := reMatFu.FindStringSubmatch(tail); v != nil {
			mat.Fu = floatOrZero(v[1])
		}
		if v := reMatFc.FindStringSubmatch(tail); v != nil {
			mat.Fc = floatOrZero(v[1])
		}
	}
	for name, mat := range m.Materials.Properties {
		switch t := strings.ToLower(mat.Type); {
		case strings.Contains(t, "steel"):
			m.Materials.Steel[name] = mat
		case strings.Contains(t, "concrete"):
			m.Materials.Concrete[name] = mat
		}
	}
}

func parseFrameSections(m *Model, body string) {
	for _, ln := range contentLines(body) {
		g := reFSHead.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		name, tail := g[1], g[2]
		fs, ok := m.FrameSections[name]
		if !ok {
			fs = FrameSection{Name: name}
		}
		if v := reFSMaterial.FindStringSubmatch(tail); v != nil {
			fs.Material = v[1]
		}
		if v := reFSShape.FindStringSubmatch(tail); v != nil {
			fs.Shape = v[1]
		}
		if v := reFSDepth.FindStringSubmatch(tail); v != nil {
			d := floatOrZero(v[1])
			fs.Dims.D = &d
		}
		if v := reFSWidth.FindStringSubmatch(tail); v != nil {
			b := floatOrZero(v[1])
			fs.Dims.B = &b
		}
		if v := reFSJMod.FindStringSubmatch(tail); v != nil {
			if fs.Modifiers == nil {
				fs.Modifiers = map[string]float64{}
			}
			fs.Modifiers["JMOD"] = floatOrZero(v[1])
		}
		if v := reFSNotional.FindStringSubmatch(tail); v != nil {
			if fs.Modifiers == nil {
				fs.Modifiers = map[string]float64{}
			}
			fs.Modifiers["NOTIONALUSERVALUE"] = floatOrZero(v[1])
		}
		m.FrameSections[name] = fs
	}
}

func parseSprings(m *Model, body string) {
	for _, ln := range contentLines(body) {
		g := reSpringHead.FindStringSubmatch(ln)
		if g == nil {
			continue
		}
		name, tail := g[1], g[2]
		sp, ok := m.SpringProps[name]
		if !ok {
			sp = SpringProp{Name: name}
		}
		for _, kv := range reSpringDOF.FindAllStringSubmatch(tail, -1) {
			v := floatOrZero(kv[2])
			switch strings.ToUpper(kv[1]) {
			case "UX":
				sp.UX = v
			case "UY":
				sp.UY = v
			case "UZ":
				sp.UZ = v
			case "RX":
				sp.RX = v
			case "RY":
				sp.RY = v
			case "RZ":
				sp.RZ = v
			}
		}
		m.SpringProps[name] = sp
	}
}
