package story

import "github.com/dmirandah/e2kops/internal/e2k"

// Elevations resolves the absolute elevation of every story from the
// top-to-bottom records. The base story is the first one carrying an
// explicit ELEV within eps of zero; when none does, the last record is
// the base. Heights accumulate upward and downward from the base, and an
// explicit ELEV overrides the accumulated value at that story (the walk
// continues from the override).
func Elevations(stories []e2k.StoryRecord, eps float64) map[string]float64 {
	if len(stories) == 0 {
		return map[string]float64{}
	}

	baseIdx := -1
	for i, s := range stories {
		if s.Elev != nil && abs(*s.Elev) < eps {
			baseIdx = i
			break
		}
	}
	if baseIdx < 0 {
		baseIdx = len(stories) - 1
	}

	elev := make(map[string]float64, len(stories))
	base := stories[baseIdx]
	if base.Elev != nil {
		elev[base.Name] = *base.Elev
	} else {
		elev[base.Name] = 0
	}

	last := baseIdx
	for i := baseIdx - 1; i >= 0; i-- {
		s := stories[i]
		z := elev[stories[last].Name] + height(s)
		if s.Elev != nil {
			z = *s.Elev
		}
		elev[s.Name] = z
		last = i
	}
	for i := baseIdx + 1; i < len(stories); i++ {
		upper := stories[i-1]
		s := stories[i]
		z := elev[upper.Name] - height(upper)
		if s.Elev != nil {
			z = *s.Elev
		}
		elev[s.Name] = z
	}
	return elev
}

func height(s e2k.StoryRecord) float64 {
	if s.Height == nil {
		return 0
	}
	return *s.Height
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
