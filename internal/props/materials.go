package props

import (
	"math"

	"github.com/dmirandah/e2kops/internal/e2k"
)

// PoissonConcrete is the Poisson ratio assumed for all concrete.
const PoissonConcrete = 0.2

// ElasticModulus returns the ACI 318 modulus for normal-weight
// concrete, Ec = 4700·√(fc') with fc' in MPa, converted back to Pa.
func ElasticModulus(fcPa float64) float64 {
	if fcPa <= 0 {
		return 0
	}
	fcMPa := fcPa / 1e6
	return 4700 * math.Sqrt(fcMPa) * 1e6
}

// ShearModulus returns G for an isotropic elastic material.
func ShearModulus(e, poisson float64) float64 {
	return e / (2 * (1 + poisson))
}

// Materials derives elastic constants for every concrete material in
// the catalogue. Materials without a usable fc are left out.
func Materials(cat e2k.Materials) map[string]MaterialValues {
	out := make(map[string]MaterialValues, len(cat.Concrete))
	for name, m := range cat.Concrete {
		if m == nil || m.Fc <= 0 {
			continue
		}
		e := ElasticModulus(m.Fc)
		out[name] = MaterialValues{
			Name:            name,
			Fc:              m.Fc,
			E:               e,
			Poisson:         PoissonConcrete,
			G:               ShearModulus(e, PoissonConcrete),
			WeightPerVolume: m.WeightPerVolume,
		}
	}
	return out
}
