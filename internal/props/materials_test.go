package props

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/e2k"
)

func TestElasticModulus(t *testing.T) {
	// fc' = 30 MPa: Ec = 4700·√30 MPa
	assert.InDelta(t, 4700*math.Sqrt(30)*1e6, ElasticModulus(30e6), 1)

	assert.Equal(t, 0.0, ElasticModulus(0))
	assert.Equal(t, 0.0, ElasticModulus(-5e6))
}

func TestShearModulus(t *testing.T) {
	assert.InDelta(t, 1e10, ShearModulus(24e9, 0.2), 1e-3)
}

func TestMaterialsDerivation(t *testing.T) {
	cat := e2k.Materials{
		Concrete: map[string]*e2k.Material{
			"C30": {Name: "C30", Fc: 30e6, WeightPerVolume: 24000},
			"BAD": {Name: "BAD", Fc: 0},
			"NIL": nil,
		},
	}
	out := Materials(cat)

	require.Len(t, out, 1)
	mv := out["C30"]
	assert.Equal(t, 30e6, mv.Fc)
	assert.InDelta(t, ElasticModulus(30e6), mv.E, 1e-6)
	assert.Equal(t, PoissonConcrete, mv.Poisson)
	assert.InDelta(t, mv.E/2.4, mv.G, 1e-6)
	assert.Equal(t, 24000.0, mv.WeightPerVolume)
}
