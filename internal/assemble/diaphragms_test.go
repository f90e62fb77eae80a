package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/ops"
)

const diaphragmFixture = `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
  STORY "Base"  ELEV 0

$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
  POINT "3"  5 5
  POINT "4"  0 5

$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D1"
  POINTASSIGN "2"  "Roof"  DIAPH "D1"
  POINTASSIGN "3"  "Roof"  DIAPH "D1"
  POINTASSIGN "4"  "Roof"  DIAPH "D1"
  POINTASSIGN "1"  "Base"  RESTRAINT "UX UY UZ RX RY RZ"
  POINTASSIGN "2"  "Base"  RESTRAINT "UX UY UZ RX RY RZ"

$ DIAPHRAGM NAMES
  DIAPHRAGM "D1"
`

func diaphragmContext(t *testing.T, text string) (*Context, DiaphragmsReport, *ops.Recorder) {
	t.Helper()
	ctx, rec := testContext(t, text, config.Default())
	_, err := Nodes(ctx)
	require.NoError(t, err)
	_, err = Restraints(ctx)
	require.NoError(t, err)
	rep, err := Diaphragms(ctx)
	require.NoError(t, err)
	return ctx, rep, rec
}

func TestDiaphragmsCreatesMasterAndTie(t *testing.T) {
	ctx, rep, rec := diaphragmContext(t, diaphragmFixture)

	assert.Equal(t, 1, rep.Created)
	// the base story carries supports and is excluded
	assert.Equal(t, []string{"story has supports"}, skipReasons(rep.Skips))

	require.Len(t, ctx.Graph.Diaphragms, 1)
	d := ctx.Graph.Diaphragms[0]
	assert.Equal(t, "Roof", d.Story)
	// master tag is minted above every existing node tag
	assert.Equal(t, 4001, d.Master)
	assert.Equal(t, []int{1000, 2000, 3000, 4000}, d.Slaves)

	mn, ok := ctx.Graph.Node(d.Master)
	require.True(t, ok)
	assert.Equal(t, model.KindDiaphragmMaster, mn.Kind)
	assert.InDelta(t, 2.5, mn.X, 1e-12)
	assert.InDelta(t, 2.5, mn.Y, 1e-12)
	assert.InDelta(t, 3.0, mn.Z, 1e-12)

	// slab mass proxy: 5×5 hull, default thickness and density
	wantM := 2500.0 * 0.10 * 25.0
	assert.InDelta(t, wantM, d.Mass.M, 1e-9)
	assert.InDelta(t, 100.0*wantM, d.Mass.Izz, 1e-9)
	assert.InDelta(t, 25.0, d.Mass.Area, 1e-12)
	assert.True(t, d.Mass.Applied)
	assert.True(t, d.Fix.Applied)

	require.Len(t, rec.Masses, 1)
	assert.Equal(t, d.Master, rec.Masses[0].Tag)
	assert.InDelta(t, wantM, rec.Masses[0].Values[0], 1e-9)
	assert.InDelta(t, wantM, rec.Masses[0].Values[1], 1e-9)
	assert.Equal(t, 0.0, rec.Masses[0].Values[2])
	assert.InDelta(t, 100.0*wantM, rec.Masses[0].Values[5], 1e-9)

	var masterFix bool
	for _, f := range rec.Fixes {
		if f.Tag == d.Master {
			masterFix = true
			// out-of-plane DOFs restrained, in-plane free
			assert.Equal(t, [6]int{0, 0, 1, 1, 1, 0}, f.Mask)
		}
	}
	assert.True(t, masterFix, "master fix missing")

	require.Len(t, rec.Diaphragms, 1)
	assert.Equal(t, 3, rec.Diaphragms[0].PerpDirn)
	assert.Equal(t, d.Master, rec.Diaphragms[0].Master)
	assert.Equal(t, d.Slaves, rec.Diaphragms[0].Slaves)
}

func TestDiaphragmsAllOrNothing(t *testing.T) {
	fixture := `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
  POINT "3"  5 5
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D1"
  POINTASSIGN "2"  "Roof"  DIAPH "D1"
  POINTASSIGN "3"  "Roof"
$ DIAPHRAGM NAMES
  DIAPHRAGM "D1"
`
	_, rep, rec := diaphragmContext(t, fixture)

	assert.Equal(t, 0, rep.Created)
	assert.Contains(t, skipReasons(rep.Skips), "mixed or missing diaphragm labels (all-or-nothing)")
	assert.Empty(t, rec.Diaphragms)
}

func TestDiaphragmsDisconnectedOptsOut(t *testing.T) {
	fixture := `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D1"
  POINTASSIGN "2"  "Roof"  DIAPH "DISCONNECTED"
$ DIAPHRAGM NAMES
  DIAPHRAGM "D1"
`
	_, rep, _ := diaphragmContext(t, fixture)

	assert.Equal(t, 0, rep.Created)
	assert.Contains(t, skipReasons(rep.Skips), "mixed or missing diaphragm labels (all-or-nothing)")
}

func TestDiaphragmsUnknownLabel(t *testing.T) {
	fixture := `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D9"
  POINTASSIGN "2"  "Roof"  DIAPH "D9"
$ DIAPHRAGM NAMES
  DIAPHRAGM "D1"
`
	_, rep, _ := diaphragmContext(t, fixture)

	assert.Equal(t, 0, rep.Created)
	assert.Contains(t, skipReasons(rep.Skips), "label not in diaphragm catalogue")
}

func TestDiaphragmsNoCatalogueAcceptsLabels(t *testing.T) {
	fixture := `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D9"
  POINTASSIGN "2"  "Roof"  DIAPH "D9"
`
	_, rep, _ := diaphragmContext(t, fixture)
	assert.Equal(t, 1, rep.Created)
}

func TestDiaphragmsNeedsTwoCandidates(t *testing.T) {
	fixture := `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
$ POINT COORDINATES
  POINT "1"  0 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D1"
`
	_, rep, _ := diaphragmContext(t, fixture)

	assert.Equal(t, 0, rep.Created)
	assert.Contains(t, skipReasons(rep.Skips), "fewer than 2 candidate nodes")
}

func TestDiaphragmsEmptyStory(t *testing.T) {
	fixture := `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
  STORY "Base"  ELEV 0
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"  DIAPH "D1"
  POINTASSIGN "2"  "Roof"  DIAPH "D1"
`
	_, rep, _ := diaphragmContext(t, fixture)

	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, []string{"no active points"}, skipReasons(rep.Skips))
}

func TestAttachInterfaces(t *testing.T) {
	ctx, _, _ := diaphragmContext(t, diaphragmFixture)

	// an interface node on the roof plane, one off it, one unplaced
	for _, n := range []model.Node{
		{Tag: 1_500_000_100, X: 1, Y: 1, Z: 3, Kind: model.KindRigidInterface, Story: "Roof"},
		{Tag: 1_500_000_102, X: 1, Y: 1, Z: 1.5, Kind: model.KindRigidInterface, Story: "Roof"},
		{Tag: 1_500_000_104, X: 1, Y: 1, Z: 3, Kind: model.KindRigidInterface},
	} {
		_, _, err := ctx.Graph.EnsureNode(n)
		require.NoError(t, err)
	}

	added := AttachInterfaces(ctx)
	assert.Equal(t, 1, added)

	d := ctx.Graph.Diaphragms[0]
	assert.Equal(t, []int{1000, 2000, 3000, 4000, 1_500_000_100}, d.Slaves)

	// a second pass finds nothing new
	assert.Equal(t, 0, AttachInterfaces(ctx))
	assert.Len(t, ctx.Graph.Diaphragms[0].Slaves, 5)
}
