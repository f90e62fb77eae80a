package assemble

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/logging"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/ops"
	"github.com/dmirandah/e2kops/internal/props"
	"github.com/dmirandah/e2kops/internal/story"
	"github.com/dmirandah/e2kops/internal/tag"
)

// testContext builds a stage context over a parsed fixture, with a
// recorder standing in for the backend.
func testContext(t *testing.T, text string, cfg config.Config) (*Context, *ops.Recorder) {
	t.Helper()
	raw := e2k.Parse(text)
	sg, err := story.Build(raw, cfg.Tolerances.Eps)
	require.NoError(t, err)

	rec := ops.NewRecorder()
	return &Context{
		Cfg:    cfg,
		Raw:    raw,
		Story:  sg,
		Graph:  model.NewGraph(),
		Domain: rec,
		Props:  props.NewResolver(raw, cfg.PropsDefaults()),
		Alloc:  tag.NewAllocator(),
		Log:    logging.NewNop(),
	}, rec
}

func skipReasons(skips []model.Skip) []string {
	out := make([]string, 0, len(skips))
	for _, s := range skips {
		out = append(out, s.Reason)
	}
	return out
}
