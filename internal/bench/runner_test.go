package bench

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/stressgen/internal/config"
	"pkg.jsn.cam/stressgen/internal/logging"
	"pkg.jsn.cam/stressgen/internal/manifest"
	"pkg.jsn.cam/stressgen/pkg/storage"
	"pkg.jsn.cam/stressgen/pkg/stressgen"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.Seed = seed(2024)
	return cfg
}

func seed(v uint64) *uint64 { return &v }

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_WritesBothOutputs(t *testing.T) {
	cfg := testConfig(t)

	run, err := NewRunner(logging.NewNop()).Run(cfg)
	require.NoError(t, err)

	brackets := readFile(t, cfg.BracketsPath())
	require.NotEmpty(t, brackets)
	assert.True(t, strings.HasPrefix(brackets, "["))
	assert.True(t, strings.HasSuffix(brackets, "]"))
	assert.NoError(t, stressgen.CheckBracketDocument(brackets))

	tags := readFile(t, cfg.TagsPath())
	require.NotEmpty(t, tags)
	assert.True(t, strings.HasPrefix(tags, "<"))
	assert.True(t, strings.HasSuffix(tags, ">"))
	assert.NoError(t, stressgen.CheckTagDocument(tags))

	require.Len(t, run.Outputs, 2)
	assert.Equal(t, "brackets", run.Outputs[0].Name)
	assert.Equal(t, int64(len(brackets)), run.Outputs[0].Bytes)
	assert.Equal(t, "tags", run.Outputs[1].Name)
	assert.Equal(t, int64(len(tags)), run.Outputs[1].Bytes)
	assert.Equal(t, *cfg.Seed, run.Seed)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
}

func TestRun_SameSeedSameOutput(t *testing.T) {
	first := testConfig(t)
	second := testConfig(t)

	r := NewRunner(logging.NewNop())
	a, err := r.Run(first)
	require.NoError(t, err)
	b, err := r.Run(second)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	for i := range a.Outputs {
		assert.Equal(t, a.Outputs[i].SHA256, b.Outputs[i].SHA256, a.Outputs[i].Name)
	}
	assert.Equal(t, readFile(t, first.TagsPath()), readFile(t, second.TagsPath()))
}

func TestRun_RandomSeedIsReplayable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Seed = nil
	cfg.Brackets.MaxDepth, cfg.Brackets.Parallel = 20, 50
	cfg.Tags.MaxDepth, cfg.Tags.AllowedChildren = 10, 50

	r := NewRunner(logging.NewNop())
	first, err := r.Run(cfg)
	require.NoError(t, err)

	cfg.Seed = seed(first.Seed)
	replay, err := r.Run(cfg)
	require.NoError(t, err)

	for i := range first.Outputs {
		assert.Equal(t, first.Outputs[i].SHA256, replay.Outputs[i].SHA256)
	}
}

func TestRun_TruncatesExistingFiles(t *testing.T) {
	cfg := testConfig(t)
	stale := strings.Repeat("x", 1<<20)
	require.NoError(t, os.WriteFile(cfg.TagsPath(), []byte(stale), 0644))

	_, err := NewRunner(logging.NewNop()).Run(cfg)
	require.NoError(t, err)

	assert.NoError(t, stressgen.CheckTags(readFile(t, cfg.TagsPath())))
}

func TestRun_MissingOutputDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = filepath.Join(cfg.OutputDir, "benches")

	_, err := NewRunner(logging.NewNop()).Run(cfg)
	require.ErrorIs(t, err, ErrWriteOutput)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "output dir should not be created")
}

func TestRun_CreateDirs(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = filepath.Join(cfg.OutputDir, "nested", "benches")
	cfg.CreateDirs = true

	_, err := NewRunner(logging.NewNop()).Run(cfg)
	require.NoError(t, err)

	assert.FileExists(t, cfg.BracketsPath())
	assert.FileExists(t, cfg.TagsPath())
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Brackets.MaxDepth = -1

	_, err := NewRunner(logging.NewNop()).Run(cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.NoFileExists(t, cfg.TagsPath())
}

func TestRun_RecordsManifest(t *testing.T) {
	cfg := testConfig(t)
	store, err := manifest.NewStore(storage.NewMemoryBackend())
	require.NoError(t, err)

	run, err := NewRunner(logging.NewNop(), WithManifest(store)).Run(cfg)
	require.NoError(t, err)

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Seed, got.Seed)
	require.Len(t, got.Outputs, 2)
	assert.Equal(t, cfg.BracketsPath(), got.Outputs[0].Path)
	assert.Equal(t, 100, got.Outputs[0].MaxDepth)
	assert.Equal(t, 2000.0, got.Outputs[1].Budget)
}

func TestRun_Progress(t *testing.T) {
	cfg := testConfig(t)

	var progress bytes.Buffer
	_, err := NewRunner(logging.NewNop(), WithProgress(&progress)).Run(cfg)
	require.NoError(t, err)

	assert.NotZero(t, progress.Len())
	assert.NoError(t, stressgen.CheckBalanced(readFile(t, cfg.BracketsPath())))
}

func TestRun_SeedZeroIsPinned(t *testing.T) {
	first := testConfig(t)
	first.Seed = seed(0)
	second := testConfig(t)
	second.Seed = seed(0)

	r := NewRunner(logging.NewNop())
	a, err := r.Run(first)
	require.NoError(t, err)
	b, err := r.Run(second)
	require.NoError(t, err)

	assert.Zero(t, a.Seed)
	assert.Zero(t, b.Seed)
	for i := range a.Outputs {
		assert.Equal(t, a.Outputs[i].SHA256, b.Outputs[i].SHA256, a.Outputs[i].Name)
	}
}

func TestRun_RejectsUnboundedBudget(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tags.AllowedChildren = math.Inf(1)

	_, err := NewRunner(logging.NewNop()).Run(cfg)
	require.ErrorIs(t, err, stressgen.ErrBudgetLimit)
	assert.NoFileExists(t, cfg.BracketsPath())
}
