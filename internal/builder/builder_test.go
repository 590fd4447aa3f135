package builder

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/polydocs/internal/config"
	"git.home.luguber.info/inful/polydocs/internal/errors"
	"git.home.luguber.info/inful/polydocs/internal/history"
	"git.home.luguber.info/inful/polydocs/internal/merge"
	"git.home.luguber.info/inful/polydocs/internal/selection"
)

// fakeTool records invocations and optionally fails builds of configured
// languages.
type fakeTool struct {
	metadataCalls []string
	buildCalls    []string
	failOn        string // scratch dir name whose build fails
	failCode      int
}

func (f *fakeTool) Metadata(_ context.Context, configPath string) error {
	f.metadataCalls = append(f.metadataCalls, configPath)
	return nil
}

func (f *fakeTool) Build(_ context.Context, configPath string) error {
	f.buildCalls = append(f.buildCalls, configPath)
	if f.failOn != "" && filepath.Base(filepath.Dir(configPath)) == f.failOn {
		return errors.ToolFailed(os.ErrInvalid, "build", f.failCode)
	}
	return nil
}

func testSetup(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	en := filepath.Join(root, "en")
	require.NoError(t, os.MkdirAll(filepath.Join(en, "manual"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(en, "index.md"), []byte("# Welcome\n\nHi.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(en, "manual", "intro.md"), []byte("# Intro\n\nText.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(en, "docfx.json"),
		[]byte(`{"build": {"dest": "../_site/en"}}`), 0o644))

	cfg := &config.Config{
		Settings: config.Settings{DocsRoot: root, SiteDir: "_site", Tool: "docfx"},
		Languages: []config.Language{
			{Code: "en", Name: "English", Enabled: true, Primary: true},
			{Code: "fr", Name: "French", Enabled: true, NotTranslated: "Not yet translated"},
			{Code: "ja", Name: "Japanese", Enabled: true, NotTranslated: "未翻訳"},
			{Code: "de", Name: "German", Enabled: false},
		},
	}
	return cfg
}

func TestRun_BatchBuildsAllInDeclarationOrder(t *testing.T) {
	cfg := testSetup(t)
	tool := &fakeTool{}

	err := New(cfg, tool).Run(context.Background(), selection.Batch())
	require.NoError(t, err)

	require.Len(t, tool.metadataCalls, 1, "batch mode regenerates API metadata")

	var built []string
	for _, call := range tool.buildCalls {
		built = append(built, filepath.Base(filepath.Dir(call)))
	}
	assert.Equal(t, []string{"en", "fr_tmp", "ja_tmp"}, built,
		"primary first, then enabled secondaries in declaration order; disabled skipped")
}

func TestRun_SecondaryBuildUsesPatchedConfig(t *testing.T) {
	cfg := testSetup(t)
	tool := &fakeTool{}

	sel := selection.Selection{Kind: selection.KindLanguage, Language: "fr"}
	require.NoError(t, New(cfg, tool).Run(context.Background(), sel))

	require.Len(t, tool.buildCalls, 1)
	assert.Equal(t, "fr_tmp", filepath.Base(filepath.Dir(tool.buildCalls[0])))
}

func TestRun_FailedBuildRemovesWorkingTreeAndStops(t *testing.T) {
	cfg := testSetup(t)
	tool := &fakeTool{failOn: "fr_tmp", failCode: 2}

	err := New(cfg, tool).Run(context.Background(), selection.Batch())
	require.Error(t, err)
	assert.Equal(t, 2, errors.ExitCode(err), "tool exit code forwarded verbatim")

	// fr failed, so ja was never attempted: fail-fast.
	var built []string
	for _, call := range tool.buildCalls {
		built = append(built, filepath.Base(filepath.Dir(call)))
	}
	assert.Equal(t, []string{"en", "fr_tmp"}, built)

	// The failing language's scratch directory was still removed.
	_, statErr := os.Stat(merge.ScratchPath(cfg.Settings.DocsRoot, "fr"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_SkipAPIRemovesGeneratedMetadata(t *testing.T) {
	cfg := testSetup(t)
	apiDir := filepath.Join(cfg.Settings.DocsRoot, "en", "api")
	require.NoError(t, os.MkdirAll(apiDir, 0o750))

	manifest, err := json.Marshal(map[string]string{"Example.Type": "Example.Type.yml"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(apiDir, ".manifest"), manifest, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(apiDir, "Example.Type.yml"), []byte("uid: Example.Type\n"), 0o644))

	tool := &fakeTool{}
	sel := selection.Selection{Kind: selection.KindPrimary, IncludeAPI: false}
	require.NoError(t, New(cfg, tool).Run(context.Background(), sel))

	assert.Empty(t, tool.metadataCalls)
	_, statErr := os.Stat(filepath.Join(apiDir, "Example.Type.yml"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(apiDir, ".manifest"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_NonBuildSelectionsAreNoOps(t *testing.T) {
	cfg := testSetup(t)
	tool := &fakeTool{}

	b := New(cfg, tool)
	require.NoError(t, b.Run(context.Background(), selection.Selection{Kind: selection.KindServe}))
	require.NoError(t, b.Run(context.Background(), selection.Selection{Kind: selection.KindCancel}))
	assert.Empty(t, tool.buildCalls)
	assert.Empty(t, tool.metadataCalls)
}

func TestRun_RecordsHistory(t *testing.T) {
	cfg := testSetup(t)
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	tool := &fakeTool{failOn: "ja_tmp", failCode: 3}
	runErr := New(cfg, tool, WithHistory(store)).Run(context.Background(), selection.Batch())
	require.Error(t, runErr)

	recs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	byLang := map[string]history.Record{}
	for _, rec := range recs {
		byLang[rec.Language] = rec
	}
	assert.Equal(t, history.OutcomeSuccess, byLang["en"].Outcome)
	assert.Equal(t, history.OutcomeSuccess, byLang["fr"].Outcome)
	assert.Equal(t, history.OutcomeFailed, byLang["ja"].Outcome)
	assert.Equal(t, 3, byLang["ja"].ExitCode)
}
