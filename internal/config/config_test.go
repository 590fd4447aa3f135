package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "languages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
settings:
  tool: docfx
languages:
  - code: en
    name: English
    enabled: true
    primary: true
  - code: fr
    name: French
    enabled: true
    not_translated: "Pas encore traduit."
  - code: ja
    enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Primary().Code)
	assert.Equal(t, "docfx", cfg.Settings.Tool)
	assert.Equal(t, "_site", cfg.Settings.SiteDir, "defaults applied")

	secs := cfg.Secondaries()
	require.Len(t, secs, 1, "disabled languages are not build candidates")
	assert.Equal(t, "fr", secs[0].Code)
	assert.Equal(t, "Pas encore traduit.", secs[0].NotTranslated)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "languages: [::not yaml")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("DOCS_TOOL", "docfx-beta")
	path := writeConfig(t, `
settings:
  tool: ${DOCS_TOOL}
languages:
  - code: en
    enabled: true
    primary: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docfx-beta", cfg.Settings.Tool)
}

func TestNormalize_CodeCaseAndDisplayName(t *testing.T) {
	cfg := &Config{Languages: []Language{
		{Code: " FR ", Enabled: true},
		{Code: "en", Name: "English", Enabled: true, Primary: true},
	}}

	require.NoError(t, Normalize(cfg))
	assert.Equal(t, "fr", cfg.Languages[0].Code)
	assert.Equal(t, "French", cfg.Languages[0].Name, "display name derived from tag")
	assert.Equal(t, "English", cfg.Languages[1].Name, "explicit name preserved")
}

func TestNormalize_RejectsInvalidTag(t *testing.T) {
	cfg := &Config{Languages: []Language{{Code: "no t a tag", Enabled: true, Primary: true}}}
	require.Error(t, Normalize(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		langs   []Language
		wantErr string
	}{
		{
			name:  "exactly one primary",
			langs: []Language{{Code: "en", Enabled: true, Primary: true}, {Code: "fr", Enabled: true}},
		},
		{
			name:    "no languages",
			wantErr: "no languages",
		},
		{
			name:    "no primary",
			langs:   []Language{{Code: "en", Enabled: true}, {Code: "fr", Enabled: true}},
			wantErr: "no primary",
		},
		{
			name:    "multiple primaries",
			langs:   []Language{{Code: "en", Enabled: true, Primary: true}, {Code: "fr", Enabled: true, Primary: true}},
			wantErr: "expected exactly one",
		},
		{
			name:    "disabled primary",
			langs:   []Language{{Code: "en", Enabled: false, Primary: true}},
			wantErr: "disabled",
		},
		{
			name:    "duplicate codes",
			langs:   []Language{{Code: "en", Enabled: true, Primary: true}, {Code: "en", Enabled: true}},
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Config{Languages: tt.langs})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Primary().Code)

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
