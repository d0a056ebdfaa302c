package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saf/completers/internal/cerrors"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 10, cfg.PollIntervalMs)
	assert.Equal(t, " \t", cfg.WordBoundaries)
	assert.Equal(t, []string{"fs", "git"}, cfg.Completers)
	assert.Equal(t, uint32(1), cfg.Scoring.LetterMatch)
	assert.Equal(t, uint32(2), cfg.Scoring.WordStartBonus)
	assert.Equal(t, uint32(3), cfg.Scoring.SubsequentBonus)
	assert.Equal(t, 4, cfg.Fs.DepthLimit)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yml", `
page_size: 20
scoring:
  letter_match: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, uint32(5), cfg.Scoring.LetterMatch)
	// Untouched keys keep their defaults.
	assert.Equal(t, uint32(2), cfg.Scoring.WordStartBonus)
	assert.Equal(t, []string{"fs", "git"}, cfg.Completers)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
page_size = 5
completers = ["num"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, []string{"num"}, cfg.Completers)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"fs": {"depth_limit": 2}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Fs.DepthLimit)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.ini", "page_size = 3")

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *cerrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "CONFIG_ERROR", cfgErr.Code())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"zero page size", "page_size: 0", "page_size"},
		{"zero poll interval", "poll_interval_ms: 0", "poll_interval_ms"},
		{"empty boundaries", `word_boundaries: ""`, "word_boundaries"},
		{"no completers", "completers: []", "completers"},
		{"unknown completer", "completers: [svn]", "completers"},
		{"negative depth", "fs: {depth_limit: -1}", "fs.depth_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.yml", tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var valErr *cerrors.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestEngineParams(t *testing.T) {
	cfg := Default()
	params := cfg.EngineParams()

	assert.Equal(t, 10, params.PageSize)
	assert.EqualValues(t, 1, params.Scoring.LetterMatch)
	assert.EqualValues(t, 2, params.Scoring.WordStartBonus)
	assert.EqualValues(t, 3, params.Scoring.SubsequentBonus)
}

func TestValidateWithSchema_Valid(t *testing.T) {
	result, err := ValidateWithSchema("config.yml", []byte(`
page_size: 15
completers: [fs]
`))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateWithSchema_UnknownKey(t *testing.T) {
	result, err := ValidateWithSchema("config.yml", []byte("chooser_height: 12"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
}

func TestValidateWithSchema_BadValues(t *testing.T) {
	result, err := ValidateWithSchema("config.json", []byte(`{"page_size": 0, "completers": ["svn"]}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.GreaterOrEqual(t, len(result.Errors), 2)
}

func TestValidateWithSchema_SyntaxError(t *testing.T) {
	result, err := ValidateWithSchema("config.yml", []byte("page_size: [unclosed"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "syntax", result.Errors[0].Field)
}

func TestPollInterval(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(10), cfg.PollInterval().Milliseconds())
}
