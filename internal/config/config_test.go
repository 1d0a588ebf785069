package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/gradecast/internal/discovery"
)

// chdirTemp resets viper and moves into a fresh directory so no stray
// config files are picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
	return tmpDir
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ".", config.Root)
	assert.Equal(t, discovery.DefaultPatterns, config.Patterns)
	assert.Equal(t, "console", config.Format)
	assert.Equal(t, "error", config.FailOn)
	assert.Empty(t, config.Output)
	assert.False(t, config.FollowSymlinks)
	assert.False(t, config.Quiet)
	assert.False(t, config.Verbose)
	assert.True(t, config.Color)
	assert.Equal(t, 50.0, config.Hurdle)
}

func TestLoadConfigFromJSON(t *testing.T) {
	dir := chdirTemp(t)

	configData := map[string]any{
		"root":           "/custom/root",
		"patterns":       []string{"terms/*.yaml"},
		"followSymlinks": true,
		"format":         "json",
		"output":         "report.json",
		"failOn":         "warning",
		"quiet":          true,
		"color":          false,
		"hurdle":         40,
	}
	jsonData, err := json.MarshalIndent(configData, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.json"), jsonData, 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/custom/root", config.Root)
	assert.Equal(t, []string{"terms/*.yaml"}, config.Patterns)
	assert.True(t, config.FollowSymlinks)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "report.json", config.Output)
	assert.Equal(t, "warning", config.FailOn)
	assert.True(t, config.Quiet)
	assert.False(t, config.Color)
	assert.Equal(t, 40.0, config.Hurdle)
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yamlContent := `
root: /yaml/root
format: markdown
verbose: true
hurdle: 45.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.yaml"), []byte(yamlContent), 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/yaml/root", config.Root)
	assert.Equal(t, "markdown", config.Format)
	assert.True(t, config.Verbose)
	assert.Equal(t, 45.5, config.Hurdle)
}

func TestLoadConfigYMLExtension(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.yml"), []byte("root: /yml/root\n"), 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/yml/root", config.Root)
}

func TestLoadConfigRootPathOverride(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.yaml"), []byte("root: /config/root\n"), 0644))

	config, err := LoadConfig("/override/root")
	require.NoError(t, err)
	assert.Equal(t, "/override/root", config.Root)
}

func TestLoadConfigEnvironmentVariables(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GRADECAST_ROOT", "/env/root")
	t.Setenv("GRADECAST_FAILON", "warning")
	t.Setenv("GRADECAST_QUIET", "true")
	t.Setenv("GRADECAST_HURDLE", "35")
	t.Setenv("GRADECAST_COLOR", "false")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/env/root", config.Root)
	assert.Equal(t, "warning", config.FailOn)
	assert.True(t, config.Quiet)
	assert.Equal(t, 35.0, config.Hurdle)
	assert.False(t, config.Color)
}

func TestLoadConfigConfigFilePriority(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.json"), []byte(`{"root": "/json/root"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.yaml"), []byte("root: /yaml/root\n"), 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/json/root", config.Root)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "format", content: "format: xml\n", wantErr: "invalid format: xml"},
		{name: "fail-on", content: "failOn: suggestion\n", wantErr: "invalid fail-on level: suggestion"},
		{name: "hurdle above range", content: "hurdle: 120\n", wantErr: "hurdle must be between 0 and 100"},
		{name: "negative hurdle", content: "hurdle: -5\n", wantErr: "hurdle must be between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, ".gradecastrc.yaml"), []byte(tt.content), 0644))

			_, err := LoadConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := Config{Format: "json", FailOn: "error", Hurdle: 0}
	assert.NoError(t, validateConfig(&valid), "non-console format without output writes to stdout")

	edge := Config{Format: "console", FailOn: "warning", Hurdle: 100}
	assert.NoError(t, validateConfig(&edge))
}
