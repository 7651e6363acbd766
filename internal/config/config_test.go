package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8321", cfg.Addr)
	assert.Equal(t, "tablekit.db", cfg.Database)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Empty(t, cfg.Prefix)
	assert.False(t, cfg.Verbose)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tablekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\npage_size: 25\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 25, cfg.PageSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, "tablekit.db", cfg.Database)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tablekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 25\n"), 0o644))

	t.Setenv("TABLEKIT_PAGE_SIZE", "50")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TABLEKIT_ADDR", ":7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", "", "listen address")
	flags.Int("page-size", 0, "rows per page")
	require.NoError(t, flags.Parse([]string{"--addr", ":6000", "--page-size", "5"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, 5, cfg.PageSize)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", "", "listen address")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":8321", cfg.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_RejectsBadPageSize(t *testing.T) {
	t.Setenv("TABLEKIT_PAGE_SIZE", "0")
	_, err := Load("", nil)
	require.Error(t, err)
}
