package viper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Format string            `mapstructure:"format"`
	Sort   bool              `mapstructure:"sort"`
	Extra  map[string]string `mapstructure:"extra"`
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encoder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  format: xml\n  sort: true\n"), 0o600))

	c := New()
	require.NoError(t, c.LoadFile(path))

	var s sample
	require.NoError(t, c.UnmarshalKey("profile", &s))
	assert.Equal(t, "xml", s.Format)
	assert.True(t, s.Sort)
	assert.True(t, c.IsSet("profile.format"))
	assert.False(t, c.IsSet("profile.missing"))
}

func TestLoadReaderJSON(t *testing.T) {
	c := New(WithDefault("sort", true))
	require.NoError(t, c.LoadReader(strings.NewReader(`{"format":"json","extra":{"k":"v"}}`), "json"))

	var s sample
	require.NoError(t, c.Unmarshal(&s))
	assert.Equal(t, "json", s.Format)
	assert.True(t, s.Sort)
	assert.Equal(t, map[string]string{"k": "v"}, s.Extra)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VIPERTEST_FORMAT", "xml")
	c := New(WithEnvPrefix("VIPERTEST"))
	require.NoError(t, c.LoadReader(strings.NewReader("format: json\n"), "yaml"))

	var s sample
	require.NoError(t, c.Unmarshal(&s))
	assert.Equal(t, "xml", s.Format)
}

func TestNilViper(t *testing.T) {
	c := &Config{}
	var s sample
	assert.NoError(t, c.Unmarshal(&s))
	assert.NoError(t, c.UnmarshalKey("x", &s))
	assert.False(t, c.IsSet("x"))
}
