package application

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/encoder-go/pkg/util/merr"
)

const appConfig = `
logging:
  report:
    level: debug
    file:
      rootpath: %s
      filename: report.log
profiles:
  - name: report
    base: json-ordered
    unsupported: [nan]
  - name: json
    base: json
    literals:
      none: nil
`

func writeConfig(t *testing.T) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "encoder.yaml")
	content := []byte(fmt.Sprintf(appConfig, dir))
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestRunWithConfig(t *testing.T) {
	app := New(WithConfigFile(writeConfig(t)), WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, app.Run())
	require.NotNil(t, app.Config())

	assert.Equal(t, []string{"json", "json-ordered", "report", "xml"}, app.Encoders())

	enc, ok := app.Encoder("json")
	require.True(t, ok)
	out, err := enc.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "nil", out)

	report, ok := app.Encoder("report")
	require.True(t, ok)
	out, err = report.Encode(map[string]int{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, out)

	assert.NotNil(t, app.Logger("report"))
	assert.NotNil(t, app.Logger("unknown"))

	_, ok = app.Encoder("missing")
	assert.False(t, ok)
}

func TestRunWithoutConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(configPathEnv, "")

	app := New(WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, app.Run())
	assert.Nil(t, app.Config())
	assert.Equal(t, []string{"json", "json-ordered", "xml"}, app.Encoders())

	xml, ok := app.Encoder("xml")
	require.True(t, ok)
	out, err := xml.Encode(true)
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestRunConfigFromEnv(t *testing.T) {
	t.Setenv(configPathEnv, writeConfig(t))
	app := New(WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, app.Run())
	_, ok := app.Encoder("report")
	assert.True(t, ok)
}

func TestRunMissingExplicitConfig(t *testing.T) {
	app := New(WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.ErrorIs(t, app.Run(), merr.ErrIoFailed)
}

func TestRunInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  - name: x\n    base: toml\n"), 0o600))
	app := New(WithConfigFile(path), WithRegisterer(prometheus.NewRegistry()))
	assert.ErrorIs(t, app.Run(), merr.ErrParameterInvalid)
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("APP_TEST_BOOL", "yes")
	assert.True(t, getenvBool("APP_TEST_BOOL", false))
	t.Setenv("APP_TEST_BOOL", "off")
	assert.False(t, getenvBool("APP_TEST_BOOL", true))
	t.Setenv("APP_TEST_BOOL", "maybe")
	assert.True(t, getenvBool("APP_TEST_BOOL", true))
	assert.Equal(t, "def", getenvDefault("APP_TEST_UNSET", "def"))
}
