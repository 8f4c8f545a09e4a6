package rttview

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, 50, cfg.View.Window)
	assert.Equal(t, 5*time.Second, cfg.View.Interval)
	assert.Empty(t, cfg.View.Tags)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "rttview-*.yaml")
	require.NoError(t, err)
	_, err = tmp.WriteString(`
serial:
  port: /dev/ttyUSB1
view:
  window: 10
  tags: [ranger, button]
`)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	cfg, err := Load(tmp.Name())
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, 10, cfg.View.Window)
	assert.Equal(t, 5*time.Second, cfg.View.Interval)
	assert.Equal(t, []string{"ranger", "button"}, cfg.View.Tags)
}

func TestLoadZeroValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial:\n  baud: 0\nview:\n  window: -3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, 50, cfg.View.Window)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Serial.Port = "COM4"
	cfg.View.Tags = []string{"ranger"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
