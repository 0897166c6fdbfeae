package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	c, err := Parse(`
Listen = ":9000"
Advertise = false
Width = 1024
HistoryLimit = 50
Debug = true
`)
	require.NoError(t, err)
	assert.Equal(":9000", c.Listen)
	assert.False(c.Advertise)
	assert.Equal(1024, c.Width)
	assert.Equal(600, c.Height, "unset keys keep their defaults")
	assert.Equal(1.5, c.PageScale)
	assert.Equal(50, c.HistoryLimit)
	assert.True(c.Debug)
	assert.Equal("_localpaint._tcp", c.Service)
	assert.Equal(16, c.MaxSessions)
	assert.Equal(256<<20, c.HistoryBytes())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(`Width = 0`)
	assert.Error(t, err)
	_, err = Parse(`PageScale = -1.0`)
	assert.Error(t, err)
	_, err = Parse(`Listen = ""`)
	assert.Error(t, err)
	_, err = Parse(`MaxSessions = -1`)
	assert.Error(t, err)
	_, err = Parse(`Width = "wide"`)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(Default(), c)

	c, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(Default(), c)

	path := filepath.Join(t.TempDir(), "localpaint.toml")
	require.NoError(t, os.WriteFile(path, []byte("Height = 480\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(480, c.Height)
	assert.Equal(800, c.Width)
}

func TestDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
