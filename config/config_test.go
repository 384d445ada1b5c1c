package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/blockdom/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, syntax.Markdown, cfg.Input)
	assert.Equal(t, syntax.XHTML, cfg.Output)
	assert.True(t, cfg.Enabled("macro"))
	assert.Equal(t, 6, cfg.Toc.Depth)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
input: html
output: txt
transformations: [linkcheck]
macros:
  strict: true
linkcheck:
  strict: true
  schemes: [https]
render:
  width: 72
trace: Debug
`))
	require.NoError(t, err)
	assert.Equal(t, syntax.XHTML, cfg.Input)
	assert.Equal(t, syntax.Plain, cfg.Output)
	assert.False(t, cfg.Enabled("macro"))
	assert.True(t, cfg.Enabled("linkcheck"))
	assert.True(t, cfg.Macros.Strict)
	assert.Equal(t, []string{"toc", "footnote"}, cfg.Macros.Enabled, "defaults survive")
	assert.Equal(t, []string{"https"}, cfg.LinkCheck.Schemes)
	assert.Equal(t, 72, cfg.Render.Width)
	assert.Equal(t, "debug", cfg.Trace)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"plain input", "input: plain"},
		{"unknown output", "output: docx"},
		{"unknown transformation", "transformations: [spellcheck]"},
		{"unknown macro", "macros: {enabled: [calendar]}"},
		{"negative depth", "toc: {depth: -1}"},
		{"trace level", "trace: verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.True(t, errors.Is(err, ErrInvalid), "expected invalid configuration, is %v", err)
		})
	}
	_, err := Parse([]byte("input: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockdom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: xml\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, syntax.XML, cfg.Output)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
