package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"catalog", "--config", ""}, &out))

	assert.Contains(t, out.String(), "(19 bodies)")
	assert.Contains(t, out.String(), "  Sun r=0.70 central\n")
	assert.Contains(t, out.String(), "    Moon r=")
}

func TestFailedCommandStillBuildsLogger(t *testing.T) {
	logger = nil
	missing := filepath.Join(t.TempDir(), "missing.toml")

	err := execute([]string{"catalog", "--config", missing}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.NotNil(t, logger)
}
