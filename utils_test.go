package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quadrant/chart"
)

func TestSelectedPointText(t *testing.T) {
	p := chart.Snapshot{Key: "A", X: 12.3, Y: 8, Summary: "alpha"}
	assert.Equal(t, "Selected Point: Key=A, X=12.3, Y=8, Summary=alpha", selectedPointText(p))
}

func TestListXlsxFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.XLSX", "~$a.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.xlsx"), 0755))

	files, err := listXlsxFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.XLSX", "b.xlsx"}, files)
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "out.xlsx", withExtension("out", ".xlsx"))
	assert.Equal(t, "out.XLSX", withExtension("out.XLSX", ".xlsx"))
	assert.Equal(t, "chart.png", withExtension("chart", ".png"))
}
