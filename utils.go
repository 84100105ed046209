package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"quadrant/chart"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// selectedPointText is the status line form of a selected point.
func selectedPointText(p chart.Snapshot) string {
	return fmt.Sprintf("Selected Point: Key=%s, X=%s, Y=%s, Summary=%s",
		p.Key, formatValue(p.X), formatValue(p.Y), p.Summary)
}

// pointClipboardText is a tab separated row that pastes into a sheet.
func pointClipboardText(p chart.Snapshot, xLabel, yLabel string) string {
	header := strings.Join([]string{"Key", xLabel, yLabel, "Summary"}, "\t")
	row := strings.Join([]string{p.Key, formatValue(p.X), formatValue(p.Y), p.Summary}, "\t")
	return header + "\n" + row
}

func listXlsxFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *model) scanXlsxFiles() {
	m.fileList = []string{}
	m.selectedFileIndex = -1

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	files, err := listXlsxFiles(dir)
	if err != nil {
		m.logger.Warn("scan directory", "dir", dir, "err", err)
		return
	}
	m.fileList = files
	if len(files) > 0 {
		m.selectedFileIndex = 0
		m.filename = files[0]
	}
}

func withExtension(filename, ext string) string {
	if strings.EqualFold(filepath.Ext(filename), ext) {
		return filename
	}
	return filename + ext
}
