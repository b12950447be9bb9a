package ridership

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// getFixturePath returns the absolute path to a file in the repository's testdata directory.
func getFixturePath(t *testing.T, name string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return absPath
}

func loadFixture(t *testing.T) *Dataset {
	t.Helper()

	ds, err := LoadFile(getFixturePath(t, "ridership_small.csv"))
	require.NoError(t, err)
	return ds
}

type testRow struct {
	date   string
	counts [ModeCount]int64
	pct    [ModeCount]float64
}

func csvHeader() string {
	cols := []string{DateColumn}
	for _, m := range AllModes() {
		cols = append(cols, m.RawColumn(), m.RawPctColumn())
	}
	return strings.Join(cols, ",")
}

// buildCSV renders rows in the published column layout.
func buildCSV(rows ...testRow) string {
	var b strings.Builder
	b.WriteString(csvHeader())
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(r.date)
		for _, m := range AllModes() {
			b.WriteByte(',')
			b.WriteString(strconv.FormatInt(r.counts[m], 10))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(r.pct[m], 'f', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func loadRows(t *testing.T, rows ...testRow) *Dataset {
	t.Helper()

	ds, err := Load(strings.NewReader(buildCSV(rows...)))
	require.NoError(t, err)
	return ds
}

func counts(subways, buses int64) [ModeCount]int64 {
	var c [ModeCount]int64
	c[Subways] = subways
	c[Buses] = buses
	return c
}
