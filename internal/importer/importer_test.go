package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/domain/discount"
)

func writeGz(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func line(code string) string {
	return code + ",10,100,0,2025-01-01T00:00:00Z,2026-01-01T00:00:00Z"
}

func codes(r *Result) []string {
	var out []string
	for _, c := range r.Codes {
		out = append(out, c.Code)
	}
	return out
}

func TestParseLine(t *testing.T) {
	c, err := ParseLine(" summer25 , 25.5 , 50 , 250000 , 2025-06-01T00:00:00Z , 2025-09-01T00:00:00Z ")
	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", c.Code)
	assert.Equal(t, "25.5", c.Percentage.String())
	assert.Equal(t, 50, c.UsageLimit)
	assert.Equal(t, "250000", c.MinimumOrderAmount.String())
	assert.True(t, c.IsActive)
	assert.Zero(t, c.UsedCount)
}

func TestParseLine_Invalid(t *testing.T) {
	for _, tt := range []struct {
		name, line string
	}{
		{"FieldCount", "CODE,10,100"},
		{"Percentage", "CODE,abc,100,0,2025-01-01T00:00:00Z,2026-01-01T00:00:00Z"},
		{"PercentageRange", "CODE,150,100,0,2025-01-01T00:00:00Z,2026-01-01T00:00:00Z"},
		{"Limit", "CODE,10,many,0,2025-01-01T00:00:00Z,2026-01-01T00:00:00Z"},
		{"ZeroLimit", "CODE,10,0,0,2025-01-01T00:00:00Z,2026-01-01T00:00:00Z"},
		{"Start", "CODE,10,100,0,yesterday,2026-01-01T00:00:00Z"},
		{"EndBeforeStart", "CODE,10,100,0,2026-01-01T00:00:00Z,2025-01-01T00:00:00Z"},
		{"NegativeMinimum", "CODE,10,100,-1,2025-01-01T00:00:00Z,2026-01-01T00:00:00Z"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	a := writeGz(t, dir, "a.gz", "# campaign A", line("ALPHA"), "", line("SHARED"), line("alpha"))
	b := writeGz(t, dir, "b.gz", line("BRAVO"), line("shared"))
	c := writeGz(t, dir, "c.gz", line("CHARLIE"), line("SHARED"))

	res, err := Scan(context.Background(), []string{a, b, c}, Options{Capacity: 100})
	require.NoError(t, err)

	assert.Equal(t, []string{"ALPHA", "BRAVO", "CHARLIE"}, codes(res))
	assert.Equal(t, map[string][]int{"SHARED": {0, 1, 2}}, res.Duplicates)
}

func TestScan_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	a := writeGz(t, dir, "a.gz", line("ALPHA"), "BROKEN,10")

	_, err := Scan(context.Background(), []string{a}, Options{})
	var le *LineError
	require.True(t, errors.As(err, &le), "got %v", err)
	assert.Equal(t, 2, le.Line)
	assert.Equal(t, a, le.File)
}

func TestScan_MissingFile(t *testing.T) {
	_, err := Scan(context.Background(), []string{filepath.Join(t.TempDir(), "nope.gz")}, Options{})
	assert.Error(t, err)
}

func TestMerge_IgnoresOneSidedHits(t *testing.T) {
	// File 0 saw a false positive for X in file 1's filter; file 1 never
	// flagged X, so X stays.
	res := merge([]fileScan{
		{codes: mustCodes(t, "X"), shared: map[string]uint{"X": 1}},
		{codes: mustCodes(t, "Y")},
	})
	assert.Equal(t, []string{"X", "Y"}, codes(res))
	assert.Empty(t, res.Duplicates)
}

func mustCodes(t *testing.T, names ...string) []*discount.Code {
	t.Helper()
	var out []*discount.Code
	for _, n := range names {
		c, err := ParseLine(line(n))
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}
