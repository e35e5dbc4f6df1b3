package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctf_calc/ctf"
)

func TestRunCSV(t *testing.T) {
	dir := t.TempDir()
	o := options{
		materialsPath:     filepath.Join("testdata", "materials.csv"),
		constructionsPath: filepath.Join("testdata", "constructions.csv"),
		reportPath:        filepath.Join(dir, "report.txt"),
		exportPath:        filepath.Join(dir, "ctf.csv"),
	}
	cfg, err := ctf.LoadConfig(filepath.Join("testdata", "ctf.ini"))
	require.NoError(t, err)

	require.NoError(t, run(cfg, o))

	report, err := os.ReadFile(o.reportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(report), "! <Construction CTF>,"))
	assert.Contains(t, string(report), " Construction CTF,Exterior Wall,   1,   4,")
	assert.Contains(t, string(report), " Construction CTF,Slab,   2,   1,")
	assert.Contains(t, string(report), " Material:Air,Air Gap,")
	assert.NotContains(t, string(report), "Roof Board")

	export, err := os.ReadFile(o.exportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(export), "construction,time_step,term,"))
	// unused constructions are still exported
	assert.Contains(t, string(export), "Roof Board,0.25,0,")
}

func TestRunYAMLWithoutReport(t *testing.T) {
	dir := t.TempDir()
	o := options{
		inputPath:  filepath.Join("testdata", "model.yaml"),
		reportPath: filepath.Join(dir, "report.txt"),
	}
	require.NoError(t, run(ctf.DefaultConfig(), o))

	report, err := os.ReadFile(o.reportPath)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestLoadConstructionsArguments(t *testing.T) {
	_, err := loadConstructions(options{})
	assert.Error(t, err)

	_, err = loadConstructions(options{inputPath: "model.json"})
	assert.Error(t, err)
}
