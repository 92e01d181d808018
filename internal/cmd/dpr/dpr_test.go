package dpr_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dprcmd "github.com/KirkDiggler/dnd-dpr/internal/cmd/dpr"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
)

func parse(t *testing.T, args ...string) (dprcmd.Config, error) {
	t.Helper()
	t.Setenv("DPR_ACCURACY_MODE", "")
	fs := flag.NewFlagSet("dpr", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return dprcmd.ParseConfig(fs, args)
}

func TestParseConfig(t *testing.T) {
	cfg, err := parse(t, "-preset", "TWF Rogue", "-preset", "GWM Paladin", "-band", "boss", "-format", "json", "-all-bands")
	require.NoError(t, err)
	assert.Equal(t, []string{"TWF Rogue", "GWM Paladin"}, cfg.Presets)
	assert.Equal(t, "boss", cfg.Band)
	assert.Equal(t, dprcmd.FormatJSON, cfg.Format)
	assert.True(t, cfg.AllBands)

	_, err = parse(t, "-format", "xml")
	assert.True(t, dnderr.IsInvalidParameter(err))

	_, err = parse(t, "-band", "deadly")
	assert.True(t, dnderr.IsInvalidParameter(err))

	_, err = parse(t, "-nope")
	assert.Error(t, err)
}

func TestRun_TableForPresets(t *testing.T) {
	var out bytes.Buffer
	err := dprcmd.Run(context.Background(), dprcmd.Config{
		Format:  dprcmd.FormatTable,
		Presets: []string{"Baseline Rogue", "TWF Rogue"},
	}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Band: equal")
	assert.Contains(t, text, "Baseline Rogue")
	assert.Contains(t, text, "(1.00)")
	// header plus one row per level
	assert.Equal(t, difficulty.Levels+2, strings.Count(text, "\n"))
}

func TestRun_JSONAllBands(t *testing.T) {
	var out bytes.Buffer
	err := dprcmd.Run(context.Background(), dprcmd.Config{
		Format:   dprcmd.FormatJSON,
		AllBands: true,
		Presets:  []string{"TWF Rogue"},
	}, &out)
	require.NoError(t, err)

	var decoded []reports.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, len(difficulty.Bands()))
	assert.Equal(t, difficulty.BandIgnore, decoded[3].Band)
	assert.Len(t, decoded[0].Series[0].Raw, difficulty.Levels)
}

func TestRun_InputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
band: half
inputs:
  - build: barbarian
    weapon: greataxe
    variant: gwm
  - label: Broken
    build: fighter
    variant: hexblade
`), 0o600))

	var out bytes.Buffer
	err := dprcmd.Run(context.Background(), dprcmd.Config{File: path, Format: dprcmd.FormatTable}, &out)
	require.Error(t, err)
	assert.True(t, dnderr.IsUnsupportedVariant(err))
	assert.Equal(t, 1, dprcmd.ExitCode(err))

	text := out.String()
	assert.Contains(t, text, "Band: half")
	assert.Contains(t, text, "Failures:")
	assert.Contains(t, text, "Broken level 1")

	// the flag wins over the file
	out.Reset()
	_ = dprcmd.Run(context.Background(), dprcmd.Config{File: path, Band: "boss", Format: dprcmd.FormatTable}, &out)
	assert.Contains(t, out.String(), "Band: boss")
}

func TestRun_Errors(t *testing.T) {
	err := dprcmd.Run(context.Background(), dprcmd.Config{}, io.Discard)
	assert.True(t, dnderr.IsInvalidParameter(err))
	assert.Equal(t, 2, dprcmd.ExitCode(err))

	err = dprcmd.Run(context.Background(), dprcmd.Config{Presets: []string{"Tarrasque"}}, io.Discard)
	assert.True(t, dnderr.IsNotFound(err))

	err = dprcmd.Run(context.Background(), dprcmd.Config{File: filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard)
	assert.Error(t, err)
	assert.Equal(t, 1, dprcmd.ExitCode(err))
}

func TestRun_ListPresets(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dprcmd.Run(context.Background(), dprcmd.Config{ListPresets: true}, &out))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "GWM Paladin")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, dprcmd.ExitCode(nil))
	assert.Equal(t, 0, dprcmd.ExitCode(flag.ErrHelp))
	assert.Equal(t, 2, dprcmd.ExitCode(dnderr.Validation("bad")))
}
