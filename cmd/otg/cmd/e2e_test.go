package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetConvertFlags restores flag state between test runs; cobra keeps the
// package-level variables across Execute calls.
func resetConvertFlags(out string) {
	convertOutput = out
	convertMTL = ""
	convertTriangulate = false
	boardThickness = 1.6
	copperThickness = 0.035
	soldermaskThickness = 0.025
	silkscreenThickness = 0.020
	skipTopCopper = false
	skipBottomCopper = false
	skipTopSoldermask = false
	skipBottomSoldermask = false
	skipTopSilkscreen = false
	skipBottomSilkscreen = false
	skipDrills = false
	verbose = false
}

func TestConvertE2E(t *testing.T) {
	dir := t.TempDir()
	gtl := writeFixture(t, dir, "board.gtl",
		"%FSLAX24Y24*%\n%MOMM*%\n%ADD10C,0.254*%\nD10*\n"+
			"X0Y0D02*\nX100000Y0D01*\nX100000Y100000D01*\nM02*\n")
	drl := writeFixture(t, dir, "board.drl", "METRIC\nT1C0.8\nT1\nX5.0Y5.0\n")
	out := filepath.Join(dir, "board.obj")

	resetConvertFlags(out)
	rootCmd.SetArgs([]string{"convert", gtl, drl, "-o", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	obj := string(data)
	assert.Contains(t, obj, "o Top_Copper")
	assert.Contains(t, obj, "o Drill_Holes")
	assert.Contains(t, obj, "o PCB_Substrate")
	assert.True(t, strings.Contains(obj, "\nv "))
	assert.True(t, strings.Contains(obj, "\nf "))
}

func TestConvertE2EWithMTL(t *testing.T) {
	dir := t.TempDir()
	gtl := writeFixture(t, dir, "board.gtl",
		"%FSLAX24Y24*%\n%MOMM*%\n%ADD10C,0.254*%\nD10*\nX0Y0D02*\nX100000Y0D01*\n")
	out := filepath.Join(dir, "board.obj")
	mtl := filepath.Join(dir, "board.mtl")

	resetConvertFlags(out)
	rootCmd.SetArgs([]string{"convert", gtl, "-o", out, "--mtl", mtl, "--triangulate"})
	require.NoError(t, rootCmd.Execute())

	objData, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(objData), "mtllib "+mtl)

	mtlData, err := os.ReadFile(mtl)
	require.NoError(t, err)
	assert.Contains(t, string(mtlData), "newmtl Top_Copper_mat")
}

func TestConvertE2ENoRecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	txt := writeFixture(t, dir, "notes.txt", "nothing")

	resetConvertFlags(filepath.Join(dir, "out.obj"))
	rootCmd.SetArgs([]string{"convert", txt})
	assert.Error(t, rootCmd.Execute())
}
