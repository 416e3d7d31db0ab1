package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/geom"
)

func TestWriteOBJ(t *testing.T) {
	rect := Rect(geom.Point2D{}, 2, 2, 0, 1)
	objects := []Object{
		{Name: "Top_Copper", Material: "Top_Copper_mat", Solids: []Solid{rect}},
		{Name: "Bottom_Copper", Material: "Bottom_Copper_mat", Solids: []Solid{rect}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, objects, "board.mtl"))
	out := buf.String()

	assert.Contains(t, out, "mtllib board.mtl")
	assert.Contains(t, out, "o Top_Copper")
	assert.Contains(t, out, "usemtl Top_Copper_mat")
	assert.Contains(t, out, "o Bottom_Copper")

	assert.Equal(t, 16, strings.Count(out, "\nv "), "8 vertices per rect solid")
	assert.Equal(t, 12, strings.Count(out, "\nf "), "6 faces per rect solid")

	// The second object's faces must index past the first object's vertices.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var faceLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "f ") {
			faceLines = append(faceLines, line)
		}
	}
	require.Len(t, faceLines, 12)
	assert.Equal(t, "f 1 2 3 4", faceLines[0], "indices are 1-based")
	assert.Equal(t, "f 9 10 11 12", faceLines[6], "second solid offsets by 8")
}

func TestWriteOBJWithoutMTL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, nil, ""))
	assert.NotContains(t, buf.String(), "mtllib")
}

func TestWriteMTL(t *testing.T) {
	materials := []Material{
		{Name: "Top_Copper_mat", Diffuse: [3]float64{0.8, 0.5, 0.2}, Alpha: 1.0, Metallic: true},
		{Name: "Top_Soldermask_mat", Diffuse: [3]float64{0.0, 0.3, 0.0}, Alpha: 0.8},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMTL(&buf, materials))
	out := buf.String()

	assert.Contains(t, out, "newmtl Top_Copper_mat")
	assert.Contains(t, out, "Kd 0.8000 0.5000 0.2000")
	assert.Contains(t, out, "Ns 250.0")
	assert.Contains(t, out, "newmtl Top_Soldermask_mat")
	assert.Contains(t, out, "d 0.8000", "translucent soldermask carries a dissolve value")
	assert.NotContains(t, out, "d 1.0000", "opaque materials omit dissolve")
}
