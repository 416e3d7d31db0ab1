package gerber

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/geom"
)

const testHeader = "%FSLAX24Y24*%\n%MOMM*%\n"

func TestParseApertureTable(t *testing.T) {
	layer := ParseString(testHeader +
		"%ADD10C,0.254*%\n" +
		"%ADD11R,1.5X2.0*%\n" +
		"%ADD12O,2.0X1.0*%\n")

	require.Len(t, layer.Apertures, 3)

	ap, ok := layer.ApertureFor(10)
	require.True(t, ok)
	assert.Equal(t, ShapeCircle, ap.Shape)
	assert.Equal(t, []float64{0.254}, ap.Params)

	ap, ok = layer.ApertureFor(11)
	require.True(t, ok)
	assert.Equal(t, ShapeRectangle, ap.Shape)
	assert.Equal(t, []float64{1.5, 2.0}, ap.Params)

	ap, ok = layer.ApertureFor(12)
	require.True(t, ok)
	assert.Equal(t, ShapeObround, ap.Shape)
}

func TestParseModalCoordinates(t *testing.T) {
	// Move to (5,5), then draw with only X given: Y must persist, not reset.
	layer := ParseString(testHeader +
		"%ADD10C,0.254*%\n" +
		"D10*\n" +
		"X50000Y50000D02*\n" +
		"X300000D01*\n")

	require.Len(t, layer.Paths, 1)
	seg := layer.Paths[0]
	assert.Equal(t, geom.Point2D{X: 5, Y: 5}, seg.Start)
	assert.InDelta(t, 30.0, seg.End.X, 1e-9)
	assert.InDelta(t, 5.0, seg.End.Y, 1e-9, "omitted Y must reuse the prior position")
	assert.Equal(t, 10, seg.Aperture)
}

func TestParseFlashMovesCurrentPosition(t *testing.T) {
	// D03 updates the current point, so the next draw starts at the flash.
	layer := ParseString(testHeader +
		"%ADD10C,1.0*%\n" +
		"D10*\n" +
		"X10000Y20000D03*\n" +
		"X50000Y20000D01*\n")

	require.Len(t, layer.Flashes, 1)
	assert.Equal(t, geom.Point2D{X: 1, Y: 2}, layer.Flashes[0].Position)

	require.Len(t, layer.Paths, 1)
	assert.Equal(t, geom.Point2D{X: 1, Y: 2}, layer.Paths[0].Start)
}

func TestParseRegionClosure(t *testing.T) {
	layer := ParseString(testHeader +
		"G36*\n" +
		"X0Y0D02*\n" +
		"X100000Y0D01*\n" +
		"X100000Y100000D01*\n" +
		"X0Y100000D01*\n" +
		"G37*\n")

	require.Len(t, layer.Regions, 1)
	require.Len(t, layer.Regions[0], 3, "only D01 points accumulate; the D02 move does not")
	assert.Equal(t, geom.Point2D{X: 10, Y: 0}, layer.Regions[0][0])
	assert.Equal(t, geom.Point2D{X: 10, Y: 10}, layer.Regions[0][1])
	assert.Equal(t, geom.Point2D{X: 0, Y: 10}, layer.Regions[0][2])
	assert.Empty(t, layer.Paths, "region points must not also become path segments")
}

func TestParseRegionTooShort(t *testing.T) {
	layer := ParseString(testHeader +
		"G36*\n" +
		"X0Y0D01*\n" +
		"X100000Y0D01*\n" +
		"G37*\n")

	assert.Empty(t, layer.Regions, "two points cannot close a polygon")
	assert.Equal(t, 1, layer.Stats.RegionsDropped)
}

func TestParseUnterminatedRegion(t *testing.T) {
	layer := ParseString(testHeader +
		"G36*\n" +
		"X0Y0D01*\n" +
		"X100000Y0D01*\n" +
		"X100000Y100000D01*\n")

	assert.Empty(t, layer.Regions, "unterminated region at EOF is dropped")
	assert.Equal(t, 1, layer.Stats.RegionsDropped)
}

func TestParseFormatAndUnitSetOnce(t *testing.T) {
	layer := ParseString(
		"%FSLAX24Y24*%\n" +
			"%FSLAX35Y35*%\n" + // second format directive must not win
			"%MOIN*%\n" +
			"%MOMM*%\n") // second unit directive must not win

	assert.Equal(t, FormatSpec{IntegerDigits: 2, DecimalDigits: 4}, layer.Format)
	assert.Equal(t, InchesToMM, layer.UnitScale)
}

func TestParseDefaults(t *testing.T) {
	layer := ParseString("X10000Y10000D02*\nX20000Y10000D01*\n")

	assert.Equal(t, FormatSpec{IntegerDigits: 2, DecimalDigits: 4}, layer.Format)
	assert.Equal(t, 1.0, layer.UnitScale, "metric by default")
	require.Len(t, layer.Paths, 1)
	assert.Equal(t, NoAperture, layer.Paths[0].Aperture)
}

func TestParseInchUnits(t *testing.T) {
	layer := ParseString("%FSLAX24Y24*%\n%MOIN*%\nX10000Y0D02*\nX20000Y0D01*\n")

	require.Len(t, layer.Paths, 1)
	assert.InDelta(t, 25.4, layer.Paths[0].Start.X, 1e-9)
	assert.InDelta(t, 50.8, layer.Paths[0].End.X, 1e-9)
}

func TestParseReservedApertureCodes(t *testing.T) {
	// D-codes below 10 are reserved; selecting them changes nothing.
	layer := ParseString(testHeader +
		"%ADD10C,0.254*%\n" +
		"D10*\n" +
		"D05*\n" +
		"X10000Y10000D02*\n" +
		"X20000Y10000D01*\n")

	require.Len(t, layer.Paths, 1)
	assert.Equal(t, 10, layer.Paths[0].Aperture, "reserved code must not displace the selection")
}

func TestParseIgnoresUnrecognizedLines(t *testing.T) {
	layer := ParseString(testHeader +
		"G04 this is a comment*\n" +
		"G01*\n" +
		"G75*\n" +
		"M02*\n" +
		"total garbage\n")

	assert.Empty(t, layer.Paths)
	assert.Empty(t, layer.Flashes)
	assert.Empty(t, layer.Regions)
}

func TestParseSkippedDirectivesCounted(t *testing.T) {
	layer := ParseString("%AMMACRO*%\n%LPD*%\n%ADD10C,0.254*%\n")

	assert.Equal(t, 2, layer.Stats.DirectivesSkipped)
	assert.Len(t, layer.Apertures, 1)
}

func TestParseReaderAndInvalidBytes(t *testing.T) {
	content := testHeader + "%ADD10C,0.5*%\nD10*\nX0Y0D02*\nX10000Y0D01*\n"
	// Inject undecodable bytes; they are discarded, not fatal.
	content = "\xff\xfe" + content

	layer, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, layer.Paths, 1)
	assert.InDelta(t, 1.0, layer.Paths[0].End.X, 1e-9)
}

func TestClassifyLineExclusive(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"%ADD10C,0.254*%", lineExtended},
		{"%MOMM*%", lineExtended},
		{"G36*", lineRegionStart},
		{"G37*", lineRegionEnd},
		{"D10*", lineSelectAperture},
		{"D02*", lineSelectAperture}, // classified as select, rejected as reserved
		{"X100Y200D01*", lineUnknown},
		{"G04 comment*", lineUnknown},
		{"M02*", lineUnknown},
		{"Dabc*", lineUnknown},
		{"", lineUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyLine(tt.line), tt.line)
	}
}

func TestOperationDetection(t *testing.T) {
	assert.Equal(t, opDraw, operationOn("X100Y200D01*"))
	assert.Equal(t, opMove, operationOn("X100Y200D02*"))
	assert.Equal(t, opFlash, operationOn("X100Y200D03*"))
	assert.Equal(t, opNone, operationOn("D10*"))
	assert.Equal(t, opNone, operationOn("G04 nothing*"))
}
