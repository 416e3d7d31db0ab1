// Package excellon parses Excellon drill files into hole positions and
// diameters. Like the Gerber parser it is best-effort: unrecognized lines
// contribute nothing and a parse always returns whatever was accumulated.
package excellon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/geom"
)

// Excellon files default to inches unless a METRIC directive is seen.
const InchesToMM = 25.4

// FallbackDiameter is used for holes whose selected tool was never
// registered with a T<n>C<d> definition, in mm.
const FallbackDiameter = 0.8

// Tool is one T<n>C<d> definition. Diameter is scaled to mm using the unit
// scale in effect at registration time.
type Tool struct {
	Number   int
	Diameter float64
}

// Hole is one drilled position with its resolved diameter in mm.
type Hole struct {
	Position geom.Point2D
	Diameter float64
}

// ParseStats counts silently dropped input.
type ParseStats struct {
	HolesDropped int // X/Y lines seen before any tool selection
}

// DrillFile is the result of one Excellon parse.
type DrillFile struct {
	Tools []Tool
	Holes []Hole
	Stats ParseStats
}

var (
	toolDefRe = regexp.MustCompile(`^T(\d+)C([\d.]+)`)
	xFieldRe  = regexp.MustCompile(`X([+-]?[\d.]+)`)
	yFieldRe  = regexp.MustCompile(`Y([+-]?[\d.]+)`)
)

// ParseFile reads and parses one drill file.
func ParseFile(filename string) (*DrillFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse consumes a whole Excellon stream. Tool selection is modal: the
// current tool applies to every subsequent hole until another T<n> line.
// Unit directives may appear more than once; the last one seen wins for
// everything scaled after it.
func Parse(r io.Reader) (*DrillFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseString(string(bytes.ToValidUTF8(data, nil))), nil
}

// ParseString parses drill content held in memory.
func ParseString(content string) *DrillFile {
	df := &DrillFile{}
	diameters := make(map[int]float64)
	currentTool := 0 // tool numbers start at 1; 0 means none selected
	unitScale := InchesToMM

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "METRIC":
			unitScale = 1.0
			continue
		case "INCH":
			unitScale = InchesToMM
			continue
		}

		if m := toolDefRe.FindStringSubmatch(line); m != nil {
			number, _ := strconv.Atoi(m[1])
			diameter, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			diameter *= unitScale
			diameters[number] = diameter
			df.Tools = append(df.Tools, Tool{Number: number, Diameter: diameter})
			continue
		}

		if strings.HasPrefix(line, "T") && isDigits(line[1:]) {
			currentTool, _ = strconv.Atoi(line[1:])
			continue
		}

		if strings.HasPrefix(line, "X") && strings.Contains(line, "Y") {
			xm := xFieldRe.FindStringSubmatch(line)
			ym := yFieldRe.FindStringSubmatch(line)
			if xm == nil || ym == nil {
				continue
			}
			if currentTool == 0 {
				df.Stats.HolesDropped++
				continue
			}
			x, errX := strconv.ParseFloat(xm[1], 64)
			y, errY := strconv.ParseFloat(ym[1], 64)
			if errX != nil || errY != nil {
				continue
			}
			diameter, ok := diameters[currentTool]
			if !ok {
				diameter = FallbackDiameter
			}
			df.Holes = append(df.Holes, Hole{
				Position: geom.Point2D{X: x * unitScale, Y: y * unitScale},
				Diameter: diameter,
			})
		}
	}

	return df
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
