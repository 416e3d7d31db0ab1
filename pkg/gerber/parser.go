package gerber

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

// lineKind classifies one input line into exactly one directive class.
// The classes are mutually exclusive by prefix; operation detection (D01/
// D02/D03) is a separate, independent check on the same line.
type lineKind int

const (
	lineUnknown lineKind = iota
	lineExtended        // %...% extended command block
	lineSelectAperture  // D<code>* aperture selection
	lineRegionStart     // G36
	lineRegionEnd       // G37
)

// classifyLine assigns a line to its directive class. Unrecognized lines are
// lineUnknown, which is not an error: forward-compatible skip.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "%"):
		return lineExtended
	case strings.HasPrefix(line, "G36"):
		return lineRegionStart
	case strings.HasPrefix(line, "G37"):
		return lineRegionEnd
	case strings.HasPrefix(line, "D") && isDigits(strings.TrimSuffix(line[1:], "*")):
		return lineSelectAperture
	}
	return lineUnknown
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

// opCode is the operation found on a line, if any.
type opCode int

const (
	opNone opCode = iota
	opDraw        // D01
	opMove        // D02
	opFlash       // D03
)

// operationOn finds the operation code substring on a line. Checked in the
// same order as the reference behavior: draw, then move, then flash.
func operationOn(line string) opCode {
	switch {
	case strings.Contains(line, "D01"):
		return opDraw
	case strings.Contains(line, "D02"):
		return opMove
	case strings.Contains(line, "D03"):
		return opFlash
	}
	return opNone
}

var (
	xFieldRe = regexp.MustCompile(`X([+-]?\d+)`)
	yFieldRe = regexp.MustCompile(`Y([+-]?\d+)`)
)

// coordinateField extracts the raw digit string for one axis, or "" when the
// axis is omitted (modal coordinates).
func coordinateField(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// Parser holds the modal state of one Gerber parse. State persists across
// lines until a directive changes it, matching photoplotter semantics.
type Parser struct {
	layer     *BoardLayer
	current   geom.Point2D // current position in mm, initially origin
	aperture  int          // selected aperture code, NoAperture before first D<n>*
	inRegion  bool
	region    Region
	formatSet bool
	unitSet   bool
}

// NewParser creates a parser with default format (2.4) and metric units.
func NewParser() *Parser {
	return &Parser{
		layer: &BoardLayer{
			Apertures: make(map[int]Aperture),
			Format: FormatSpec{
				IntegerDigits: DefaultIntegerDigits,
				DecimalDigits: DefaultDecimalDigits,
			},
			UnitScale: 1.0,
		},
		aperture: NoAperture,
	}
}

// ParseFile reads and parses one Gerber layer file.
func ParseFile(filename string) (*BoardLayer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse consumes a whole Gerber stream and returns the accumulated layer.
// Content never fails the parse; the only error source is the reader itself.
// Undecodable bytes in the input are discarded before line processing.
func Parse(r io.Reader) (*BoardLayer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	p := NewParser()
	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToValidUTF8(data, nil)))
	for scanner.Scan() {
		p.handleLine(strings.TrimSpace(scanner.Text()))
	}
	return p.Finish(), nil
}

// ParseString parses Gerber content held in memory.
func ParseString(content string) *BoardLayer {
	p := NewParser()
	for _, line := range strings.Split(content, "\n") {
		p.handleLine(strings.TrimSpace(line))
	}
	return p.Finish()
}

// handleLine applies one line to the parser state. Directive classes are
// mutually exclusive; the operation check runs independently afterwards.
func (p *Parser) handleLine(line string) {
	if line == "" {
		return
	}

	switch classifyLine(line) {
	case lineExtended:
		p.handleDirective(line)
	case lineSelectAperture:
		p.handleSelect(line)
	case lineRegionStart:
		p.inRegion = true
		p.region = nil
	case lineRegionEnd:
		p.closeRegion()
	}

	if op := operationOn(line); op != opNone {
		p.handleOperation(line, op)
	}
}

// handleDirective registers an aperture or sets the format/unit state from
// one %...% block. Unsupported blocks only bump a counter.
func (p *Parser) handleDirective(line string) {
	d, ok := parseDirective(line)
	if !ok {
		p.layer.Stats.DirectivesSkipped++
		return
	}

	switch {
	case d.Aperture != nil:
		shape, ok := shapeFromTemplate(d.Aperture.Shape)
		if !ok || d.Aperture.Code < 10 {
			p.layer.Stats.DirectivesSkipped++
			return
		}
		p.layer.Apertures[d.Aperture.Code] = Aperture{
			Code:   d.Aperture.Code,
			Shape:  shape,
			Params: d.Aperture.Params,
		}

	case d.Format != nil:
		// The format spec is global to the file and set at most once.
		if p.formatSet {
			return
		}
		fs, ok := formatFromDigits(d.Format.XDigits)
		if !ok {
			p.layer.Stats.DirectivesSkipped++
			return
		}
		p.layer.Format = fs
		p.formatSet = true

	case d.Unit != "":
		if p.unitSet {
			return
		}
		if d.Unit == "MOIN" {
			p.layer.UnitScale = InchesToMM
		} else {
			p.layer.UnitScale = 1.0
		}
		p.unitSet = true
	}
}

// handleSelect switches the current aperture. Codes below 10 are reserved
// and never select anything; selection moves nothing and draws nothing.
func (p *Parser) handleSelect(line string) {
	code, err := strconv.Atoi(strings.TrimSuffix(line[1:], "*"))
	if err != nil || code < 10 {
		return
	}
	p.aperture = code
}

// closeRegion finishes the current G36/G37 block. Boundaries with fewer
// than 3 points cannot form a polygon and are dropped (counted, not erred).
func (p *Parser) closeRegion() {
	if len(p.region) >= 3 {
		p.layer.Regions = append(p.layer.Regions, p.region)
	} else if len(p.region) > 0 {
		p.layer.Stats.RegionsDropped++
	}
	p.inRegion = false
	p.region = nil
}

// handleOperation decodes the X/Y operands against the current position and
// emits a primitive. Every operation, including flash, moves the current
// point afterwards.
func (p *Parser) handleOperation(line string, op opCode) {
	x, okX := DecodeCoordinate(coordinateField(xFieldRe, line), p.layer.Format, p.layer.UnitScale, p.current.X)
	y, okY := DecodeCoordinate(coordinateField(yFieldRe, line), p.layer.Format, p.layer.UnitScale, p.current.Y)
	if !okX {
		p.layer.Stats.BadCoordinates++
	}
	if !okY {
		p.layer.Stats.BadCoordinates++
	}

	switch op {
	case opDraw:
		if p.inRegion {
			p.region = append(p.region, geom.Point2D{X: x, Y: y})
		} else {
			p.layer.Paths = append(p.layer.Paths, PathSegment{
				Start:    p.current,
				End:      geom.Point2D{X: x, Y: y},
				Aperture: p.aperture,
			})
		}
	case opFlash:
		p.layer.Flashes = append(p.layer.Flashes, Flash{
			Position: geom.Point2D{X: x, Y: y},
			Aperture: p.aperture,
		})
	}

	p.current = geom.Point2D{X: x, Y: y}
}

// Finish returns the accumulated layer. An unterminated region at EOF emits
// no geometry; it is counted so callers can surface the drop.
func (p *Parser) Finish() *BoardLayer {
	if p.inRegion && len(p.region) > 0 {
		p.layer.Stats.RegionsDropped++
	}
	p.inRegion = false
	p.region = nil
	return p.layer
}
