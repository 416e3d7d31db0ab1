package gerber

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// directiveLexer tokenizes the %...% extended command blocks. Only the three
// supported command heads are keywords; anything else fails to lex and the
// parser treats the whole block as unrecognized.
var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},

	// Command heads
	{Name: "KwFSLA", Pattern: `FSLA`},
	{Name: "KwADD", Pattern: `ADD`},
	{Name: "Unit", Pattern: `MOMM|MOIN`},

	// Literals. Real must precede Int so "0.254" lexes as one token.
	{Name: "Real", Pattern: `[-+]?\d+\.\d*`},
	{Name: "Int", Pattern: `[-+]?\d+`},

	// Single-character tokens
	{Name: "Shape", Pattern: `[CRO]`},
	{Name: "Axis", Pattern: `[XY]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Percent", Pattern: `%`},
})

// directive is the grammar root for one extended command block:
// %ADD<code><C|R|O><params>*%, %FSLAX<ii><dd>Y<ii><dd>*% or %MOMM*%/%MOIN*%.
type directive struct {
	Aperture *apertureDirective `parser:"'%' ( 'ADD' @@"`
	Format   *formatDirective   `parser:"| 'FSLA' @@"`
	Unit     string             `parser:"| @Unit ) '*' '%'"`
}

// apertureDirective is the body of an %ADD command. Parameters are separated
// by commas or by the X separator modern CAM tools emit for rectangles.
type apertureDirective struct {
	Code   int       `parser:"@Int"`
	Shape  string    `parser:"@Shape"`
	Params []float64 `parser:"( ',' @(Real | Int) ( (',' | 'X') @(Real | Int) )* )?"`
}

// formatDirective is the body of an %FSLA command. Digit counts are captured
// raw: "24" means 2 integer digits, 4 decimal digits.
type formatDirective struct {
	XDigits string `parser:"'X' @Int"`
	YDigits string `parser:"'Y' @Int"`
}

var directiveParser = participle.MustBuild[directive](
	participle.Lexer(directiveLexer),
	participle.Elide("Whitespace"),
)

// parseDirective parses one extended command block. A nil result with
// ok=false means the block matched no supported grammar and should be
// skipped, not treated as a file error.
func parseDirective(line string) (*directive, bool) {
	d, err := directiveParser.ParseString("", line)
	if err != nil {
		return nil, false
	}
	return d, true
}

// shapeFromTemplate maps an RS-274X template letter to an ApertureShape.
func shapeFromTemplate(t string) (ApertureShape, bool) {
	switch t {
	case "C":
		return ShapeCircle, true
	case "R":
		return ShapeRectangle, true
	case "O":
		return ShapeObround, true
	}
	return 0, false
}

// formatFromDigits interprets the FSLA digit pair for one axis. The X axis
// layout governs both axes; files with asymmetric formats are out of scope.
func formatFromDigits(digits string) (FormatSpec, bool) {
	if len(digits) < 2 {
		return FormatSpec{}, false
	}
	hi := digits[0]
	lo := digits[1]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return FormatSpec{}, false
	}
	return FormatSpec{
		IntegerDigits: int(hi - '0'),
		DecimalDigits: int(lo - '0'),
	}, true
}
