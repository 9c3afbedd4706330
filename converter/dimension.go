package converter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/davi-blsoftwares/ACadSvg/entity"
	"github.com/davi-blsoftwares/ACadSvg/geom"
	"github.com/davi-blsoftwares/ACadSvg/svg"
)

// leaderDisplacementFactor times the text height is how far dimension text
// may drift off the dimension line before a leader is drawn.
const leaderDisplacementFactor = 1.4

// dimensionLayout holds every point, length and orientation flag needed to
// draw one linear dimension. It is computed in a single pass and never
// mutated afterwards.
type dimensionLayout struct {
	dim   *entity.LinearDimension
	style entity.DimensionStyle

	// solver
	ccw      bool
	dimDir   geom.Point // unit vector along the dimension line, dp2 -> dp1
	dp1, dp2 geom.Point

	// extension lines
	ext1Start, ext1End geom.Point
	ext2Start, ext2End geom.Point

	// text and leader
	label        string
	textPos      geom.Point
	textRotation float64 // degrees
	textOnDimLin geom.Point
	textLength   float64
	textInside   bool
	hasLeader    bool
	leaderStart  geom.Point
	leaderEnd    geom.Point

	// arrows
	arrowsOutside        bool
	arrow1Dir, arrow2Dir geom.Point

	// dimension line and stubs
	dl1, dl2             geom.Point
	stub1Start, stub1End geom.Point
	stub2Start, stub2End geom.Point
	stub1Used, stub2Used bool
}

// convertDimension lays out a linear dimension and assembles its primitives.
func convertDimension(ctx *Context, dim *entity.LinearDimension) (svg.Element, error) {
	l, err := layoutDimension(dim, ctx.doc.StyleFor(dim), ctx.measurer)
	if err != nil {
		return nil, err
	}
	return l.assemble(ctx)
}

// layoutDimension runs the layout pipeline: geometry solver, extension
// lines, text and leader placement, arrowhead orientation, then the
// dimension line and its stubs. Arrow and leader flags are resolved before
// any dimension-line or stub point is finalized, since stub length depends
// on them.
func layoutDimension(dim *entity.LinearDimension, style entity.DimensionStyle, measurer TextMeasurer) (*dimensionLayout, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}

	l := &dimensionLayout{dim: dim, style: style}
	if err := l.solveGeometry(); err != nil {
		return nil, err
	}
	if err := l.buildExtensionLines(); err != nil {
		return nil, err
	}
	l.placeText(measurer)
	l.placeArrows()
	l.buildDimensionLine()
	return l, nil
}

// solveGeometry derives the orientation flag, the dimension-line direction
// and the dimension-line endpoints from the raw defining points.
func (l *dimensionLayout) solveGeometry() error {
	d2 := l.dim.DefinitionPoint.Sub(l.dim.SecondPoint)
	if d2.IsZero() {
		return fmt.Errorf("%w: definition point coincides with second point", ErrDegenerateGeometry)
	}

	// Orientation comes from the z sign of the cross product; positive means
	// counter-clockwise.
	l.ccw = l.dim.SecondPoint.Sub(l.dim.FirstPoint).
		Cross(l.dim.DefinitionPoint.Sub(l.dim.FirstPoint)) > 0

	extDir := d2.Normalize()
	if l.ccw {
		l.dimDir = extDir.Perp()
	} else {
		l.dimDir = extDir.Perp().Neg()
	}

	l.dp2 = l.dim.DefinitionPoint
	l.dp1 = l.dp2.Add(l.dimDir.Scale(l.dim.Measurement))
	return nil
}

// buildExtensionLines computes the two extension-line segments, one per
// measured point, with the style offset and overshoot applied. The sides are
// independent; they share only dimDir.
func (l *dimensionLayout) buildExtensionLines() error {
	var err error
	l.ext1Start, l.ext1End, err = extensionLine(l.dim.FirstPoint, l.dp1, l.style)
	if err != nil {
		return fmt.Errorf("first extension line: %w", err)
	}
	l.ext2Start, l.ext2End, err = extensionLine(l.dim.SecondPoint, l.dp2, l.style)
	if err != nil {
		return fmt.Errorf("second extension line: %w", err)
	}
	return nil
}

func extensionLine(measured, dp geom.Point, style entity.DimensionStyle) (start, end geom.Point, err error) {
	ext := dp.Sub(measured)
	if ext.IsZero() {
		return start, end, fmt.Errorf("%w: measured point lies on the dimension line", ErrDegenerateGeometry)
	}
	length := ext.Length() + style.ExtensionLineExtension
	n := ext.Normalize()
	start = measured.Add(n.Scale(style.ExtensionLineOffset))
	end = measured.Add(n.Scale(length))
	return start, end, nil
}

// placeText computes the measurement-text anchor and rotation, projects the
// text onto the dimension line, and decides whether a leader is required.
func (l *dimensionLayout) placeText(measurer TextMeasurer) {
	l.label = l.dim.Text
	if l.label == "" {
		l.label = strconv.FormatFloat(l.dim.Measurement, 'f', -1, 64)
	}

	dimMid := l.dp1.Midpoint(l.dp2)
	l.textOnDimLin = l.dp1.Add(l.dimDir.Scale(l.dimDir.Dot(l.dim.TextMiddlePoint.Sub(l.dp1))))

	l.textRotation = readableAngle(geom.Degrees(l.dimDir.Angle())) + l.dim.TextRotation

	displacement := l.dim.TextMiddlePoint.Distance(l.textOnDimLin)
	if displacement > leaderDisplacementFactor*l.style.TextHeight &&
		l.style.TextMovement == entity.AddLeaderWhenTextMoved {
		// Text stays where the author moved it; a leader ties it back to the
		// middle of the dimension line. It no longer occupies space on the line.
		l.hasLeader = true
		l.textPos = l.dim.TextMiddlePoint
		l.leaderStart = dimMid
		l.leaderEnd = l.dim.TextMiddlePoint
		l.textLength = 0
	} else {
		l.textPos = l.textOnDimLin
		l.textLength = measurer.TextLength(l.label, l.style.TextHeight)
	}

	span := l.dp2.Distance(l.dp1)
	l.textInside = span > l.dp1.Distance(l.textOnDimLin)
}

// placeArrows decides the inside/outside orientation of both arrowheads. The
// span is too short for inside arrows when it cannot contain both arrowheads
// plus the text that sits on the line.
func (l *dimensionLayout) placeArrows() {
	threshold := 2*l.style.ArrowSize + l.textLength
	l.arrowsOutside = math.Abs(l.dim.Measurement) < threshold

	l.arrow1Dir = l.dimDir
	l.arrow2Dir = l.dimDir.Neg()
	if l.arrowsOutside {
		l.arrow1Dir = l.arrow1Dir.Neg()
		l.arrow2Dir = l.arrow2Dir.Neg()
	}
}

// buildDimensionLine computes the main dimension-line segment and the stub
// segments hosting outside arrowheads, applying the overshoot policy.
func (l *dimensionLayout) buildDimensionLine() {
	if ext := l.style.DimensionLineExtension; ext > 0 {
		// Classic overshoot style: both ends run past the arrow positions.
		l.dl1 = l.dp1.Add(l.dimDir.Scale(ext))
		l.dl2 = l.dp2.Sub(l.dimDir.Scale(ext))
	} else {
		// Ends are pulled to the arrow tips; an inside arrow retracts its end
		// by one arrow length so the glyph clears the extension line.
		l.dl1 = l.dp1
		l.dl2 = l.dp2
		if !l.arrowsOutside {
			l.dl1 = l.dp1.Sub(l.dimDir.Scale(l.style.ArrowSize))
			l.dl2 = l.dp2.Add(l.dimDir.Scale(l.style.ArrowSize))
		}
	}

	// Stub 1 hosts the first arrowhead: from dp1 outward, two arrow lengths.
	l.stub1Start = l.dp1
	l.stub1End = l.dp1.Add(l.dimDir.Scale(2 * l.style.ArrowSize))
	l.stub1Used = l.arrowsOutside

	// Stub 2 runs from dp2 the opposite way and is clipped so it does not
	// cross text sitting outside the span.
	l.stub2Start = l.dp2
	l.stub2End = l.dp2.Sub(l.dimDir.Scale(2 * l.style.ArrowSize))
	if !l.textInside && l.textLength > 0 {
		l.stub2End = l.textOnDimLin.Add(l.dimDir.Scale(l.textLength / 2))
	}
	l.stub2Used = l.arrowsOutside || (!l.textInside && l.textLength > 0)
}

// assemble combines the laid-out pieces into one ordered group: extension
// lines, dimension line, stubs, arrows, then text and leader.
func (l *dimensionLayout) assemble(ctx *Context) (svg.Element, error) {
	group := &svg.Group{Class: "dimension"}
	group.Append(
		&svg.Line{From: l.ext1Start, To: l.ext1End},
		&svg.Line{From: l.ext2Start, To: l.ext2End},
		&svg.Line{From: l.dl1, To: l.dl2},
	)
	if l.stub1Used {
		group.Append(&svg.Line{From: l.stub1Start, To: l.stub1End})
	}
	if l.stub2Used {
		group.Append(&svg.Line{From: l.stub2Start, To: l.stub2End})
	}

	arrow1, err := arrowHead(ctx, l.style.ArrowHeadBlock1, l.dp1, l.arrow1Dir, l.style.ArrowSize)
	if err != nil {
		return nil, err
	}
	arrow2, err := arrowHead(ctx, l.style.ArrowHeadBlock2, l.dp2, l.arrow2Dir, l.style.ArrowSize)
	if err != nil {
		return nil, err
	}
	group.Append(arrow1, arrow2)

	group.Append(&svg.Text{
		At:       l.textPos,
		Value:    l.label,
		Height:   l.style.TextHeight,
		Rotation: l.textRotation,
	})
	if l.hasLeader {
		group.Append(&svg.Line{From: l.leaderStart, To: l.leaderEnd})
	}
	return group, nil
}

// arrowHead places one arrowhead glyph: anchor at the tip, pointing along dir.
func arrowHead(ctx *Context, block string, tip, dir geom.Point, size float64) (svg.Element, error) {
	id, err := ctx.RequireArrowHead(block)
	if err != nil {
		return nil, err
	}
	transform := fmt.Sprintf("rotate(%v)", geom.Degrees(dir.Angle()))
	if block == "" {
		// The built-in glyph is unit sized; scale it to the style's arrow size.
		transform += fmt.Sprintf(" scale(%v)", size)
	}
	return &svg.Use{Ref: id, At: tip, Transform: transform}, nil
}

// readableAngle folds a dimension-line angle into (-90, 90] so the label is
// never upside down.
func readableAngle(deg float64) float64 {
	for deg > 90 {
		deg -= 180
	}
	for deg <= -90 {
		deg += 180
	}
	return deg
}
