package converter

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davi-blsoftwares/ACadSvg/entity"
	"github.com/davi-blsoftwares/ACadSvg/geom"
)

func testStyle() entity.DimensionStyle {
	return entity.DimensionStyle{
		ExtensionLineExtension: 1,
		ExtensionLineOffset:    0.5,
		DimensionLineExtension: 0,
		ArrowSize:              1,
		TextHeight:             2,
		TextMovement:           entity.AddLeaderWhenTextMoved,
	}
}

func horizontalDimension() *entity.LinearDimension {
	return &entity.LinearDimension{
		FirstPoint:      geom.Point{X: 0, Y: 0},
		SecondPoint:     geom.Point{X: 10, Y: 0},
		DefinitionPoint: geom.Point{X: 10, Y: 5},
		Measurement:     10,
		TextMiddlePoint: geom.Point{X: 5, Y: 5},
	}
}

func assertPointInDelta(t *testing.T, want, got geom.Point, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msgAndArgs...)
}

func TestLayout_HorizontalDimension(t *testing.T) {
	l, err := layoutDimension(horizontalDimension(), testStyle(), approxMeasurer{})
	require.NoError(t, err)

	assert.True(t, l.ccw)
	assertPointInDelta(t, geom.Point{X: -1, Y: 0}, l.dimDir)
	assertPointInDelta(t, geom.Point{X: 10, Y: 5}, l.dp2)
	assertPointInDelta(t, geom.Point{X: 0, Y: 5}, l.dp1)

	// Second extension line: offset gap at the measured point, overshoot at the top.
	assertPointInDelta(t, geom.Point{X: 10, Y: 0.5}, l.ext2Start)
	assertPointInDelta(t, geom.Point{X: 10, Y: 6}, l.ext2End)
	assertPointInDelta(t, geom.Point{X: 0, Y: 0.5}, l.ext1Start)
	assertPointInDelta(t, geom.Point{X: 0, Y: 6}, l.ext1End)

	// Span is long enough: arrows inside, line ends retracted by one arrow length.
	assert.False(t, l.arrowsOutside)
	assertPointInDelta(t, geom.Point{X: 1, Y: 5}, l.dl1)
	assertPointInDelta(t, geom.Point{X: 9, Y: 5}, l.dl2)
	assertPointInDelta(t, geom.Point{X: -1, Y: 0}, l.arrow1Dir)
	assertPointInDelta(t, geom.Point{X: 1, Y: 0}, l.arrow2Dir)
	assert.False(t, l.stub1Used)

	// Text is already on the line: no leader, label sits at its projection.
	assert.False(t, l.hasLeader)
	assertPointInDelta(t, geom.Point{X: 5, Y: 5}, l.textPos)
	assert.Equal(t, "10", l.label)
	assert.True(t, l.textInside)
	assert.Greater(t, l.textLength, 0.0)
	assert.InDelta(t, 0, l.textRotation, 1e-9, "horizontal dimension text is horizontal")
}

func TestLayout_MovedTextEmitsLeader(t *testing.T) {
	dim := horizontalDimension()
	dim.TextMiddlePoint = geom.Point{X: 5, Y: 10}

	l, err := layoutDimension(dim, testStyle(), approxMeasurer{})
	require.NoError(t, err)

	// Displacement 5 exceeds 1.4 * textHeight (2.8) and the style policy asks
	// for a leader on moved text.
	require.True(t, l.hasLeader)
	assert.Zero(t, l.textLength)
	assertPointInDelta(t, geom.Point{X: 5, Y: 10}, l.textPos)
	assertPointInDelta(t, geom.Point{X: 5, Y: 5}, l.leaderStart)
	assertPointInDelta(t, geom.Point{X: 5, Y: 10}, l.leaderEnd)
}

func TestLayout_MovedTextWithoutLeaderPolicy(t *testing.T) {
	dim := horizontalDimension()
	dim.TextMiddlePoint = geom.Point{X: 5, Y: 10}
	style := testStyle()
	style.TextMovement = entity.MoveTextFreely

	l, err := layoutDimension(dim, style, approxMeasurer{})
	require.NoError(t, err)

	assert.False(t, l.hasLeader)
	// Without the leader policy the text snaps back to its on-line projection.
	assertPointInDelta(t, geom.Point{X: 5, Y: 5}, l.textPos)
	assert.Greater(t, l.textLength, 0.0)
}

func TestLayout_MirroredDefinitionPoint(t *testing.T) {
	dim := horizontalDimension()
	dim.DefinitionPoint = geom.Point{X: 10, Y: -5}
	dim.TextMiddlePoint = geom.Point{X: 5, Y: -5}

	l, err := layoutDimension(dim, testStyle(), approxMeasurer{})
	require.NoError(t, err)

	assert.False(t, l.ccw)
	assertPointInDelta(t, geom.Point{X: -1, Y: 0}, l.dimDir)
	assertPointInDelta(t, geom.Point{X: 0, Y: -5}, l.dp1)
	assertPointInDelta(t, geom.Point{X: 10, Y: -5}, l.dp2)
}

func TestLayout_OrientationInvariantUnderRotationAndTranslation(t *testing.T) {
	base := horizontalDimension()
	style := testStyle()

	for _, angle := range []float64{0, 0.3, 1.1, math.Pi / 2, 2.5, -1.7} {
		for _, offset := range []geom.Point{{}, {X: 100, Y: -40}, {X: -3.5, Y: 7.25}} {
			move := func(p geom.Point) geom.Point { return p.Rotate(angle).Add(offset) }
			dim := &entity.LinearDimension{
				FirstPoint:      move(base.FirstPoint),
				SecondPoint:     move(base.SecondPoint),
				DefinitionPoint: move(base.DefinitionPoint),
				Measurement:     base.Measurement,
				TextMiddlePoint: move(base.TextMiddlePoint),
			}

			l, err := layoutDimension(dim, style, approxMeasurer{})
			require.NoError(t, err)

			assert.True(t, l.ccw, "orientation must survive rotation by %v and translation %v", angle, offset)
			assert.InDelta(t, 1.0, l.dimDir.Length(), 1e-9, "dimDir stays unit length")

			extDir := dim.DefinitionPoint.Sub(dim.SecondPoint)
			assert.InDelta(t, 0, l.dimDir.Dot(extDir), 1e-9, "dimDir stays perpendicular to the extension direction")

			assert.InDelta(t, math.Abs(dim.Measurement), l.dp1.Distance(l.dp2), 1e-9,
				"|dp1-dp2| must round-trip the measurement")
		}
	}
}

func TestLayout_ShortSpanFlipsArrowsOutside(t *testing.T) {
	style := testStyle()
	long := horizontalDimension()

	// Shrink the measured span until it cannot contain both arrowheads.
	short := &entity.LinearDimension{
		FirstPoint:      geom.Point{X: 0, Y: 0},
		SecondPoint:     geom.Point{X: 1.5, Y: 0},
		DefinitionPoint: geom.Point{X: 1.5, Y: 5},
		Measurement:     1.5,
		TextMiddlePoint: geom.Point{X: 0.75, Y: 10},
	}

	wide, err := layoutDimension(long, style, approxMeasurer{})
	require.NoError(t, err)
	narrow, err := layoutDimension(short, style, approxMeasurer{})
	require.NoError(t, err)

	assert.False(t, wide.arrowsOutside)
	assert.True(t, narrow.arrowsOutside, "measurement below 2*arrowSize must flip both arrows outside")

	// Outside arrows negate their directions and the stubs appear to host them.
	assertPointInDelta(t, narrow.dimDir.Neg(), narrow.arrow1Dir)
	assertPointInDelta(t, narrow.dimDir, narrow.arrow2Dir)
	assert.True(t, narrow.stub1Used)
	assert.True(t, narrow.stub2Used)

	// Stub 1 spans two arrow lengths outward from dp1.
	assert.InDelta(t, 2*style.ArrowSize, narrow.stub1Start.Distance(narrow.stub1End), 1e-9)
}

func TestLayout_Idempotence(t *testing.T) {
	dim := horizontalDimension()
	style := testStyle()

	first, err := layoutDimension(dim, style, approxMeasurer{})
	require.NoError(t, err)
	second, err := layoutDimension(dim, style, approxMeasurer{})
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second), "re-running the engine must yield bit-identical geometry")
}

func TestLayout_DegenerateDefinitionPoint(t *testing.T) {
	dim := horizontalDimension()
	dim.DefinitionPoint = dim.SecondPoint

	_, err := layoutDimension(dim, testStyle(), approxMeasurer{})
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestLayout_DegenerateExtensionLine(t *testing.T) {
	// The first measured point lies exactly on the dimension line, so its
	// extension vector has zero length.
	dim := &entity.LinearDimension{
		FirstPoint:      geom.Point{X: 0, Y: 5},
		SecondPoint:     geom.Point{X: 10, Y: 0},
		DefinitionPoint: geom.Point{X: 10, Y: 5},
		Measurement:     10,
		TextMiddlePoint: geom.Point{X: 5, Y: 5},
	}

	_, err := layoutDimension(dim, testStyle(), approxMeasurer{})
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestLayout_InvalidStyleSurfacedBeforeGeometry(t *testing.T) {
	style := testStyle()
	style.ArrowSize = -1

	_, err := layoutDimension(horizontalDimension(), style, approxMeasurer{})
	require.ErrorIs(t, err, entity.ErrInvalidStyle)
}

func TestLayout_OvershootStyle(t *testing.T) {
	style := testStyle()
	style.DimensionLineExtension = 2

	l, err := layoutDimension(horizontalDimension(), style, approxMeasurer{})
	require.NoError(t, err)

	// Both ends extend past dp1/dp2 by the overshoot distance.
	assertPointInDelta(t, geom.Point{X: -2, Y: 5}, l.dl1)
	assertPointInDelta(t, geom.Point{X: 12, Y: 5}, l.dl2)
}

func TestLayout_VerticalDimensionTextStaysReadable(t *testing.T) {
	dim := &entity.LinearDimension{
		FirstPoint:      geom.Point{X: 0, Y: 0},
		SecondPoint:     geom.Point{X: 0, Y: 10},
		DefinitionPoint: geom.Point{X: -5, Y: 10},
		Measurement:     10,
		TextMiddlePoint: geom.Point{X: -5, Y: 5},
	}

	l, err := layoutDimension(dim, testStyle(), approxMeasurer{})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, l.dimDir.Length(), 1e-9)
	assert.True(t, l.textRotation > -90 && l.textRotation <= 90,
		"text rotation %v must be folded into a readable range", l.textRotation)
}

func TestReadableAngle(t *testing.T) {
	assert.InDelta(t, 0, readableAngle(180), 1e-12)
	assert.InDelta(t, 45, readableAngle(225), 1e-12)
	assert.InDelta(t, 90, readableAngle(90), 1e-12)
	assert.InDelta(t, 90, readableAngle(-90), 1e-12)
	assert.InDelta(t, -45, readableAngle(135), 1e-12)
}
