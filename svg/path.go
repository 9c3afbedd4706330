package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/davi-blsoftwares/ACadSvg/geom"
)

// ArcPath builds a circular-arc path swept counter-clockwise from startAngle
// to endAngle (degrees). Angles follow the drawing convention: measured from
// the positive x axis towards positive y.
func ArcPath(center geom.Point, radius, startAngle, endAngle float64) *Path {
	start := pointOnCircle(center, radius, startAngle)
	end := pointOnCircle(center, radius, endAngle)

	sweep := math.Mod(endAngle-startAngle, 360)
	if sweep < 0 {
		sweep += 360
	}

	anchors := []geom.Point{
		start, end,
		center.Add(geom.Point{X: radius, Y: radius}),
		center.Sub(geom.Point{X: radius, Y: radius}),
	}

	// A 360-degree sweep collapses to a zero-length A segment, which SVG
	// renders as nothing. Draw full circles as two half arcs instead.
	if sweep == 0 && endAngle != startAngle {
		mid := pointOnCircle(center, radius, startAngle+180)
		d := fmt.Sprintf("M %v %v A %v %v 0 1 1 %v %v A %v %v 0 1 1 %v %v Z",
			start.X, start.Y, radius, radius, mid.X, mid.Y, radius, radius, start.X, start.Y)
		return &Path{D: d, Anchors: anchors}
	}

	largeArc := 0
	if sweep > 180 {
		largeArc = 1
	}
	d := fmt.Sprintf("M %v %v A %v %v 0 %d 1 %v %v",
		start.X, start.Y, radius, radius, largeArc, end.X, end.Y)
	return &Path{D: d, Anchors: anchors}
}

// PolylinePath builds a path through the given vertices, closing it when
// closed is set.
func PolylinePath(vertices []geom.Point, closed bool) *Path {
	if len(vertices) == 0 {
		return &Path{}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "M %v %v", vertices[0].X, vertices[0].Y)
	for _, v := range vertices[1:] {
		fmt.Fprintf(&sb, " L %v %v", v.X, v.Y)
	}
	if closed {
		sb.WriteString(" Z")
	}
	return &Path{D: sb.String(), Anchors: vertices}
}

func pointOnCircle(center geom.Point, radius, angleDeg float64) geom.Point {
	sin, cos := math.Sincos(geom.Radians(angleDeg))
	return center.Add(geom.Point{X: radius * cos, Y: radius * sin})
}
