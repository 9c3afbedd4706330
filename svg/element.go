// Package svg holds the drawing-primitive tree the converter produces and a
// writer that serializes it to SVG markup. The tree is deliberately small: a
// handful of shape primitives plus groups, enough to express converted CAD
// entities without exposing markup details to the converter.
package svg

import (
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/davi-blsoftwares/ACadSvg/geom"
)

// Element is a node in the drawing-primitive tree. The draw method is
// unexported so the set of primitives stays closed to this package.
type Element interface {
	draw(canvas *svg.SVG)
	// Bounds extends the running bounding box with the element's extent.
	Bounds(b *Box)
}

// Box is an axis-aligned bounding box accumulated over the tree.
type Box struct {
	Min, Max geom.Point
	set      bool
}

// Extend grows the box to include p.
func (b *Box) Extend(p geom.Point) {
	if !b.set {
		b.Min, b.Max = p, p
		b.set = true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// IsEmpty reports whether the box has never been extended.
func (b *Box) IsEmpty() bool { return !b.set }

// Group is an ordered container of elements, optionally carrying an id,
// a class (used for layer names) and a transform.
type Group struct {
	ID        string
	Class     string
	Transform string
	Children  []Element
}

// Append adds children to the group in order, skipping nils.
func (g *Group) Append(children ...Element) {
	for _, c := range children {
		if c != nil {
			g.Children = append(g.Children, c)
		}
	}
}

func (g *Group) draw(canvas *svg.SVG) {
	attrs := groupAttrs(g.ID, g.Class, g.Transform)
	if attrs == "" {
		canvas.Group()
	} else {
		canvas.Group(attrs)
	}
	for _, c := range g.Children {
		c.draw(canvas)
	}
	canvas.Gend()
}

// Bounds implements Element. A transform on the group is ignored for bounds;
// only block definitions carry transforms and those are sized at use sites.
func (g *Group) Bounds(b *Box) {
	for _, c := range g.Children {
		c.Bounds(b)
	}
}

func groupAttrs(id, class, transform string) string {
	var parts []string
	if id != "" {
		parts = append(parts, fmt.Sprintf(`id=%q`, id))
	}
	if class != "" {
		parts = append(parts, fmt.Sprintf(`class=%q`, class))
	}
	if transform != "" {
		parts = append(parts, fmt.Sprintf(`transform=%q`, transform))
	}
	return strings.Join(parts, " ")
}

// Line is a straight stroked segment.
type Line struct {
	From, To geom.Point
}

func (l *Line) draw(canvas *svg.SVG) {
	canvas.Line(l.From.X, l.From.Y, l.To.X, l.To.Y)
}

func (l *Line) Bounds(b *Box) {
	b.Extend(l.From)
	b.Extend(l.To)
}

// Circle is a stroked, unfilled circle.
type Circle struct {
	Center geom.Point
	Radius float64
}

func (c *Circle) draw(canvas *svg.SVG) {
	canvas.Circle(c.Center.X, c.Center.Y, c.Radius)
}

func (c *Circle) Bounds(b *Box) {
	r := geom.Point{X: c.Radius, Y: c.Radius}
	b.Extend(c.Center.Sub(r))
	b.Extend(c.Center.Add(r))
}

// Path is a stroked path in SVG path-data syntax. Use the Arc and Polyline
// helpers to build the data.
type Path struct {
	D string
	// Anchors are representative points used for bounds; path data is not
	// re-parsed for extent.
	Anchors []geom.Point
}

func (p *Path) draw(canvas *svg.SVG) {
	canvas.Path(p.D)
}

func (p *Path) Bounds(b *Box) {
	for _, a := range p.Anchors {
		b.Extend(a)
	}
}

// Polygon is a filled closed shape, used for arrowhead glyphs.
type Polygon struct {
	Points []geom.Point
}

func (p *Polygon) draw(canvas *svg.SVG) {
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	canvas.Polygon(xs, ys, "fill:black;stroke:none")
}

func (p *Polygon) Bounds(b *Box) {
	for _, pt := range p.Points {
		b.Extend(pt)
	}
}

// Text is a text label anchored at a world-space point. Rotation is in
// degrees, counter-clockwise in world coordinates. The writer flips the whole
// drawing into screen space, so the text carries a local transform that keeps
// the glyphs upright.
type Text struct {
	At       geom.Point
	Value    string
	Height   float64
	Rotation float64
	Anchor   string // "start", "middle" or "end"; empty means "middle"
}

func (t *Text) draw(canvas *svg.SVG) {
	anchor := t.Anchor
	if anchor == "" {
		anchor = "middle"
	}
	// Undo the global y-flip locally and convert the world-space CCW rotation
	// to SVG's clockwise rotate().
	transform := fmt.Sprintf("translate(%v %v) scale(1 -1) rotate(%v)", t.At.X, t.At.Y, -t.Rotation)
	canvas.Gtransform(transform)
	canvas.Text(0, 0, t.Value,
		fmt.Sprintf("text-anchor:%s;font-size:%vpx;fill:black;stroke:none", anchor, t.Height))
	canvas.Gend()
}

func (t *Text) Bounds(b *Box) {
	b.Extend(t.At)
	b.Extend(t.At.Add(geom.Point{X: 0, Y: t.Height}))
}

// Use references a block definition registered in the drawing's defs.
// At is the placement point in world coordinates; Transform holds any
// additional rotate/scale applied in the local frame of the reference.
type Use struct {
	Ref       string
	At        geom.Point
	Transform string
}

func (u *Use) draw(canvas *svg.SVG) {
	if u.Transform != "" {
		canvas.Gtransform(fmt.Sprintf("translate(%v %v) %s", u.At.X, u.At.Y, u.Transform))
		canvas.Use(0, 0, "#"+u.Ref)
		canvas.Gend()
		return
	}
	canvas.Use(u.At.X, u.At.Y, "#"+u.Ref)
}

func (u *Use) Bounds(b *Box) {
	b.Extend(u.At)
}
