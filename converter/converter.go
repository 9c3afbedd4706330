// Package converter turns a resolved entity.Document into an svg.Drawing.
// Every entity conversion is a one-to-one mapping from stored coordinates to
// a drawing primitive, except linear dimensions, which go through the layout
// engine in dimension.go.
package converter

import (
	"errors"
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/davi-blsoftwares/ACadSvg/entity"
	"github.com/davi-blsoftwares/ACadSvg/geom"
	"github.com/davi-blsoftwares/ACadSvg/svg"
)

// ErrDegenerateGeometry marks a conversion whose required normalization input
// has zero length. The failing entity is skipped; the batch continues.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// TextMeasurer supplies the on-line extent of rendered text. The engine never
// inspects fonts itself.
type TextMeasurer interface {
	TextLength(value string, height float64) float64
}

// approxMeasurer estimates text extent from the glyph count, the same
// approximation used for label sizing elsewhere in the ecosystem.
type approxMeasurer struct{}

func (approxMeasurer) TextLength(value string, height float64) float64 {
	return float64(len([]rune(value))) * height * 0.6
}

// Options configures a Converter.
type Options struct {
	// Measurer resolves text extents; nil selects the built-in approximation.
	Measurer TextMeasurer
}

// Converter converts documents. It holds no per-document state; a single
// Converter may be used for many documents, including concurrently.
type Converter struct {
	measurer TextMeasurer
}

// New returns a Converter with the given options.
func New(opts Options) *Converter {
	measurer := opts.Measurer
	if measurer == nil {
		measurer = approxMeasurer{}
	}
	return &Converter{measurer: measurer}
}

// Skipped records one entity that failed to convert.
type Skipped struct {
	Index int
	Type  string
	Err   error
}

// Result is the outcome of one document conversion.
type Result struct {
	Drawing *svg.Drawing
	// Counts holds converted entities per entity type.
	Counts map[string]int
	// SkippedEntities lists per-entity failures that did not abort the batch.
	SkippedEntities []Skipped
}

// Converted returns the total number of converted entities.
func (r *Result) Converted() int {
	return lo.Sum(lo.Values(r.Counts))
}

// Context carries the shared state of one document conversion: the document
// being converted and the append-only, insertion-ordered collection of block
// definitions. It is passed explicitly through every conversion call.
type Context struct {
	doc      *entity.Document
	measurer TextMeasurer

	defs       []*svg.Group
	defined    map[string]bool
	converting map[string]bool
}

func newContext(doc *entity.Document, measurer TextMeasurer) *Context {
	return &Context{
		doc:        doc,
		measurer:   measurer,
		defined:    make(map[string]bool),
		converting: make(map[string]bool),
	}
}

// Defs returns the accumulated block definitions in insertion order.
func (ctx *Context) Defs() []*svg.Group { return ctx.defs }

// addDef appends a definition group. Definitions are never removed or reordered.
func (ctx *Context) addDef(g *svg.Group) {
	ctx.defs = append(ctx.defs, g)
	ctx.defined[g.ID] = true
}

// RequireBlock ensures the named block is registered as a definition and
// returns its id. Blocks are converted once; later calls are lookups.
func (ctx *Context) RequireBlock(name string) (string, error) {
	id := "block-" + name
	if ctx.defined[id] {
		return id, nil
	}
	if ctx.converting[name] {
		return "", fmt.Errorf("block %q references itself", name)
	}
	block, found := lo.Find(ctx.doc.Blocks, func(b entity.Block) bool { return b.Name == name })
	if !found {
		return "", fmt.Errorf("block %q is not defined in the document", name)
	}
	ctx.converting[name] = true
	defer delete(ctx.converting, name)

	group := &svg.Group{ID: id}
	for _, e := range block.Entities {
		el, err := convertEntity(ctx, e)
		if err != nil {
			return "", fmt.Errorf("block %q: %w", name, err)
		}
		group.Append(el)
	}
	// Register only after every entity converted, so a failing block never
	// leaves a partial definition behind.
	ctx.addDef(group)
	return id, nil
}

// RequireArrowHead resolves the arrowhead definition for a style block name.
// An empty name selects the built-in unit triangle, registered on first use;
// use sites scale it to the style's arrow size.
func (ctx *Context) RequireArrowHead(name string) (string, error) {
	if name != "" {
		return ctx.RequireBlock(name)
	}
	const id = "arrowhead"
	if !ctx.defined[id] {
		ctx.addDef(&svg.Group{ID: id, Children: []svg.Element{
			// Unit-length filled triangle, tip at the origin, pointing +x.
			&svg.Polygon{Points: []geom.Point{
				{X: 0, Y: 0},
				{X: -1, Y: 1.0 / 3},
				{X: -1, Y: -1.0 / 3},
			}},
		}})
	}
	return id, nil
}

// Convert converts a whole document. Per-entity failures are logged and
// collected in the result; only document-level problems return an error.
func (c *Converter) Convert(doc *entity.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	ctx := newContext(doc, c.measurer)
	root := &svg.Group{}
	result := &Result{Counts: make(map[string]int)}

	for i, e := range doc.Entities {
		el, err := convertEntity(ctx, e)
		if err != nil {
			logger.Warnf("skipping entity %d (%s): %v", i, e.EntityType(), err)
			result.SkippedEntities = append(result.SkippedEntities, Skipped{Index: i, Type: e.EntityType(), Err: err})
			continue
		}
		root.Append(withLayer(e, el))
		result.Counts[e.EntityType()]++
	}

	logger.Debugf("converted %d entities, skipped %d", result.Converted(), len(result.SkippedEntities))
	result.Drawing = &svg.Drawing{Name: doc.Name, Defs: ctx.Defs(), Root: root}
	return result, nil
}

// convertEntity is the single dispatch point over the closed entity set.
func convertEntity(ctx *Context, e entity.Entity) (svg.Element, error) {
	switch e := e.(type) {
	case *entity.Line:
		return &svg.Line{From: e.Start, To: e.End}, nil
	case *entity.Circle:
		return &svg.Circle{Center: e.Center, Radius: e.Radius}, nil
	case *entity.Arc:
		return svg.ArcPath(e.Center, e.Radius, e.StartAngle, e.EndAngle), nil
	case *entity.Polyline:
		return svg.PolylinePath(e.Vertices, e.Closed), nil
	case *entity.PointMarker:
		return convertPointMarker(e), nil
	case *entity.Text:
		return &svg.Text{At: e.Insert, Value: e.Value, Height: e.Height, Rotation: e.Rotation, Anchor: "start"}, nil
	case *entity.Insert:
		return convertInsert(ctx, e)
	case *entity.LinearDimension:
		return convertDimension(ctx, e)
	default:
		return nil, fmt.Errorf("unsupported entity type %q", e.EntityType())
	}
}

// withLayer wraps an element in a group classed with the entity's layer name.
func withLayer(e entity.Entity, el svg.Element) svg.Element {
	layer := e.OnLayer()
	if layer == "" {
		return el
	}
	return &svg.Group{Class: layer, Children: []svg.Element{el}}
}

// pointMarkerSize is the half-extent of the cross drawn for point entities.
const pointMarkerSize = 0.5

func convertPointMarker(p *entity.PointMarker) svg.Element {
	g := &svg.Group{}
	g.Append(
		&svg.Line{
			From: p.Location.Sub(geom.Point{X: pointMarkerSize}),
			To:   p.Location.Add(geom.Point{X: pointMarkerSize}),
		},
		&svg.Line{
			From: p.Location.Sub(geom.Point{Y: pointMarkerSize}),
			To:   p.Location.Add(geom.Point{Y: pointMarkerSize}),
		},
	)
	return g
}

func convertInsert(ctx *Context, ins *entity.Insert) (svg.Element, error) {
	id, err := ctx.RequireBlock(ins.BlockName)
	if err != nil {
		return nil, err
	}
	scaleX := lo.Ternary(ins.ScaleX != 0, ins.ScaleX, 1)
	scaleY := lo.Ternary(ins.ScaleY != 0, ins.ScaleY, 1)

	var transform string
	if ins.Rotation != 0 {
		transform = fmt.Sprintf("rotate(%v)", ins.Rotation)
	}
	if scaleX != 1 || scaleY != 1 {
		if transform != "" {
			transform += " "
		}
		transform += fmt.Sprintf("scale(%v %v)", scaleX, scaleY)
	}
	return &svg.Use{Ref: id, At: ins.Location, Transform: transform}, nil
}
