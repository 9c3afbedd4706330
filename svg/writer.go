package svg

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

// Drawing is the converted document: block definitions in insertion order
// plus the root group of converted entities. World coordinates are y-up; the
// writer flips them into SVG screen space with a single root transform.
type Drawing struct {
	Name string
	Defs []*Group
	Root *Group
}

// Bounds returns the world-space bounding box of the root group.
func (d *Drawing) Bounds() Box {
	var b Box
	if d.Root != nil {
		d.Root.Bounds(&b)
	}
	return b
}

// WriterOptions controls serialization.
type WriterOptions struct {
	// Padding is added around the drawing extent on all sides, in drawing units.
	Padding float64
	// StrokeWidth for all stroked primitives, in drawing units.
	StrokeWidth float64
}

// DefaultWriterOptions returns the options used when none are given.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{Padding: 5, StrokeWidth: 0.5}
}

// Write serializes the drawing as an SVG document.
func Write(w io.Writer, d *Drawing, opts WriterOptions) error {
	if d == nil || d.Root == nil {
		return fmt.Errorf("nothing to write: drawing is empty")
	}
	bounds := d.Bounds()
	if bounds.IsEmpty() {
		return fmt.Errorf("nothing to write: drawing has no extent")
	}

	minX := bounds.Min.X - opts.Padding
	width := bounds.Max.X - bounds.Min.X + 2*opts.Padding
	height := bounds.Max.Y - bounds.Min.Y + 2*opts.Padding
	// After the y-flip the content occupies [-maxY, -minY].
	minY := -bounds.Max.Y - opts.Padding

	canvas := svg.New(w)
	canvas.Startview(width, height, minX, minY, width, height)

	if len(d.Defs) > 0 {
		canvas.Def()
		for _, g := range d.Defs {
			g.draw(canvas)
		}
		canvas.DefEnd()
	}

	canvas.Group(fmt.Sprintf(`transform="scale(1 -1)" stroke="black" fill="none" stroke-width="%v"`,
		opts.StrokeWidth))
	d.Root.draw(canvas)
	canvas.Gend()

	canvas.End()
	return nil
}
