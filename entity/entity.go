// Package entity holds the resolved document model the converter consumes:
// a flat list of entities, reusable block definitions, and dimension styles.
// Coordinates are world-space doubles, already defaulted and unit-converted
// by whatever loaded the drawing.
package entity

import "github.com/davi-blsoftwares/ACadSvg/geom"

// Entity is the closed set of drawing objects the converter understands.
// Conversion itself lives in the converter package; entities only expose
// their kind and layer.
type Entity interface {
	// EntityType returns the stable kind name, e.g. "LINE" or "DIMENSION".
	EntityType() string
	// OnLayer returns the name of the layer the entity sits on, possibly "".
	OnLayer() string
}

// Common carries the fields shared by every entity.
type Common struct {
	Layer string `yaml:"layer,omitempty"`
}

// OnLayer implements Entity.
func (c Common) OnLayer() string { return c.Layer }

// Line is a straight segment between two points.
type Line struct {
	Common `yaml:",inline"`
	Start  geom.Point `yaml:"start"`
	End    geom.Point `yaml:"end"`
}

func (Line) EntityType() string { return "LINE" }

// Circle is a full circle around a center point.
type Circle struct {
	Common `yaml:",inline"`
	Center geom.Point `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

func (Circle) EntityType() string { return "CIRCLE" }

// Arc is a circular arc, swept counter-clockwise from StartAngle to EndAngle
// (both in degrees).
type Arc struct {
	Common     `yaml:",inline"`
	Center     geom.Point `yaml:"center"`
	Radius     float64    `yaml:"radius"`
	StartAngle float64    `yaml:"startAngle"`
	EndAngle   float64    `yaml:"endAngle"`
}

func (Arc) EntityType() string { return "ARC" }

// Polyline is an open or closed sequence of straight segments.
type Polyline struct {
	Common   `yaml:",inline"`
	Vertices []geom.Point `yaml:"vertices"`
	Closed   bool         `yaml:"closed,omitempty"`
}

func (Polyline) EntityType() string { return "LWPOLYLINE" }

// PointMarker is a point entity, rendered as a small cross.
type PointMarker struct {
	Common   `yaml:",inline"`
	Location geom.Point `yaml:"location"`
}

func (PointMarker) EntityType() string { return "POINT" }

// Text is a single-line text label.
type Text struct {
	Common   `yaml:",inline"`
	Value    string     `yaml:"value"`
	Insert   geom.Point `yaml:"insert"`
	Height   float64    `yaml:"height"`
	Rotation float64    `yaml:"rotation,omitempty"` // degrees
}

func (Text) EntityType() string { return "TEXT" }

// Insert places a named block definition at a point, optionally scaled and rotated.
type Insert struct {
	Common    `yaml:",inline"`
	BlockName string     `yaml:"block"`
	Location  geom.Point `yaml:"location"`
	ScaleX    float64    `yaml:"scaleX,omitempty"`
	ScaleY    float64    `yaml:"scaleY,omitempty"`
	Rotation  float64    `yaml:"rotation,omitempty"` // degrees
}

func (Insert) EntityType() string { return "INSERT" }

// LinearDimension measures the distance between two points and carries the
// reference geometry the layout engine needs. Measurement may differ from
// |SecondPoint-FirstPoint| because of rounding or a manual override in the
// source drawing.
type LinearDimension struct {
	Common          `yaml:",inline"`
	FirstPoint      geom.Point `yaml:"firstPoint"`
	SecondPoint     geom.Point `yaml:"secondPoint"`
	DefinitionPoint geom.Point `yaml:"definitionPoint"`
	Measurement     float64    `yaml:"measurement"`
	TextMiddlePoint geom.Point `yaml:"textMiddlePoint"`
	TextRotation    float64    `yaml:"textRotation,omitempty"` // degrees, on top of the line angle
	Text            string     `yaml:"text,omitempty"`         // override label; "" renders the measurement
	Style           string     `yaml:"style,omitempty"`        // dimension style name

	// AttachmentPoint is parsed but not consumed by layout; reserved.
	AttachmentPoint int `yaml:"attachmentPoint,omitempty"`
}

func (LinearDimension) EntityType() string { return "DIMENSION" }

// Block is a reusable group of entities referenced by Insert entities.
type Block struct {
	Name     string   `yaml:"name"`
	Entities Entities `yaml:"entities"`
}

// Document is a fully resolved drawing: blocks, styles, and the entity list
// in insertion order.
type Document struct {
	Name     string                    `yaml:"name,omitempty"`
	Blocks   []Block                   `yaml:"blocks,omitempty"`
	Styles   map[string]DimensionStyle `yaml:"styles,omitempty"`
	Entities Entities                  `yaml:"entities"`
}

// StyleFor resolves the dimension style for a dimension entity, falling back
// to the package default when the name is unknown or empty.
func (d *Document) StyleFor(dim *LinearDimension) DimensionStyle {
	if dim.Style != "" {
		if s, ok := d.Styles[dim.Style]; ok {
			return s
		}
	}
	return DefaultDimensionStyle()
}
