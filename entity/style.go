package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidStyle marks a dimension style value outside its domain. Invalid
// styles are surfaced immediately rather than clamped; clamping would produce
// visually wrong output that still looks "successful".
var ErrInvalidStyle = errors.New("invalid dimension style")

// TextMovement controls what happens when dimension text is moved away from
// its default position on the dimension line.
type TextMovement string

const (
	// MoveLineWithText keeps the text on the line and moves the line with it.
	MoveLineWithText TextMovement = "moveLineWithText"
	// AddLeaderWhenTextMoved draws the text at its moved position and
	// connects it back to the dimension line with a leader.
	AddLeaderWhenTextMoved TextMovement = "addLeaderWhenTextMoved"
	// MoveTextFreely lets the text float without a leader.
	MoveTextFreely TextMovement = "moveTextFreely"
)

// DimensionStyle is the resolved style snapshot a dimension is laid out
// against. Styles are resolved once per drawing and treated as read-only
// during conversion.
type DimensionStyle struct {
	// ExtensionLineExtension is how far an extension line overshoots past the
	// dimension line.
	ExtensionLineExtension float64 `yaml:"extensionLineExtension"`
	// ExtensionLineOffset is the gap between a measured point and the start
	// of its extension line.
	ExtensionLineOffset float64 `yaml:"extensionLineOffset"`
	// DimensionLineExtension, when positive, is how far the dimension line
	// overshoots the arrow positions. Zero or negative pulls the line ends in
	// to the arrow tips instead.
	DimensionLineExtension float64 `yaml:"dimensionLineExtension"`
	// ArrowSize is the arrowhead length, also used for fits-inside tests.
	ArrowSize float64 `yaml:"arrowSize"`
	// ArrowHeadBlock1 and ArrowHeadBlock2 name arrowhead blocks. Empty means
	// the built-in filled triangle.
	ArrowHeadBlock1 string `yaml:"arrowHeadBlock1,omitempty"`
	ArrowHeadBlock2 string `yaml:"arrowHeadBlock2,omitempty"`

	TextHeight   float64      `yaml:"textHeight"`
	TextMovement TextMovement `yaml:"textMovement,omitempty"`

	// Parsed but not consumed by layout; reserved.
	TextVerticalAlignment int     `yaml:"textVerticalAlignment,omitempty"`
	TextVerticalPosition  float64 `yaml:"textVerticalPosition,omitempty"`
}

// DefaultDimensionStyle returns the style used when a dimension names no
// style or the name is unknown.
func DefaultDimensionStyle() DimensionStyle {
	return DimensionStyle{
		ExtensionLineExtension: 1.25,
		ExtensionLineOffset:    0.625,
		DimensionLineExtension: 0,
		ArrowSize:              2.5,
		TextHeight:             2.5,
		TextMovement:           AddLeaderWhenTextMoved,
	}
}

// Validate checks that every style value is inside its domain.
func (s DimensionStyle) Validate() error {
	if s.ArrowSize < 0 {
		return fmt.Errorf("%w: arrowSize %v is negative", ErrInvalidStyle, s.ArrowSize)
	}
	if s.TextHeight < 0 {
		return fmt.Errorf("%w: textHeight %v is negative", ErrInvalidStyle, s.TextHeight)
	}
	if s.ExtensionLineExtension < 0 {
		return fmt.Errorf("%w: extensionLineExtension %v is negative", ErrInvalidStyle, s.ExtensionLineExtension)
	}
	if s.ExtensionLineOffset < 0 {
		return fmt.Errorf("%w: extensionLineOffset %v is negative", ErrInvalidStyle, s.ExtensionLineOffset)
	}
	switch s.TextMovement {
	case "", MoveLineWithText, AddLeaderWhenTextMoved, MoveTextFreely:
	default:
		return fmt.Errorf("%w: unknown textMovement %q", ErrInvalidStyle, s.TextMovement)
	}
	return nil
}
