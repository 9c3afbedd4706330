// Package acadsvg converts resolved engineering-drawing documents into SVG.
// The heavy lifting lives in the entity, converter and svg subpackages; this
// package is the convenience surface the CLI and library users go through.
package acadsvg

import (
	"io"

	"github.com/davi-blsoftwares/ACadSvg/converter"
	"github.com/davi-blsoftwares/ACadSvg/entity"
	"github.com/davi-blsoftwares/ACadSvg/svg"
)

// Type aliases so simple use cases only import this package.
type (
	Document        = entity.Document
	DimensionStyle  = entity.DimensionStyle
	Drawing         = svg.Drawing
	Result          = converter.Result
	ConverterOption = converter.Options
)

// Sentinel errors re-exported for callers that match on failure kinds.
var (
	ErrDegenerateGeometry = converter.ErrDegenerateGeometry
	ErrInvalidStyle       = entity.ErrInvalidStyle
)

// LoadDocument reads and parses a resolved document file.
var LoadDocument = entity.Load

// ParseDocument parses a resolved document from bytes.
var ParseDocument = entity.Parse

// Convert converts a document with default options.
func Convert(doc *Document) (*Result, error) {
	return ConvertWith(doc, ConverterOption{})
}

// ConvertWith converts a document with explicit converter options, for
// callers that bring their own text measurer.
func ConvertWith(doc *Document, opts ConverterOption) (*Result, error) {
	return converter.New(opts).Convert(doc)
}

// ConvertFile loads a document file and converts it with default options.
func ConvertFile(path string) (*Result, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Convert(doc)
}

// WriteSVG serializes a drawing with the given options.
func WriteSVG(w io.Writer, d *Drawing, opts ConvertOptions) error {
	return svg.Write(w, d, opts.WriterOptions())
}
