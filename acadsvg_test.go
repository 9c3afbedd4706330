package acadsvg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
name: plate
styles:
  iso:
    extensionLineExtension: 1
    extensionLineOffset: 0.5
    arrowSize: 1
    textHeight: 2
    textMovement: addLeaderWhenTextMoved
entities:
  - type: lwpolyline
    layer: outline
    closed: true
    vertices:
      - {x: 0, y: 0}
      - {x: 40, y: 0}
      - {x: 40, y: 25}
      - {x: 0, y: 25}
  - type: circle
    center: {x: 20, y: 12.5}
    radius: 4
  - type: dimension
    style: iso
    firstPoint: {x: 0, y: 0}
    secondPoint: {x: 40, y: 0}
    definitionPoint: {x: 40, y: -8}
    measurement: 40
    textMiddlePoint: {x: 20, y: -8}
`

func TestConvertFile_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	result, err := ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Converted())
	assert.Empty(t, result.SkippedEntities)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, result.Drawing, Flags.ConvertOptions))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `class="dimension"`)
	assert.Contains(t, out, ">40</text>")
}

type fixedMeasurer struct{ width float64 }

func (m fixedMeasurer) TextLength(string, float64) float64 { return m.width }

func TestConvertWith_CustomMeasurer(t *testing.T) {
	doc, err := ParseDocument([]byte(fixture))
	require.NoError(t, err)

	plain, err := Convert(doc)
	require.NoError(t, err)
	wide, err := ConvertWith(doc, ConverterOption{Measurer: fixedMeasurer{width: 100}})
	require.NoError(t, err)
	assert.Equal(t, plain.Converted(), wide.Converted())

	var a, b bytes.Buffer
	require.NoError(t, WriteSVG(&a, plain.Drawing, ConvertOptions{}))
	require.NoError(t, WriteSVG(&b, wide.Drawing, ConvertOptions{}))
	assert.NotEqual(t, a.String(), b.String(),
		"a label wider than the span changes the dimension layout")
}

func TestConvertFile_MissingFile(t *testing.T) {
	_, err := ConvertFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConvertOptions_WriterOptions(t *testing.T) {
	opts := ConvertOptions{Padding: 10, StrokeWidth: 1}.WriterOptions()
	assert.Equal(t, 10.0, opts.Padding)
	assert.Equal(t, 1.0, opts.StrokeWidth)

	// Zero values fall back to the writer defaults.
	defaults := ConvertOptions{}.WriterOptions()
	assert.Greater(t, defaults.Padding, 0.0)
	assert.Greater(t, defaults.StrokeWidth, 0.0)
}
