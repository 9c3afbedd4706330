package acadsvg

import (
	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"

	"github.com/davi-blsoftwares/ACadSvg/svg"
)

type AllFlags struct {
	ConvertOptions
	logger.Flags
}

// ConvertOptions are the user-facing knobs of a conversion run.
type ConvertOptions struct {
	Output      string  // output SVG path; "-" writes to stdout
	PNG         string  // optional PNG preview path
	PNGSize     int     // longer side of the PNG preview in pixels
	Padding     float64 // padding around the drawing extent, drawing units
	StrokeWidth float64 // stroke width, drawing units
}

// WriterOptions translates the CLI options into writer options.
func (c ConvertOptions) WriterOptions() svg.WriterOptions {
	opts := svg.DefaultWriterOptions()
	if c.Padding > 0 {
		opts.Padding = c.Padding
	}
	if c.StrokeWidth > 0 {
		opts.StrokeWidth = c.StrokeWidth
	}
	return opts
}

var Flags = AllFlags{
	ConvertOptions: ConvertOptions{
		Output:      "-",
		PNGSize:     800,
		Padding:     svg.DefaultWriterOptions().Padding,
		StrokeWidth: svg.DefaultWriterOptions().StrokeWidth,
	},
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds every flag to a pflag set (for Cobra).
func BindAllFlags(flags *pflag.FlagSet) *AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVarP(&Flags.Output, "output", "o", Flags.Output, "Output SVG file (- for stdout)")
	flags.StringVar(&Flags.PNG, "png", "", "Also write a PNG preview to this file")
	flags.IntVar(&Flags.PNGSize, "png-size", Flags.PNGSize, "Longer side of the PNG preview in pixels")
	flags.Float64Var(&Flags.Padding, "padding", Flags.Padding, "Padding around the drawing extent, in drawing units")
	flags.Float64Var(&Flags.StrokeWidth, "stroke-width", Flags.StrokeWidth, "Stroke width, in drawing units")

	return &Flags
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	logger.Debugf("Using logger flags: %+v", a.Flags)
}
