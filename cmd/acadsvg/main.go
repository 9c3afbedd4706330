package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	acadsvg "github.com/davi-blsoftwares/ACadSvg"
	"github.com/davi-blsoftwares/ACadSvg/svg"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "acadsvg",
		Short: "Convert resolved CAD drawing documents to SVG",
		Long: `ACadSvg converts a resolved engineering-drawing document (entities,
blocks, dimension styles) into an SVG drawing. Linear dimensions are fully
laid out: extension lines, dimension line, arrowheads, measurement text and,
when the text was moved, a leader.`,
		Example: `  acadsvg convert drawing.yaml -o drawing.svg
  acadsvg convert drawing.yaml --png preview.png
  acadsvg version`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Backward compatibility: acadsvg <file> behaves like convert.
			if len(args) == 0 {
				return cmd.Help()
			}
			return runConvert(args)
		},
	}

	acadsvg.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <document.yaml>",
		Short: "Convert a document file to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
}

func runConvert(args []string) error {
	acadsvg.Flags.UseFlags()
	opts := acadsvg.Flags.ConvertOptions

	result, err := acadsvg.ConvertFile(args[0])
	if err != nil {
		return err
	}

	var out *os.File
	if opts.Output == "" || opts.Output == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer out.Close()
	}
	if err := acadsvg.WriteSVG(out, result.Drawing, opts); err != nil {
		return err
	}
	if out != os.Stdout {
		logger.Infof("wrote %s", opts.Output)
	}

	if opts.PNG != "" {
		if err := writePNG(result.Drawing, opts); err != nil {
			return err
		}
		logger.Infof("wrote %s", opts.PNG)
	}

	fmt.Fprintln(os.Stderr, summarize(result))
	return nil
}

func writePNG(drawing *acadsvg.Drawing, opts acadsvg.ConvertOptions) error {
	var buf strings.Builder
	if err := svg.Write(&buf, drawing, opts.WriterOptions()); err != nil {
		return err
	}
	png, err := svg.Rasterize([]byte(buf.String()), opts.PNGSize)
	if err != nil {
		return fmt.Errorf("failed to rasterize preview: %w", err)
	}
	return os.WriteFile(opts.PNG, png, 0o644)
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryTypeStyle  = lipgloss.NewStyle().Faint(true)
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// summarize renders a per-entity-type conversion summary.
func summarize(result *acadsvg.Result) string {
	var sb strings.Builder
	sb.WriteString(summaryTitleStyle.Render(fmt.Sprintf("Converted %d entities", result.Converted())))

	types := make([]string, 0, len(result.Counts))
	for t := range result.Counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		sb.WriteString(fmt.Sprintf("\n  %s %d", summaryTypeStyle.Render(t), result.Counts[t]))
	}

	if n := len(result.SkippedEntities); n > 0 {
		sb.WriteString("\n")
		sb.WriteString(summaryWarnStyle.Render(fmt.Sprintf("Skipped %d entities", n)))
		for _, s := range result.SkippedEntities {
			sb.WriteString(fmt.Sprintf("\n  #%d %s: %v", s.Index, s.Type, s.Err))
		}
	}
	return sb.String()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("acadsvg %s (commit %s, built %s, %s)", version, commit, date, runtime.Version())
}
