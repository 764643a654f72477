package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/piwi3910/CircleMosaic/internal/engine"
	"github.com/piwi3910/CircleMosaic/internal/export"
	"github.com/piwi3910/CircleMosaic/internal/gcode"
	"github.com/piwi3910/CircleMosaic/internal/importer"
	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/project"
)

const (
	plotRapidRate     = 5000 // mm/min assumed for plot time estimates
	maxBoundsWarnings = 5
)

// writeOutputs writes every extra output that was asked for.
func writeOutputs(w io.Writer, opts *options, canvas *engine.Canvas, result model.MosaicResult, manifest model.Manifest) error {
	if opts.manifestPath != "" {
		if err := project.ExportManifest(opts.manifestPath, manifest, result.Placements); err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
		wrote(w, opts.manifestPath, "run "+manifest.ID)
	}
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, result, manifest); err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		wrote(w, opts.pdfPath, "report")
	}
	if opts.xlsxPath != "" {
		if err := export.ExportLedger(opts.xlsxPath, result, manifest); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		wrote(w, opts.xlsxPath, fmt.Sprintf("%d rows", len(result.Placements)))
	}
	if opts.dxfPath != "" {
		if err := export.ExportDXF(opts.dxfPath, result); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		wrote(w, opts.dxfPath, "drawing")
	}
	if opts.overlayPath != "" {
		if err := export.ExportOverlay(opts.overlayPath, canvas.Result, result, export.DefaultOverlayStyle()); err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		wrote(w, opts.overlayPath, "outlines")
	}
	if opts.gcodePath != "" {
		if err := writeGCode(w, opts, result); err != nil {
			return fmt.Errorf("gcode: %w", err)
		}
	}
	return nil
}

func writeGCode(w io.Writer, opts *options, result model.MosaicResult) error {
	settings := gcode.DefaultPlotSettings()
	if opts.plotProfile != "" {
		settings.Profile = opts.plotProfile
	}
	if opts.plotScale > 0 {
		settings.Scale = opts.plotScale
	}
	settings.BedWidth = opts.bedWidth
	settings.BedHeight = opts.bedHeight

	gen := gcode.New(settings)
	program := gen.Generate(result)
	if err := os.WriteFile(opts.gcodePath, []byte(program), 0644); err != nil {
		return err
	}

	stats := gcode.Summarize(gcode.ParseGCode(program))
	eta := stats.EstimateDuration(settings.FeedRate, plotRapidRate)
	wrote(w, opts.gcodePath, fmt.Sprintf("%d arcs, %.0f mm drawn, about %s", stats.Arcs, stats.DrawLength, eta.Round(time.Second)))

	warnings := gcode.FormatBoundsWarnings(gen.CheckBedBounds(result))
	for k, msg := range warnings {
		if k == maxBoundsWarnings {
			yellow.Fprintf(w, "warning: %d more circles leave the bed\n", len(warnings)-k)
			break
		}
		yellow.Fprintf(w, "warning: %s\n", msg)
	}
	return nil
}

func wrote(w io.Writer, path, detail string) {
	green.Fprintf(w, "wrote %s", path)
	white.Fprintf(w, " (%s)\n", detail)
}

// inspect prints a summary of a circle list exported earlier.
func inspect(w io.Writer, path string) error {
	res := importer.Import(path)
	for _, msg := range res.Warnings {
		yellow.Fprintf(w, "warning: %s\n", msg)
	}
	for _, msg := range res.Errors {
		red.Fprintf(w, "%s\n", msg)
	}
	if len(res.Circles) == 0 {
		return fmt.Errorf("no circles read from %s", path)
	}

	s := importer.Summarize(res.Circles)
	cyan.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  circles:  %d\n", s.Count)
	fmt.Fprintf(w, "  radius:   %.2f .. %.2f (mean %.2f)\n", s.MinRadius, s.MaxRadius, s.MeanRadius)
	fmt.Fprintf(w, "  extent:   (%.2f, %.2f) .. (%.2f, %.2f)\n", s.MinX, s.MinY, s.MaxX, s.MaxY)
	return nil
}
