// Command figura analyzes the vector drawings of a PDF and writes
// debug overlay images next to a console report of everything it found.
//
// Usage:
//
//	figura -pdf document.pdf -pages 1,2 -dpi 150 -out ./overlays
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/figura/fitzdoc"
	"github.com/tsawler/figura/layout"
	"github.com/tsawler/figura/model"
	"github.com/tsawler/figura/render"
)

var log = logrus.New()

func main() {
	pdfPath := flag.String("pdf", "", "path to the PDF file to analyze (required)")
	pagesArg := flag.String("pages", "", "comma-separated 1-indexed pages to analyze (default: all)")
	dpi := flag.Float64("dpi", 150, "raster resolution for the overlay images")
	outDir := flag.String("out", ".", "directory to write overlay images into")
	labels := flag.Bool("labels", true, "draw entity IDs on the overlays")
	logLevel := flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", *logLevel, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if *pdfPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	pages, err := parsePages(*pagesArg)
	if err != nil {
		log.Fatalf("Invalid -pages value: %v", err)
	}

	if err := run(*pdfPath, pages, *dpi, *outDir, *labels); err != nil {
		log.Fatal(err)
	}
}

func run(pdfPath string, pages []int, dpi float64, outDir string, labels bool) error {
	doc, err := fitzdoc.Open(pdfPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if len(pages) == 0 {
		for i := 1; i <= doc.NumPages(); i++ {
			pages = append(pages, i)
		}
	}

	analyzer := layout.NewAnalyzer()
	analyzer.SetTrace(layout.NewLogTrace(log))

	overlayCfg := render.DefaultOverlayConfig()
	overlayCfg.ShowLabels = labels

	for _, page := range pages {
		idx := page - 1

		log.WithFields(logrus.Fields{
			"page": page,
			"dpi":  dpi,
		}).Info("Analyzing page")

		geom, err := doc.Geometry(idx, dpi)
		if err != nil {
			return err
		}
		texts, images, err := doc.Blocks(idx)
		if err != nil {
			return err
		}
		prims, err := doc.Primitives(idx)
		if err != nil {
			return err
		}

		res, err := analyzer.AnalyzePage(texts, images, prims, geom)
		if err != nil {
			return err
		}

		raster, err := doc.Render(idx, dpi)
		if err != nil {
			return err
		}

		rawPath := filepath.Join(outDir, fmt.Sprintf("page_%d_raw_layout.png", page))
		if err := render.SavePNG(render.RawLayout(raster, res, geom.Zoom, overlayCfg), rawPath); err != nil {
			return err
		}
		log.WithField("path", rawPath).Info("Saved RAW layout image")

		mergedPath := filepath.Join(outDir, fmt.Sprintf("page_%d_merged_layout.png", page))
		if err := render.SavePNG(render.MergedLayout(raster, res, geom.Zoom, overlayCfg), mergedPath); err != nil {
			return err
		}
		log.WithField("path", mergedPath).Info("Saved MERGED layout image")

		gridPath := filepath.Join(outDir, fmt.Sprintf("page_%d_coord_grid.png", page))
		if err := render.SavePNG(render.CoordinateGrid(raster, geom, overlayCfg), gridPath); err != nil {
			return err
		}
		log.WithField("path", gridPath).Info("Saved COORD GRID image")

		printReport(page, res)
	}

	return nil
}

// printReport writes the per-page findings to stdout, color-keyed the
// same way as the overlay images.
func printReport(page int, res *layout.Result) {
	heading := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	blue := color.New(color.FgBlue)

	heading.Printf("\n===== PAGE %d =====\n", page)

	red.Println("\n=== TEXT BLOCKS (red) ===")
	for _, b := range res.TextBlocks {
		fmt.Println(b.ID)
		fmt.Println("  bbox:", formatRect(b.Rect.X0, b.Rect.Y0, b.Rect.X1, b.Rect.Y1))
		fmt.Println("  text:", truncate(b.Text, 200))
		fmt.Println()
	}

	green.Println("=== IMAGE BLOCKS (green) ===")
	for _, b := range res.ImageBlocks {
		fmt.Println(b.ID)
		fmt.Println("  bbox:", formatRect(b.Rect.X0, b.Rect.Y0, b.Rect.X1, b.Rect.Y1))
		fmt.Println()
	}

	blue.Println("=== DRAWING PRIMITIVES (blue RAW) ===")
	for _, p := range res.Primitives {
		fmt.Println(p.ID)
		fmt.Println("  bbox:", formatRect(p.Rect.X0, p.Rect.Y0, p.Rect.X1, p.Rect.Y1))
		fmt.Println("  stroke:", formatColor(p.Stroke), " fill:", formatColor(p.Fill))
		fmt.Println()
	}

	blue.Println("=== FINAL DRAWING CLUSTERS (blue MERGED) ===")
	for _, c := range res.Clusters {
		fmt.Println(c.ID)
		fmt.Println("  bbox:", formatRect(c.Rect.X0, c.Rect.Y0, c.Rect.X1, c.Rect.Y1))
		fmt.Printf("  area: %.1f  cover: %.3f  y: [%.1f %.1f]\n\n", c.Area, c.CoverRatio, c.YMin, c.YMax)
	}
}

func formatRect(x0, y0, x1, y1 float64) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f, %.1f)", x0, y0, x1, y1)
}

func formatColor(c *model.Color) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", c.R, c.G, c.B)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// parsePages parses a comma-separated list of 1-indexed page numbers.
func parsePages(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(arg, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("page %q is not a number", part)
		}
		if p < 1 {
			return nil, fmt.Errorf("page %d is not positive", p)
		}
		pages = append(pages, p)
	}
	return pages, nil
}
