package wikiexport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Page is a handle on one wiki page.  Content is fetched lazily via Fetch, because that can fail
// for one page without the others being affected.
type Page struct {
	Title        string
	LastModified string

	Fetch func(ctx context.Context) (string, error)
}

// PageSource yields pages in order, returning io.EOF when there are no more.
type PageSource interface {
	Next(ctx context.Context) (*Page, error)
}

type Exporter struct {
	OutputDir string

	// Stop after this many pages; 0 means no limit.
	Limit int

	Logger *log.Logger
}

// Outcome is the result of exporting a single page.
type Outcome struct {
	Title    string
	Filename string
	Path     string
	Err      error
}

type Summary struct {
	Exported  int
	Errors    int
	OutputDir string
}

// Record folds one page outcome into the running totals.
func (s *Summary) Record(o Outcome) {
	if o.Err != nil {
		s.Errors++
		return
	}
	s.Exported++
}

func (s Summary) Report(logger *log.Logger) {
	rule := strings.Repeat("=", 50)
	logger.Printf("\n%s\n", rule)
	logger.Println("Export Complete!")
	logger.Printf("  - Pages exported: %d\n", s.Exported)
	logger.Printf("  - Errors: %d\n", s.Errors)
	logger.Printf("  - Output directory: %s\n", s.OutputDir)
	logger.Println(rule)
}

// Export writes every page src yields into OutputDir.  Per-page failures are logged and counted;
// only a failure of the source itself (or ctx) aborts the run.
func (e *Exporter) Export(ctx context.Context, src PageSource) (Summary, error) {
	logger := e.logger()

	outputDir, err := filepath.Abs(e.OutputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("wikiexport: couldn't resolve output directory %s: %w", e.OutputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return Summary{}, fmt.Errorf("wikiexport: couldn't create directory %s: %w", outputDir, err)
	}
	logger.Printf("Output directory: %s\n", outputDir)

	summary := Summary{OutputDir: outputDir}
	writtenBy := make(map[string]string) // filename -> title that wrote it this run

	for i := 0; ; i++ {
		if e.Limit > 0 && i >= e.Limit {
			logger.Printf("\nReached limit of %d pages.\n", e.Limit)
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("wikiexport: export interrupted: %w", err)
		}

		page, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("wikiexport: couldn't get next page: %w", err)
		}

		logger.Printf("[%d] Exporting: %s\n", i+1, page.Title)
		outcome := e.exportPage(ctx, outputDir, page)
		if outcome.Err != nil {
			logger.Printf("  Error exporting '%s': %v\n", page.Title, outcome.Err)
		} else if prev, ok := writtenBy[outcome.Filename]; ok && prev != page.Title {
			logger.Printf("  Warning: '%s' overwrote '%s' (both map to %s)\n", page.Title, prev, outcome.Filename)
		}
		if outcome.Err == nil {
			writtenBy[outcome.Filename] = page.Title
		}

		summary.Record(outcome)
	}

	return summary, nil
}

func (e *Exporter) exportPage(ctx context.Context, outputDir string, page *Page) Outcome {
	outcome := Outcome{Title: page.Title}

	if page.Fetch == nil {
		outcome.Err = fmt.Errorf("wikiexport: no way to fetch content for '%s'", page.Title)
		return outcome
	}

	content, err := page.Fetch(ctx)
	if err != nil {
		outcome.Err = fmt.Errorf("wikiexport: could not get content: %w", err)
		return outcome
	}

	doc := FormatPage(PageRecord{
		Title:        page.Title,
		Content:      content,
		LastModified: page.LastModified,
	})

	outcome.Filename = FilenameForTitle(page.Title)
	outcome.Path, outcome.Err = WriteDocument(outputDir, outcome.Filename, doc)
	return outcome
}

func (e *Exporter) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}
