package docupload

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toothbrush/wiki-llm-import/anythingllm"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// DefaultPause is how long to wait between uploads, so as not to hammer the service.
const DefaultPause = 500 * time.Millisecond

// DocumentService is the slice of the AnythingLLM API the upload loop needs.
type DocumentService interface {
	UploadDocument(ctx context.Context, filename string, data []byte) (*anythingllm.UploadResponse, error)
	UpdateEmbeddings(ctx context.Context, slug string, adds []string) error
}

type Uploader struct {
	Service DocumentService

	// Slug of the workspace to embed into, and its display name for the summary.
	Slug      string
	Workspace string

	Pause time.Duration

	Logger *log.Logger
	// If set, a progress bar is drawn here, and per-file log lines go here too so they don't
	// tear the bar.  Logger then only sees what Upload's caller prints.
	Progress io.Writer
}

// Result is the outcome of one file.  Err is set when either step failed.
type Result struct {
	File     string
	Uploaded bool
	Location string
	Embedded bool
	Err      error
}

type Summary struct {
	Total     int
	Uploaded  int
	Embedded  int
	Workspace string
}

// Record folds one file's result into the running totals.
func (s *Summary) Record(r Result) {
	if r.Uploaded {
		s.Uploaded++
	}
	if r.Embedded {
		s.Embedded++
	}
}

func (s Summary) Report(logger *log.Logger) {
	rule := strings.Repeat("=", 50)
	logger.Printf("\n%s\n", rule)
	logger.Println("Upload Complete!")
	logger.Printf("  - Documents uploaded: %d/%d\n", s.Uploaded, s.Total)
	logger.Printf("  - Documents embedded: %d/%d\n", s.Embedded, s.Total)
	logger.Printf("  - Workspace: %s\n", s.Workspace)
	logger.Println(rule)
}

// Upload pushes each file to the service and asks for it to be embedded into the workspace.
// A failure on one file never stops the others; only cancellation of ctx does.
func (u *Uploader) Upload(ctx context.Context, files []string) (Summary, error) {
	logger := u.Logger
	if logger == nil {
		logger = log.Default()
	}

	summary := Summary{Total: len(files), Workspace: u.Workspace}

	var progress *mpb.Progress
	var bar *mpb.Bar
	if u.Progress != nil {
		progress = mpb.New(mpb.WithOutput(u.Progress), mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("uploads:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.NewPercentage("%d"),
			),
		)
		// per-file lines are printed above the bar instead of through it
		logger = log.New(progress, logger.Prefix(), logger.Flags())
	}
	finish := func() {
		if progress == nil {
			return
		}
		if !bar.Completed() {
			bar.Abort(false)
		}
		progress.Wait()
	}

	for i, file := range files {
		if i > 0 && u.Pause > 0 {
			select {
			case <-time.After(u.Pause):
			case <-ctx.Done():
				finish()
				return summary, fmt.Errorf("docupload: upload interrupted: %w", context.Cause(ctx))
			}
		}
		if err := ctx.Err(); err != nil {
			finish()
			return summary, fmt.Errorf("docupload: upload interrupted: %w", err)
		}

		logger.Printf("\n[%d/%d] Uploading: %s\n", i+1, len(files), filepath.Base(file))
		result := u.uploadOne(ctx, file, logger)
		summary.Record(result)

		if bar != nil {
			bar.Increment()
		}
	}

	finish()
	return summary, nil
}

func (u *Uploader) uploadOne(ctx context.Context, file string, logger *log.Logger) Result {
	result := Result{File: file}
	name := filepath.Base(file)

	data, err := os.ReadFile(file)
	if err != nil {
		result.Err = fmt.Errorf("docupload: couldn't read %s: %w", file, err)
		logger.Printf("  Error uploading %s: %v\n", name, result.Err)
		return result
	}

	resp, err := u.Service.UploadDocument(ctx, name, data)
	if err != nil {
		result.Err = err
		logger.Printf("  Error uploading %s: %v\n", name, err)
		return result
	}
	result.Uploaded = true

	result.Location = resp.FirstLocation()
	if result.Location == "" {
		logger.Printf("  No document location returned for %s, not embedding\n", name)
		return result
	}

	logger.Println("  Embedding document...")
	if err := u.Service.UpdateEmbeddings(ctx, u.Slug, []string{result.Location}); err != nil {
		result.Err = err
		logger.Printf("  ✗ Embedding failed: %v\n", err)
		return result
	}

	result.Embedded = true
	logger.Println("  ✓ Embedded successfully")
	return result
}
