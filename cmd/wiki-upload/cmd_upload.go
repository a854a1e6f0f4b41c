/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/toothbrush/wiki-llm-import/anythingllm"
	"github.com/toothbrush/wiki-llm-import/docupload"
	"github.com/toothbrush/wiki-llm-import/internal/cliconfig"
)

var missingKeyUsage = strings.TrimSpace(`
No AnythingLLM API key configured.

To get an API key:
  1. Open AnythingLLM
  2. Go to Settings > Developer > API Keys
  3. Create a new API key
  4. Pass it with --api-key, set ANYTHINGLLM_API_KEY, or add it to your .env file
`)

func runUpload(ctx context.Context) error {
	if APIKey == "" {
		return fmt.Errorf("cmd: ANYTHINGLLM_API_KEY not set\n\n%s", missingKeyUsage)
	}

	logger := log.New(os.Stdout, "", 0)

	api, err := anythingllm.NewAPI(ServiceURL, APIKey)
	if err != nil {
		return fmt.Errorf("cmd: AnythingLLM API creation failed: %w", err)
	}

	logger.Printf("Connecting to AnythingLLM at %s...\n", api.BaseURI)
	if err := api.Ping(ctx); err != nil {
		return fmt.Errorf("cmd: Cannot connect to AnythingLLM.  Is it running? %w", err)
	}
	logger.Println("Connected successfully")

	resolver := &docupload.Resolver{Service: api, Logger: logger}
	slug, err := resolver.Resolve(ctx, Workspace)
	if err != nil {
		return err
	}
	debugLog("Workspace slug: %s\n", slug)

	documentsDir, err := cliconfig.ExpandPath(DocumentsDir)
	if err != nil {
		return err
	}
	files, err := docupload.ListDocuments(documentsDir)
	if err != nil {
		return fmt.Errorf("cmd: %w.  Run wiki-export first, or point --documents at your export", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("cmd: no documents found in %s (supported: %s)",
			documentsDir, strings.Join(docupload.SupportedExtensions(), ", "))
	}
	logger.Printf("Found %d documents to upload\n", len(files))

	// same stream as the logger, so per-file lines land above the bar
	var progress io.Writer = os.Stdout
	if NoProgress {
		progress = nil
	}

	uploader := &docupload.Uploader{
		Service:   api,
		Slug:      slug,
		Workspace: Workspace,
		Pause:     Pause,
		Logger:    logger,
		Progress:  progress,
	}
	summary, err := uploader.Upload(ctx, files)
	if err != nil {
		return fmt.Errorf("cmd: upload interrupted: %w", err)
	}

	summary.Report(logger)
	return nil
}
