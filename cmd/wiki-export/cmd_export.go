/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/toothbrush/wiki-llm-import/internal/cliconfig"
	"github.com/toothbrush/wiki-llm-import/mediawiki"
	"github.com/toothbrush/wiki-llm-import/wikiexport"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

func runExport(ctx context.Context) error {
	if WikiURL == "" {
		return fmt.Errorf("No wiki configured.  Use --url, set MEDIAWIKI_URL, or set url in your config file.")
	}

	outputDir, err := cliconfig.ExpandPath(OutputDir)
	if err != nil {
		return err
	}

	logger := log.New(os.Stdout, "", 0)

	host, scheme := mediawiki.SplitScheme(WikiURL)
	api, err := mediawiki.NewAPI(host, WikiPath, scheme)
	if err != nil {
		return fmt.Errorf("cmd: MediaWiki API creation failed: %w", err)
	}
	debugLog("API endpoint: %s\n", api.Endpoint)

	if WithVCR {
		r, err := useRecorder(api)
		if err != nil {
			return err
		}
		defer r.Stop() // Make sure recorder is stopped once done with it
	}

	logger.Printf("Connecting to %s...\n", api.Endpoint.Host)
	site, err := api.SiteInfo(ctx)
	if err != nil {
		return fmt.Errorf("cmd: couldn't connect to wiki at %s: %w", api.Endpoint, err)
	}
	logger.Println("Connected successfully")
	debugLog("  Site: %s (%s)\n", site.SiteName, site.Generator)

	if Username != "" && Password != "" {
		logger.Printf("Logging in as %s...\n", Username)
		if err := api.Login(ctx, Username, Password); err != nil {
			logger.Printf("Warning: Login failed: %v\n", err)
			logger.Println("Continuing without authentication...")
		} else {
			logger.Println("Logged in successfully")
		}
	}

	source := &wikiexport.WikiSource{Pages: api.AllPages(Namespace)}
	if Rendered {
		source.Converter = wikiexport.NewMarkdownConverter(&url.URL{
			Scheme: api.Endpoint.Scheme,
			Host:   api.Endpoint.Host,
		})
	}

	if Limit > 0 {
		logger.Printf("Limit: %d pages\n", Limit)
	}

	exporter := &wikiexport.Exporter{
		OutputDir: outputDir,
		Limit:     Limit,
		Logger:    logger,
	}
	summary, err := exporter.Export(ctx, source)
	if err != nil {
		return fmt.Errorf("cmd: export of namespace %d failed: %w", Namespace, err)
	}

	summary.Report(logger)
	return nil
}

// useRecorder swaps a go-vcr recorder in as the transport of api.Client.  Credentials never make
// it into the cassette.
func useRecorder(api *mediawiki.API) (*recorder.Recorder, error) {
	realTransport := api.Client.Transport
	if realTransport == nil {
		realTransport = http.DefaultTransport
	}

	opts := &recorder.Options{
		CassetteName:       "fixtures/mediawiki",
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      realTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("cmd: Couldn't set up go-vcr recording: %w", err)
	}

	r.AddHook(scrubCredentials, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	// Keep the client (and its cookie jar), just route it through the recorder.
	api.Client.Transport = r
	return r, nil
}

func scrubCredentials(i *cassette.Interaction) error {
	delete(i.Request.Headers, "Authorization")
	delete(i.Request.Headers, "Cookie")
	delete(i.Response.Headers, "Set-Cookie")

	if i.Request.Form.Has("lgpassword") {
		i.Request.Form.Set("lgpassword", "REDACTED")
		i.Request.Body = i.Request.Form.Encode()
	}
	return nil
}
