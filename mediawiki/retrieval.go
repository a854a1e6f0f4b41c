package mediawiki

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

const (
	listTimeout    = 30 * time.Second
	contentTimeout = 30 * time.Second

	// how many titles to ask for per allpages round trip
	defaultBatchSize = 50
)

// PageHandle is one page yielded by a PageIterator.  Title and Touched come from the listing;
// the text itself is only fetched when Content is called, since that can fail on its own.
type PageHandle struct {
	ID        int
	Namespace int
	Title     string
	Touched   string // empty if the wiki didn't report one

	api *API
}

// Content fetches the wikitext of the page.
func (p *PageHandle) Content(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, contentTimeout)
	defer cancel()

	text, err := p.api.GetPageText(ctx, p.Title)
	if err != nil {
		return "", fmt.Errorf("mediawiki: couldn't fetch content of '%s': %w", p.Title, err)
	}
	return text, nil
}

// RenderedHTML fetches the parser output of the page.
func (p *PageHandle) RenderedHTML(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, contentTimeout)
	defer cancel()

	html, err := p.api.GetRenderedHTML(ctx, p.Title)
	if err != nil {
		return "", fmt.Errorf("mediawiki: couldn't render '%s': %w", p.Title, err)
	}
	return html, nil
}

// PageIterator walks every page in a namespace, one batch request at a time.  It is
// forward-only; nothing is requested until the first call to Next.
type PageIterator struct {
	api   *API
	query AllPagesQuery

	buffer []Page
	done   bool
}

// AllPages returns an iterator over every page in namespace.
func (api *API) AllPages(namespace int) *PageIterator {
	return &PageIterator{
		api: api,
		query: AllPagesQuery{
			Namespace: namespace,
			Limit:     defaultBatchSize,
		},
	}
}

// Next returns the next page, or io.EOF once the namespace is exhausted.
func (it *PageIterator) Next(ctx context.Context) (*PageHandle, error) {
	for len(it.buffer) == 0 {
		if it.done {
			return nil, io.EOF
		}
		if err := it.fetchBatch(ctx); err != nil {
			return nil, err
		}
	}

	p := it.buffer[0]
	it.buffer = it.buffer[1:]

	return &PageHandle{
		ID:        p.PageID,
		Namespace: p.Namespace,
		Title:     p.Title,
		Touched:   p.Touched,
		api:       it.api,
	}, nil
}

func (it *PageIterator) fetchBatch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	resp, err := it.api.GetAllPages(ctx, it.query)
	if err != nil {
		return fmt.Errorf("mediawiki: couldn't list pages in namespace %d: %w", it.query.Namespace, err)
	}

	// generator results come back keyed by page id, not in title order; the listing itself is
	// ordered by database key across batches, so sort within the batch to match.
	it.buffer = append(it.buffer, sortedByTitle(resp.Query.Pages)...)

	if len(resp.Continue) == 0 {
		it.done = true
		return nil
	}

	next, ok := resp.Continue["gapcontinue"]
	if !ok || next == "" {
		return fmt.Errorf("mediawiki: expected parameter 'gapcontinue' was empty")
	}
	it.query.GapContinue = next
	it.query.Continue = resp.Continue["continue"]
	return nil
}

// sortedByTitle orders pages the way the wiki stores titles: as DB keys, with underscores for
// spaces, compared bytewise.  So "AB" sorts before "A B".
func sortedByTitle(pages []Page) []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	sort.SliceStable(out, func(i, j int) bool { return dbKey(out[i].Title) < dbKey(out[j].Title) })
	return out
}

func dbKey(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}
