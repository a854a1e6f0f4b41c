package wikiexport

import (
	"context"
	"fmt"

	"github.com/toothbrush/wiki-llm-import/mediawiki"
)

// WikiSource adapts a mediawiki.PageIterator to a PageSource.  With a Converter set, page
// content is the rendered HTML converted to Markdown instead of raw wikitext.
type WikiSource struct {
	Pages     *mediawiki.PageIterator
	Converter *MarkdownConverter
}

func (s *WikiSource) Next(ctx context.Context) (*Page, error) {
	handle, err := s.Pages.Next(ctx)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Title:        handle.Title,
		LastModified: handle.Touched,
		Fetch:        handle.Content,
	}

	if s.Converter != nil {
		page.Fetch = func(ctx context.Context) (string, error) {
			html, err := handle.RenderedHTML(ctx)
			if err != nil {
				return "", err
			}
			markdown, err := s.Converter.Convert(html)
			if err != nil {
				return "", fmt.Errorf("wikiexport: couldn't convert '%s': %w", handle.Title, err)
			}
			return markdown, nil
		}
	}

	return page, nil
}
