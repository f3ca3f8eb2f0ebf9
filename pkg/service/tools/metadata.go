package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/service/fetch"
)

func (x *Executor) fetchMetadata(ctx context.Context, in *model.PageMetadataInput) (*model.PageMetadata, error) {
	if x.fetcher == nil {
		return nil, newOperationError("page fetching is not configured", nil)
	}

	resp, err := x.fetcher.Get(ctx, in.URL)
	if err != nil {
		return nil, newOperationError(fetchFailureMessage(err), err, goerr.V("url", in.URL.String()))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newOperationError(fmt.Sprintf("page responded with status %d", resp.StatusCode), nil,
			goerr.V("url", in.URL.String()))
	}

	return ExtractMetadata(resp.Body)
}

func fetchFailureMessage(err error) string {
	switch {
	case errors.Is(err, fetch.ErrTimeout):
		return "timed out fetching page"
	case errors.Is(err, fetch.ErrDeniedDestination):
		return "destination is not allowed"
	case errors.Is(err, fetch.ErrUnsupportedScheme):
		return "only http and https URLs can be fetched"
	case errors.Is(err, fetch.ErrTooLarge):
		return "page is too large"
	case errors.Is(err, fetch.ErrTooManyRedirects):
		return "too many redirects"
	default:
		return "failed to fetch page"
	}
}

// ExtractMetadata parses markup and collects the title and meta tags. A meta
// element is keyed by its name attribute, falling back to property; later
// elements overwrite earlier ones with the same key.
func ExtractMetadata(body []byte) (*model.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, newOperationError("failed to parse page", err)
	}

	metaTags := make(map[string]string)
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("name", "")
		if key == "" {
			key = s.AttrOr("property", "")
		}
		content := s.AttrOr("content", "")
		if key == "" || content == "" {
			return
		}
		metaTags[key] = content
	})

	return &model.PageMetadata{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		MetaTags:    metaTags,
		Description: metaTags["description"],
		Keywords:    metaTags["keywords"],
		OGTags: model.OGTags{
			Title:       metaTags["og:title"],
			Description: metaTags["og:description"],
			Image:       metaTags["og:image"],
		},
	}, nil
}
