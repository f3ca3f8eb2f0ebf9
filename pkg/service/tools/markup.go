package tools

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
)

// MarkupToText returns the trimmed text content of the document body
func MarkupToText(html string) (*model.PlainText, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newOperationError("failed to parse markup", err)
	}

	return &model.PlainText{
		Text: strings.TrimSpace(doc.Find("body").Text()),
	}, nil
}
