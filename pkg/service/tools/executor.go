package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/service/fetch"
)

// Fetcher retrieves a remote page for metadata extraction
type Fetcher interface {
	Get(ctx context.Context, u *url.URL) (*fetch.Response, error)
}

// Executor runs the operation matching a validated tool input
type Executor struct {
	fetcher     Fetcher
	jpegQuality int
}

type Option func(*Executor)

func WithFetcher(f Fetcher) Option {
	return func(x *Executor) {
		x.fetcher = f
	}
}

func WithJPEGQuality(quality int) Option {
	return func(x *Executor) {
		if quality >= 1 && quality <= 100 {
			x.jpegQuality = quality
		}
	}
}

func New(opts ...Option) *Executor {
	x := &Executor{
		jpegQuality: DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Execute dispatches input to its operation. Operation failures are returned
// as *OperationError.
func (x *Executor) Execute(ctx context.Context, input model.ToolInput) (model.ToolOutput, error) {
	switch in := input.(type) {
	case *model.TextStatsInput:
		return CountText(in.Text), nil
	case *model.ImageResizeInput:
		return ResizeImage(in, x.jpegQuality)
	case *model.PageMetadataInput:
		return x.fetchMetadata(ctx, in)
	case *model.MarkupToTextInput:
		return MarkupToText(in.HTML)
	case *model.PercentageInput:
		return CalculatePercentage(in.Value, in.Percentage)
	default:
		return nil, goerr.New("unsupported tool input", goerr.V("type", fmt.Sprintf("%T", input)))
	}
}
