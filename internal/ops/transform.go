package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/prompt"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// TransformInput contains parameters for the Transform operation.
type TransformInput struct {
	Draft   string         // required, non-empty after trimming
	Filters *tweet.Filters // nil means defaults
	Context string         // optional author style
}

// TransformOutput contains the result of the Transform operation.
type TransformOutput struct {
	Transformed string `json:"transformed"`
}

// Transform rewrites a draft through the generator. The draft is validated
// before any network call; generator failures are reported once, unretried.
func Transform(ctx context.Context, gen Generator, input TransformInput) (*TransformOutput, error) {
	draft := strings.TrimSpace(input.Draft)
	if draft == "" {
		return nil, errors.NewInvalidRequest("Missing or invalid 'draft' field. Expected a string.")
	}

	filters := tweet.DefaultFilters()
	if input.Filters != nil {
		filters = input.Filters.Normalized()
	}

	instruction := prompt.Build(draft, filters, input.Context)

	text, err := gen.Generate(ctx, instruction)
	if err != nil {
		return nil, errors.NewGenerationFailed(err, gen.BaseURL())
	}

	return &TransformOutput{
		Transformed: strings.TrimSpace(text),
	}, nil
}
