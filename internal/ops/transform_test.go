package ops

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

func TestTransform_Scenario(t *testing.T) {
	gen := &fakeGenerator{reply: "Just shipped a new feature! 🚀"}
	draft := "just shipped a new feature, its pretty cool i think"

	out, err := Transform(context.Background(), gen, TransformInput{
		Draft:   draft,
		Filters: &tweet.Filters{MaxChars: 100, EmojiMode: tweet.EmojiFew},
	})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if out.Transformed != "Just shipped a new feature! 🚀" {
		t.Errorf("Transformed = %q", out.Transformed)
	}

	if gen.calls() != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls())
	}
	p := gen.prompts[0]
	for _, want := range []string{"Maximum 100 characters", "Use 1-2 emojis max", "No hashtags", draft} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestTransform_TrimsResponse(t *testing.T) {
	gen := &fakeGenerator{reply: "\n  Clean post  \n"}

	out, err := Transform(context.Background(), gen, TransformInput{Draft: "x"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if out.Transformed != "Clean post" {
		t.Errorf("Transformed = %q, want %q", out.Transformed, "Clean post")
	}
}

func TestTransform_DefaultFilters(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}

	if _, err := Transform(context.Background(), gen, TransformInput{Draft: "x"}); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "Maximum 280 characters") {
		t.Error("expected default 280 ceiling")
	}
	if !strings.Contains(gen.prompts[0], "Use 1-2 emojis max") {
		t.Error("expected default few-emoji rule")
	}
}

func TestTransform_Context(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}

	_, err := Transform(context.Background(), gen, TransformInput{Draft: "x", Context: "Tech founder, casual tone"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "Author style: Tech founder, casual tone") {
		t.Error("expected author style clause")
	}
}

func TestTransform_EmptyDraftSkipsGenerator(t *testing.T) {
	for _, draft := range []string{"", "   ", "\n\t"} {
		gen := &fakeGenerator{reply: "should not be used"}

		_, err := Transform(context.Background(), gen, TransformInput{Draft: draft})
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("draft %q: expected INVALID_REQUEST, got %v", draft, err)
		}
		if gen.calls() != 0 {
			t.Errorf("draft %q: generator called %d times, want 0", draft, gen.calls())
		}
	}
}

func TestTransform_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("ollama request failed: 500 Internal Server Error")}

	_, err := Transform(context.Background(), gen, TransformInput{Draft: "x"})
	if !errors.Is(err, errors.ErrGenerationFailed) {
		t.Fatalf("expected GENERATION_FAILED, got %v", err)
	}
	appErr := errors.As(err)
	if appErr.Status != 500 {
		t.Errorf("Status = %d, want 500", appErr.Status)
	}
	if !strings.Contains(appErr.Message, "500 Internal Server Error") {
		t.Errorf("Message %q should carry the underlying status", appErr.Message)
	}
	if !strings.Contains(appErr.Message, "Is Ollama running at http://localhost:11434?") {
		t.Errorf("Message %q should carry the reachability hint", appErr.Message)
	}
	if gen.calls() != 1 {
		t.Errorf("generator calls = %d, want exactly 1 (no retry)", gen.calls())
	}
}
