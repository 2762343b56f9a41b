package analysis

import (
	"context"

	"github.com/StorePulse/StorePulse/internal/pkg/llm"
)

// reportSpec parameterizes one analysis variant: its prompt, its input cap
// and how its JSON gets normalized. Every variant runs through runReport so
// the gateway's sentinel-error contract is honored in exactly one place.
type reportSpec[T any] struct {
	system   string
	maxInput int
	prompt   func(reviews []string) string
	// normalize shapes the model JSON; inputCount is the capped batch size
	// the count invariants are enforced against.
	normalize func(raw map[string]any, inputCount int) T
	// fallback produces a fully-populated default when the gateway fails or
	// the input is empty. Callers always receive a well-shaped result.
	fallback func(inputCount int) T
}

func runReport[T any](ctx context.Context, gw llm.Gateway, spec reportSpec[T], reviews []string) T {
	if len(reviews) == 0 {
		return spec.fallback(0)
	}

	sample := reviews
	if spec.maxInput > 0 && len(sample) > spec.maxInput {
		sample = sample[:spec.maxInput]
	}

	raw, err := gw.Ask(ctx, spec.system, spec.prompt(sample))
	if err != nil {
		return spec.fallback(len(sample))
	}
	return spec.normalize(raw, len(sample))
}
