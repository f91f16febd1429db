package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/llm"
	"github.com/quantsift/quantsift/internal/screen"
)

const commentarySystemPrompt = `You are an equity research assistant. You receive the output of a
quantitative value/growth screen over an index. Write a short, factual
commentary on the shortlist: notable sector concentrations, standouts
by valuation or analyst upside, and anything that looks like a data
artifact. Do not give investment advice. Keep it under 200 words.`

// commentaryTopN caps how many records are included in the prompt.
const commentaryTopN = 15

// Commentary asks the configured LLM provider for a short written
// summary of a completed run. It is strictly additive; callers should
// treat a failure here as cosmetic.
func Commentary(ctx context.Context, provider llm.Provider, result *screen.Result) (string, error) {
	if provider == nil {
		return "", fmt.Errorf("no LLM provider configured")
	}
	if result.Empty() {
		return "", core.ErrNoMatches
	}

	resp, err := provider.Complete(ctx, llm.Request{
		System:    commentarySystemPrompt,
		Prompt:    commentaryPrompt(result),
		MaxTokens: 512,
	})
	if err != nil {
		return "", core.WrapError(core.ErrLLMFailed, err)
	}

	return strings.TrimSpace(resp.Content), nil
}

// commentaryPrompt renders the shortlist head as a compact plain-text
// block for the model.
func commentaryPrompt(result *screen.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Screen of %s: %d matches out of %d constituents scanned (%d fetch failures).\n",
		result.Index, len(result.Records), result.Scanned, result.Failed)
	fmt.Fprintf(&sb, "Thresholds: max P/E %.1f, max forward P/E %.1f, max PEG %.1f, min ROE %.1f%%, min upside %.1f%%.\n\n",
		result.Thresholds.MaxPE, result.Thresholds.MaxForwardPE, result.Thresholds.MaxPEG,
		result.Thresholds.MinROE, result.Thresholds.MinUpside)
	sb.WriteString("Top matches (ascending value score, lower is cheaper):\n")

	for _, r := range result.Records {
		if r.Rank > commentaryTopN {
			break
		}
		fmt.Fprintf(&sb, "%d. %s (%s, %s) score=%.2f pe=%s peg=%s upside=%s roe=%s\n",
			r.Rank, r.Symbol, r.Company, r.Sector, r.ValueScore,
			displayFloat(r.TrailingPE), displayFloat(r.PEGRatio),
			displayFloat(r.Upside), displayFloat(r.ROE))
	}

	return sb.String()
}
