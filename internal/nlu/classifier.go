package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"waypilot/pkg/llmprovider"
)

// Classify runs the fast model over one utterance. Malformed model output is
// data, not a fatal error: it produces an unknown-intent result requesting
// escalation. Transport and credential failures surface as ErrUnavailable.
func (c *Classifier) Classify(ctx context.Context, utterance, contextSummary string) (Result, error) {
	return c.classifyWith(ctx, c.fast, LogPrefixClassify, utterance, contextSummary, true)
}

// ClassifyAdvanced runs the escalation model with the same utterance plus
// accumulated session context. A parse failure here does not request another
// escalation round.
func (c *Classifier) ClassifyAdvanced(ctx context.Context, utterance, contextSummary string) (Result, error) {
	return c.classifyWith(ctx, c.advanced, LogPrefixClassifyAdvanced, utterance, contextSummary, false)
}

func (c *Classifier) classifyWith(ctx context.Context, provider llmprovider.Provider, logPrefix, utterance, contextSummary string, escalateOnMalformed bool) (Result, error) {
	if provider == nil {
		return Result{}, fmt.Errorf("%s: %w: no provider configured", logPrefix, ErrUnavailable)
	}

	prompt := ""
	if contextSummary != "" {
		prompt = PromptContextPrefix + contextSummary + "\n\n"
	}
	prompt += fmt.Sprintf(PromptClassifySystem, utterance)

	resp, err := provider.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: ClassifierTemperature,
	})
	if err != nil {
		// A failed model call is a configuration/availability problem,
		// never a low-confidence guess.
		return Result{}, fmt.Errorf("%s: %w: %v", logPrefix, ErrUnavailable, err)
	}

	text := firstText(resp)
	if text == "" {
		c.l.Warnf(ctx, "%s: empty model response", logPrefix)
		return malformedResult(escalateOnMalformed), nil
	}

	var result Result
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &result); err != nil {
		c.l.Warnf(ctx, "%s: model output failed to parse: %v", logPrefix, err)
		return malformedResult(escalateOnMalformed), nil
	}

	sanitize(&result)
	c.l.Infof(ctx, "%s: intent=%s confidence=%.2f stops=%d", logPrefix, result.Intent, result.Confidence, len(result.Stops))
	return result, nil
}

// malformedResult is the fixed output for unparseable model text.
func malformedResult(requiresAdvanced bool) Result {
	return Result{
		Intent:           IntentUnknown,
		Confidence:       0,
		RequiresAdvanced: requiresAdvanced,
	}
}

func sanitize(r *Result) {
	if !validIntents[r.Intent] {
		r.Intent = IntentUnknown
	}
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
}

func firstText(resp *llmprovider.Response) string {
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// stripCodeFences removes a surrounding markdown code block if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
