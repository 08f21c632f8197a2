// Package llm adds optional natural-language narration of analysis
// reports. Narration runs after the analysis and never feeds back into
// scores, pruning or rankings.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider is a narration backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Narrate generates a short commentary on a report digest.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest is the input for narration.
type NarrateRequest struct {
	// Digest is the plain-text rendering of the analysis result.
	Digest string

	// Arguments is the strict allowlist of argument names the model may
	// mention; it cannot introduce arguments that are not in the
	// framework.
	Arguments []string

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the provider-specific model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// NarrateResponse is the narration output.
type NarrateResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama" or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int
}

// BuildPrompt constructs the default narration prompt. The model is told
// to describe the reported structure only, never to judge which arguments
// are true.
func BuildPrompt(digest string, arguments []string) string {
	var b strings.Builder
	b.WriteString("You are narrating the result of an abstract argumentation analysis.\n")
	b.WriteString("The analysis is purely structural: it reports which attacks survived a vote-based\n")
	b.WriteString("credibility test, or which sets of arguments are jointly acceptable. It never\n")
	b.WriteString("determines what is true.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Mention ONLY arguments from this list: ")
	b.WriteString(strings.Join(arguments, ", "))
	b.WriteString("\n2. Do not assert that any argument is correct or incorrect.\n")
	b.WriteString("3. Describe the reported structure in plain language, in at most two paragraphs.\n\n")
	fmt.Fprintf(&b, "ANALYSIS RESULT:\n%s\n", digest)
	return b.String()
}
