// Package triage implements the automated first-pass pipeline for incoming
// tickets: classify the topic, retrieve knowledge-base material, draft a
// reply and decide between auto-close and human escalation.
package triage

import "github.com/shubham7silyan/HelpDeskBackend/internal/domain"

// Classification is the outcome of categorising ticket text.
type Classification struct {
	Category   domain.Category
	Confidence float64
}

// Draft is a composed reply plus its ordered citation list. Citation k
// always corresponds to the k-th entry referenced in the reply body.
type Draft struct {
	Reply     string
	Citations []string
}

// ProviderInfo identifies the capability that produced a suggestion.
type ProviderInfo struct {
	Provider      string
	Model         string
	PromptVersion string
}

// Provider is the classification/drafting capability. The deterministic
// keyword engine and a future model-backed variant satisfy the same
// contract; the pipeline never knows which one it is talking to.
type Provider interface {
	Classify(text string) Classification
	Draft(ticketTitle string, entries []RetrievedArticle) Draft
	Info() ProviderInfo
}

// NewProvider selects a capability variant by name. Unknown names fall back
// to the deterministic engine, which is the only variant shipped today.
func NewProvider(kind string) Provider {
	switch kind {
	case "deterministic", "":
		return deterministicProvider{}
	default:
		return deterministicProvider{}
	}
}

type deterministicProvider struct{}

func (deterministicProvider) Classify(text string) Classification {
	return classifyKeywords(text)
}

func (deterministicProvider) Draft(ticketTitle string, entries []RetrievedArticle) Draft {
	return draftReply(ticketTitle, entries)
}

func (deterministicProvider) Info() ProviderInfo {
	return ProviderInfo{
		Provider:      "stub",
		Model:         "deterministic-v1",
		PromptVersion: "1.0",
	}
}
