package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

func TestClassifyKeywords(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		category   domain.Category
		confidence float64
	}{
		{
			name:       "billing keywords",
			text:       "I was charged twice, please refund",
			category:   domain.CategoryBilling,
			confidence: 0.7,
		},
		{
			name:       "tech keywords",
			text:       "Getting a 500 error after login, the server seems broken",
			category:   domain.CategoryTech,
			confidence: 0.95,
		},
		{
			name:       "shipping keywords",
			text:       "My package tracking shows the delivery is delayed",
			category:   domain.CategoryShipping,
			confidence: 0.95,
		},
		{
			name:       "no keywords falls back to other",
			text:       "Hello, I have a general question",
			category:   domain.CategoryOther,
			confidence: 0.3,
		},
		{
			name:       "case insensitive",
			text:       "REFUND my INVOICE",
			category:   domain.CategoryBilling,
			confidence: 0.7,
		},
		{
			name:       "single hit",
			text:       "question about my invoice",
			category:   domain.CategoryBilling,
			confidence: 0.5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := classifyKeywords(tc.text)
			assert.Equal(t, tc.category, result.Category)
			assert.InDelta(t, tc.confidence, result.Confidence, 0.001)
		})
	}
}

func TestClassifyKeywordsTieBreak(t *testing.T) {
	// One billing hit and one tech hit; billing is declared first and a tie
	// must not flip the result.
	result := classifyKeywords("refund error")
	assert.Equal(t, domain.CategoryBilling, result.Category)
}

func TestClassifyKeywordsWordBoundary(t *testing.T) {
	// "billable" must not match the bill keyword.
	result := classifyKeywords("billable hours question")
	assert.Equal(t, domain.CategoryOther, result.Category)
}

func TestConfidenceFromHits(t *testing.T) {
	assert.InDelta(t, 0.3, confidenceFromHits(0), 0.001)
	assert.InDelta(t, 0.5, confidenceFromHits(1), 0.001)
	assert.InDelta(t, 0.7, confidenceFromHits(2), 0.001)
	assert.InDelta(t, 0.9, confidenceFromHits(3), 0.001)
	// Ceiling applies from four hits onward.
	assert.InDelta(t, 0.95, confidenceFromHits(4), 0.001)
	assert.InDelta(t, 0.95, confidenceFromHits(50), 0.001)
}
