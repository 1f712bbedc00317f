package triage

import (
	"math"
	"regexp"
	"strings"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

const (
	confidenceFloor   = 0.3
	confidenceCeiling = 0.95
	confidencePerHit  = 0.2
)

// Keyword patterns per category, word-bounded and case-insensitive via the
// lowercased input. Declaration order breaks ties.
var categoryPatterns = []struct {
	category domain.Category
	pattern  *regexp.Regexp
}{
	{domain.CategoryBilling, regexp.MustCompile(`\b(?:refund|invoice|payment|charged?|bill|billing|money|cost|price|subscription)\b`)},
	{domain.CategoryTech, regexp.MustCompile(`\b(?:error|bug|crash|stack|login|password|technical|api|server|database|404|500|broken)\b`)},
	{domain.CategoryShipping, regexp.MustCompile(`\b(?:delivery|shipment|package|tracking|shipped|order|delayed|shipping|courier|address)\b`)},
}

// classifyKeywords scores ticket text against each category's keyword set.
// The category with the most hits wins; zero hits everywhere means "other".
// Deterministic and side-effect-free, so runs are exactly reproducible.
func classifyKeywords(text string) Classification {
	lower := strings.ToLower(text)

	best := domain.CategoryOther
	maxHits := 0
	for _, entry := range categoryPatterns {
		hits := len(entry.pattern.FindAllString(lower, -1))
		if hits > maxHits {
			maxHits = hits
			best = entry.category
		}
	}

	return Classification{
		Category:   best,
		Confidence: confidenceFromHits(maxHits),
	}
}

// confidenceFromHits maps match density into [0.3, 0.95], rounded to two
// decimal places.
func confidenceFromHits(hits int) float64 {
	confidence := float64(hits)*confidencePerHit + confidenceFloor
	confidence = math.Min(confidenceCeiling, math.Max(confidenceFloor, confidence))
	return math.Round(confidence*100) / 100
}
