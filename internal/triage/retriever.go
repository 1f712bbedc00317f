package triage

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
)

const (
	maxRetrievedArticles = 3
	snippetLength        = 200
	minScoredWordLength  = 3

	// wordCutset strips surrounding punctuation so candidate selection and
	// relevance scoring see the same tokens.
	wordCutset = `.,!?"'():;`
)

// RetrievedArticle is one ranked knowledge entry.
type RetrievedArticle struct {
	ID      string
	Title   string
	Snippet string
	Score   int
	Tags    []string
}

// Retriever finds knowledge entries relevant to a ticket.
type Retriever struct {
	articles repository.ArticleRepository
}

// NewRetriever constructs a retriever over the article store.
func NewRetriever(articles repository.ArticleRepository) *Retriever {
	return &Retriever{articles: articles}
}

// Retrieve returns up to three published entries ranked by relevance.
// Candidates either carry the predicted category as a tag or overlap the
// ticket text; no qualifying entries yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, searchText string, category domain.Category) ([]RetrievedArticle, error) {
	tag := string(category)
	candidates, err := r.articles.FindPublished(ctx, repository.ArticleFilter{
		Tag:         &tag,
		SearchWords: searchWords(searchText),
	})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []RetrievedArticle{}, nil
	}

	scored := make([]RetrievedArticle, 0, len(candidates))
	for _, article := range candidates {
		scored = append(scored, RetrievedArticle{
			ID:      article.ID,
			Title:   article.Title,
			Snippet: snippet(article.Body),
			Score:   relevanceScore(searchText, article),
			Tags:    article.Tags,
		})
	}

	// Descending score; SliceStable keeps insertion order on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxRetrievedArticles {
		scored = scored[:maxRetrievedArticles]
	}
	return scored, nil
}

// searchWords tokenizes ticket text for the candidate query, trimming the
// punctuation relevanceScore trims so both stages match the same words.
func searchWords(searchText string) []string {
	fields := strings.Fields(searchText)
	words := make([]string, 0, len(fields))
	for _, word := range fields {
		word = strings.Trim(word, wordCutset)
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}

// relevanceScore sums, over every ticket word longer than two characters,
// the occurrence count of that word in the entry's title and body.
func relevanceScore(searchText string, article domain.Article) int {
	articleText := strings.ToLower(article.Title + " " + article.Body)
	score := 0
	for _, word := range strings.Fields(strings.ToLower(searchText)) {
		word = strings.Trim(word, wordCutset)
		if len(word) < minScoredWordLength {
			continue
		}
		score += strings.Count(articleText, word)
	}
	return score
}

// snippet truncates the body, backing up to a rune boundary so a multi-byte
// character straddling the limit is dropped whole.
func snippet(body string) string {
	if len(body) <= snippetLength {
		return body
	}
	cut := snippetLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}
