package triage

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
)

// fakeArticleRepo serves canned published articles and records the filter it
// was asked for.
type fakeArticleRepo struct {
	articles   []domain.Article
	lastFilter repository.ArticleFilter
	err        error
}

func (f *fakeArticleRepo) Create(context.Context, *domain.Article) error { return nil }
func (f *fakeArticleRepo) Update(context.Context, *domain.Article) error { return nil }
func (f *fakeArticleRepo) GetByID(context.Context, string) (*domain.Article, error) {
	return nil, nil
}
func (f *fakeArticleRepo) List(context.Context, *domain.ArticleStatus, int, int) ([]domain.Article, error) {
	return nil, nil
}
func (f *fakeArticleRepo) Delete(context.Context, string) error { return nil }

func (f *fakeArticleRepo) FindPublished(_ context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	published := make([]domain.Article, 0, len(f.articles))
	for _, article := range f.articles {
		if article.Status == domain.ArticleStatusPublished {
			published = append(published, article)
		}
	}
	return published, nil
}

func TestRetrieveRanksByRelevance(t *testing.T) {
	repo := &fakeArticleRepo{articles: []domain.Article{
		{ID: "a1", Title: "Payment basics", Body: "general info", Status: domain.ArticleStatusPublished},
		{ID: "a2", Title: "Refund policy", Body: "refund refund refund", Status: domain.ArticleStatusPublished},
		{ID: "a3", Title: "Refund timing", Body: "refund timelines", Status: domain.ArticleStatusPublished},
	}}
	retriever := NewRetriever(repo)

	entries, err := retriever.Retrieve(context.Background(), "how do I get a refund", domain.CategoryBilling)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a2", entries[0].ID)
	assert.Equal(t, "a3", entries[1].ID)
	assert.Equal(t, "a1", entries[2].ID)

	require.NotNil(t, repo.lastFilter.Tag)
	assert.Equal(t, "billing", *repo.lastFilter.Tag)
}

func TestRetrieveCapsAtThree(t *testing.T) {
	repo := &fakeArticleRepo{articles: []domain.Article{
		{ID: "a1", Title: "refund one", Status: domain.ArticleStatusPublished},
		{ID: "a2", Title: "refund two", Status: domain.ArticleStatusPublished},
		{ID: "a3", Title: "refund three", Status: domain.ArticleStatusPublished},
		{ID: "a4", Title: "refund four", Status: domain.ArticleStatusPublished},
	}}
	retriever := NewRetriever(repo)

	entries, err := retriever.Retrieve(context.Background(), "refund", domain.CategoryBilling)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRetrieveStableTieOrder(t *testing.T) {
	// Equal scores keep candidate order from the store.
	repo := &fakeArticleRepo{articles: []domain.Article{
		{ID: "first", Title: "refund", Status: domain.ArticleStatusPublished},
		{ID: "second", Title: "refund", Status: domain.ArticleStatusPublished},
	}}
	retriever := NewRetriever(repo)

	entries, err := retriever.Retrieve(context.Background(), "refund", domain.CategoryBilling)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].ID)
	assert.Equal(t, "second", entries[1].ID)
}

func TestRetrieveSkipsDrafts(t *testing.T) {
	repo := &fakeArticleRepo{articles: []domain.Article{
		{ID: "draft", Title: "refund", Status: domain.ArticleStatusDraft},
		{ID: "live", Title: "refund", Status: domain.ArticleStatusPublished},
	}}
	retriever := NewRetriever(repo)

	entries, err := retriever.Retrieve(context.Background(), "refund", domain.CategoryBilling)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "live", entries[0].ID)
}

func TestRetrieveNoMatchesReturnsEmpty(t *testing.T) {
	retriever := NewRetriever(&fakeArticleRepo{})

	entries, err := retriever.Retrieve(context.Background(), "anything at all", domain.CategoryOther)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRetrieveTruncatesSnippet(t *testing.T) {
	long := strings.Repeat("refund policy details ", 20)
	repo := &fakeArticleRepo{articles: []domain.Article{
		{ID: "a1", Title: "Refunds", Body: long, Status: domain.ArticleStatusPublished},
	}}
	retriever := NewRetriever(repo)

	entries, err := retriever.Retrieve(context.Background(), "refund", domain.CategoryBilling)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Snippet, snippetLength+3)
	assert.True(t, strings.HasSuffix(entries[0].Snippet, "..."))
}

func TestRetrieveTrimsPunctuationFromSearchWords(t *testing.T) {
	repo := &fakeArticleRepo{}
	retriever := NewRetriever(repo)

	// The candidate query must see the same tokens the scorer sees, or
	// "twice," would never match an article containing "twice".
	_, err := retriever.Retrieve(context.Background(), `charged twice, "refund"!`, domain.CategoryBilling)
	require.NoError(t, err)
	assert.Equal(t, []string{"charged", "twice", "refund"}, repo.lastFilter.SearchWords)
}

func TestSnippetCutsOnRuneBoundary(t *testing.T) {
	// A two-byte rune straddles the truncation limit.
	body := strings.Repeat("a", snippetLength-1) + "é" + strings.Repeat("b", 40)

	got := snippet(body)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", snippetLength-1)+"...", got)
}

func TestRelevanceScoreIgnoresShortWords(t *testing.T) {
	article := domain.Article{Title: "an it to", Body: "an it to an it to"}
	assert.Zero(t, relevanceScore("an it to", article))
}
