package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

type fakeArticleRepo struct {
	articles map[string]*domain.Article
	nextID   int
}

func newFakeArticleRepo(articles ...*domain.Article) *fakeArticleRepo {
	repo := &fakeArticleRepo{articles: map[string]*domain.Article{}}
	for _, article := range articles {
		repo.articles[article.ID] = article
	}
	return repo
}

func (f *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	f.nextID++
	article.ID = "a" + string(rune('0'+f.nextID))
	copied := *article
	f.articles[article.ID] = &copied
	return nil
}

func (f *fakeArticleRepo) Update(_ context.Context, article *domain.Article) error {
	if _, ok := f.articles[article.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *article
	f.articles[article.ID] = &copied
	return nil
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id string) (*domain.Article, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *article
	return &copied, nil
}

func (f *fakeArticleRepo) List(_ context.Context, status *domain.ArticleStatus, _, _ int) ([]domain.Article, error) {
	var result []domain.Article
	for _, article := range f.articles {
		if status != nil && article.Status != *status {
			continue
		}
		result = append(result, *article)
	}
	return result, nil
}

func (f *fakeArticleRepo) FindPublished(_ context.Context, _ repository.ArticleFilter) ([]domain.Article, error) {
	var result []domain.Article
	for _, article := range f.articles {
		if article.Status == domain.ArticleStatusPublished {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (f *fakeArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.articles, id)
	return nil
}

func adminUser() *domain.User {
	return &domain.User{ID: "admin1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
}

func TestCreateArticleNormalizesTags(t *testing.T) {
	svc := NewKBService(newFakeArticleRepo())

	article, err := svc.CreateArticle(context.Background(), adminUser(), ArticleInput{
		Title: "Refund policy",
		Body:  "Details",
		Tags:  []string{" Billing ", "", "REFUNDS"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "refunds"}, article.Tags)
	assert.Equal(t, domain.ArticleStatusDraft, article.Status)
	assert.Equal(t, "admin1", article.CreatedBy)
}

func TestCreateArticleRejectsMissingFields(t *testing.T) {
	svc := NewKBService(newFakeArticleRepo())

	_, err := svc.CreateArticle(context.Background(), adminUser(), ArticleInput{Title: " ", Body: ""})
	require.Error(t, err)
	assert.True(t, util.IsValidation(err))
}

func TestNonStaffOnlySeePublished(t *testing.T) {
	repo := newFakeArticleRepo(
		&domain.Article{ID: "draft", Title: "WIP", Body: "x", Status: domain.ArticleStatusDraft},
		&domain.Article{ID: "live", Title: "Live", Body: "x", Status: domain.ArticleStatusPublished},
	)
	svc := NewKBService(repo)
	user := endUser("u1")

	_, err := svc.GetArticle(context.Background(), user, "draft")
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))

	article, err := svc.GetArticle(context.Background(), user, "live")
	require.NoError(t, err)
	assert.Equal(t, "live", article.ID)

	listed, err := svc.ListArticles(context.Background(), user, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "live", listed[0].ID)
}

func TestUpdateArticlePublishes(t *testing.T) {
	repo := newFakeArticleRepo(
		&domain.Article{ID: "a1", Title: "Old", Body: "body", Status: domain.ArticleStatusDraft, CreatedBy: "admin1"},
	)
	svc := NewKBService(repo)

	article, err := svc.UpdateArticle(context.Background(), adminUser(), "a1", ArticleInput{
		Title:  "New title",
		Body:   "new body",
		Status: domain.ArticleStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStatusPublished, article.Status)
	require.NotNil(t, article.UpdatedBy)
	assert.Equal(t, "admin1", *article.UpdatedBy)
}

func TestDeleteArticleUnknown(t *testing.T) {
	svc := NewKBService(newFakeArticleRepo())

	err := svc.DeleteArticle(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))
}
