package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// KBService manages the knowledge base that feeds triage retrieval.
type KBService struct {
	articles repository.ArticleRepository
}

// NewKBService constructs the service.
func NewKBService(articles repository.ArticleRepository) *KBService {
	return &KBService{articles: articles}
}

// ArticleInput carries create/update payloads.
type ArticleInput struct {
	Title  string
	Body   string
	Tags   []string
	Status domain.ArticleStatus
}

func (in *ArticleInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if in.Title == "" || in.Body == "" {
		return util.NewValidationError("title and body required", nil)
	}
	if in.Status == "" {
		in.Status = domain.ArticleStatusDraft
	}
	if in.Status != domain.ArticleStatusDraft && in.Status != domain.ArticleStatusPublished {
		return util.NewValidationError("invalid article status", map[string]any{"status": in.Status})
	}
	cleaned := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	in.Tags = cleaned
	return nil
}

// CreateArticle adds a KB entry. Admin only; the handler enforces the role,
// the service records authorship.
func (s *KBService) CreateArticle(ctx context.Context, admin *domain.User, input ArticleInput) (*domain.Article, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	article := &domain.Article{
		Title:     input.Title,
		Body:      input.Body,
		Tags:      input.Tags,
		Status:    input.Status,
		CreatedBy: admin.ID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticle edits a KB entry, including publish/unpublish.
func (s *KBService) UpdateArticle(ctx context.Context, admin *domain.User, id string, input ArticleInput) (*domain.Article, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("article", nil)
		}
		return nil, err
	}
	article.Title = input.Title
	article.Body = input.Body
	article.Tags = input.Tags
	article.Status = input.Status
	article.UpdatedBy = &admin.ID
	if err := s.articles.Update(ctx, article); err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("article", nil)
		}
		return nil, err
	}
	return article, nil
}

// GetArticle fetches one entry. Non-staff callers only see published entries.
func (s *KBService) GetArticle(ctx context.Context, user *domain.User, id string) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("article", nil)
		}
		return nil, err
	}
	if !user.Role.IsStaff() && article.Status != domain.ArticleStatusPublished {
		return nil, util.NewNotFound("article", nil)
	}
	return article, nil
}

// ListArticles lists entries. Non-staff callers are pinned to published.
func (s *KBService) ListArticles(ctx context.Context, user *domain.User, status *domain.ArticleStatus, limit, offset int) ([]domain.Article, error) {
	if !user.Role.IsStaff() {
		published := domain.ArticleStatusPublished
		status = &published
	}
	articles, err := s.articles.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

// SearchArticles runs the same published-only lookup the retriever uses.
func (s *KBService) SearchArticles(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	words := strings.Fields(strings.ToLower(query))
	articles, err := s.articles.FindPublished(ctx, repository.ArticleFilter{
		SearchWords: words,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

// DeleteArticle removes an entry.
func (s *KBService) DeleteArticle(ctx context.Context, id string) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return util.NewNotFound("article", nil)
		}
		return err
	}
	return nil
}
