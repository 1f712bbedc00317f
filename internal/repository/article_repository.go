package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// ArticleFilter selects published candidates for retrieval: entries tagged
// with Tag, or whose title/body contain any of SearchWords.
type ArticleFilter struct {
	Tag         *string
	SearchWords []string
	Limit       int
}

// ArticleRepository encapsulates knowledge-base persistence.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, status *domain.ArticleStatus, limit, offset int) ([]domain.Article, error)
	FindPublished(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository instantiates repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `id, title, body, tags, status, created_by, updated_by, created_at, updated_at`

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO articles (title, body, tags, status, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Body,
		article.Tags,
		article.Status,
		article.CreatedBy,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE articles SET title=$1, body=$2, tags=$3, status=$4, updated_by=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Body,
		article.Tags,
		article.Status,
		article.UpdatedBy,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id=$1`, articleColumns)
	var article domain.Article
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Body,
		&article.Tags,
		&article.Status,
		&article.CreatedBy,
		&article.UpdatedBy,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, status *domain.ArticleStatus, limit, offset int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	args := []any{}
	clause := "1=1"
	if status != nil {
		args = append(args, *status)
		clause = "status=$1"
	}
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		articleColumns, clause, limit, offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// FindPublished returns published candidates ordered by insertion so the
// retriever's tie-break on equal relevance scores stays stable.
func (r *articleRepository) FindPublished(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	clauses := []string{}
	args := []any{domain.ArticleStatusPublished}

	if filter.Tag != nil {
		args = append(args, *filter.Tag)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	for _, word := range filter.SearchWords {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) <= 2 {
			continue
		}
		args = append(args, "%"+word+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(body) LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE status=$1`, articleColumns)
	if len(clauses) > 0 {
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}
	query += " ORDER BY created_at ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var result []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Body,
			&article.Tags,
			&article.Status,
			&article.CreatedBy,
			&article.UpdatedBy,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}
