package domain

import "time"

// ArticleStatus controls retrieval eligibility; only published articles
// are visible to the triage pipeline.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

// Article is a knowledge-base entry eligible for retrieval and citation.
type Article struct {
	ID        string
	Title     string
	Body      string
	Tags      []string
	Status    ArticleStatus
	CreatedBy string
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
