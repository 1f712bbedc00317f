package dto

import (
	"time"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// ArticleRequest payload for create/update.
type ArticleRequest struct {
	Title  string               `json:"title"`
	Body   string               `json:"body"`
	Tags   []string             `json:"tags"`
	Status domain.ArticleStatus `json:"status"`
}

// ArticleResponse response.
type ArticleResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Tags      []string             `json:"tags"`
	Status    domain.ArticleStatus `json:"status"`
	CreatedBy string               `json:"created_by"`
	UpdatedBy *string              `json:"updated_by"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
