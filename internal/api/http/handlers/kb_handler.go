package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shubham7silyan/HelpDeskBackend/internal/api/dto"
	"github.com/shubham7silyan/HelpDeskBackend/internal/auth"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/service"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// KBHandler manages knowledge-base endpoints.
type KBHandler struct {
	service *service.KBService
}

// NewKBHandler constructs handler.
func NewKBHandler(kbService *service.KBService) *KBHandler {
	return &KBHandler{service: kbService}
}

// CreateArticle POST /api/kb.
func (h *KBHandler) CreateArticle(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	article, err := h.service.CreateArticle(c.Context(), user, articleInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": articleResponse(article)})
}

// UpdateArticle PUT /api/kb/:id.
func (h *KBHandler) UpdateArticle(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	article, err := h.service.UpdateArticle(c.Context(), user, c.Params("id"), articleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// GetArticle GET /api/kb/:id.
func (h *KBHandler) GetArticle(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	article, err := h.service.GetArticle(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// ListArticles GET /api/kb.
func (h *KBHandler) ListArticles(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}

	if query := c.Query("query"); query != "" {
		articles, err := h.service.SearchArticles(c.Context(), query, parseInt(c.Query("limit"), 20))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": articleResponses(articles)})
	}

	var status *domain.ArticleStatus
	if raw := c.Query("status"); raw != "" {
		parsed := domain.ArticleStatus(raw)
		status = &parsed
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	articles, err := h.service.ListArticles(c.Context(), user, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponses(articles)})
}

// DeleteArticle DELETE /api/kb/:id.
func (h *KBHandler) DeleteArticle(c *fiber.Ctx) error {
	if err := h.service.DeleteArticle(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func articleInput(req dto.ArticleRequest) service.ArticleInput {
	return service.ArticleInput{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Status: req.Status,
	}
}

func articleResponse(article *domain.Article) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Body:      article.Body,
		Tags:      article.Tags,
		Status:    article.Status,
		CreatedBy: article.CreatedBy,
		UpdatedBy: article.UpdatedBy,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

func articleResponses(articles []domain.Article) []dto.ArticleResponse {
	items := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, articleResponse(&articles[i]))
	}
	return items
}
