package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"article-catalog/internal/domains/article/model"
	"article-catalog/internal/domains/article/service"
	"article-catalog/internal/shared/apperror"
	"article-catalog/internal/shared/response"
)

// ArticleHandler handles HTTP requests for the article catalog
type ArticleHandler struct {
	service service.ServiceInterface
}

// NewArticleHandler receives the service from the container
func NewArticleHandler(service service.ServiceInterface) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// ListArticles handles GET /articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	views, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// CreateArticle handles POST /articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req model.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation("INVALID_REQUEST_BODY", err))
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdateArticle handles PUT /articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation("INVALID_REQUEST_BODY", err))
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"article_id": id, "updated": true})
}

// DeleteArticle handles DELETE /articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}

// DeleteAllArticles handles DELETE /articles
func (h *ArticleHandler) DeleteAllArticles(c *gin.Context) {
	n, err := h.service.DeleteAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) && id > 0 {
		// positive but past int64: well-formed, just never stored
		err = nil
	}
	if err != nil || id <= 0 {
		response.FromError(c, model.ErrInvalidArticleID)
		return 0, false
	}
	return id, true
}
