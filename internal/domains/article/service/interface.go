package service

import (
	"context"

	"article-catalog/internal/domains/article/model"
)

// ServiceInterface is the article use-case layer the HTTP handler calls
type ServiceInterface interface {
	// List returns the catalog (articles joined with authors)
	List(ctx context.Context) ([]model.ArticleView, error)

	// Create resolves the author by name (creating it if needed) and
	// then inserts the article under that author
	Create(ctx context.Context, req *model.CreateArticleRequest) (*model.CreateArticleResponse, error)

	// Update replaces the supplied article fields; author fields edit the
	// article's current author
	Update(ctx context.Context, id int64, req *model.UpdateArticleRequest) error

	// Delete returns the number of rows removed (0 for a missing id)
	Delete(ctx context.Context, id int64) (int64, error)

	DeleteAll(ctx context.Context) (int64, error)
}
