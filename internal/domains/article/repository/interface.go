package repository

import (
	"context"

	"article-catalog/internal/domains/article/model"
	"article-catalog/internal/infrastructure/database"
)

// RepositoryInterface defines data access for the articles table
type RepositoryInterface interface {
	// Create inserts the article and returns its id
	// Errors: model.ErrUnknownAuthor when author_id has no row
	Create(ctx context.Context, a *model.Article) (int64, error)

	// Update replaces the non-nil fields of patch and returns the
	// article's author_id
	// Errors: model.ErrArticleNotFound
	Update(ctx context.Context, id int64, patch model.ArticlePatch) (int64, error)

	// Delete removes one article; a missing id affects 0 rows, no error
	Delete(ctx context.Context, id int64) (int64, error)

	DeleteAll(ctx context.Context) (int64, error)

	// List returns every article joined with its author, in no particular order
	List(ctx context.Context) ([]model.ArticleView, error)

	Count(ctx context.Context) (int64, error)

	// CreateForAuthorName inserts the article under the author named
	// authorName, looking the id up in the same statement. Returns false
	// when no such author exists.
	CreateForAuthorName(ctx context.Context, authorName string, a *model.Article) (bool, error)

	WithTx(tx database.DBTX) RepositoryInterface
}
