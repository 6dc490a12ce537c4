package repository

import (
	"context"

	"article-catalog/internal/domains/author/model"
	"article-catalog/internal/infrastructure/database"
)

// RepositoryInterface defines data access for the authors table.
// Every method is a single statement; none holds state between calls.
type RepositoryInterface interface {
	// FindIDByName looks up an author by exact (case-sensitive) name
	// Errors: model.ErrAuthorNotFound
	FindIDByName(ctx context.Context, name string) (int64, error)

	// Create inserts a new author and returns the assigned id
	// Errors: model.ErrDuplicateAuthor when the name is already taken
	Create(ctx context.Context, a *model.Author) (int64, error)

	// InsertIfAbsent is the conflict-tolerant insert used by seeding.
	// Returns false when the name already existed.
	InsertIfAbsent(ctx context.Context, a *model.Author) (bool, error)

	// UpdateByID edits name/url of the author identified by author_id
	// Errors: model.ErrAuthorNotFound, model.ErrDuplicateAuthor
	UpdateByID(ctx context.Context, id int64, patch model.AuthorPatch) error

	// WithTx returns a repository bound to tx
	WithTx(tx database.DBTX) RepositoryInterface
}
