package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"article-catalog/internal/domains/author/model"
	"article-catalog/internal/infrastructure/database"
)

// postgresRepository implements RepositoryInterface on pgx
type postgresRepository struct {
	db           database.DBTX
	queryTimeout time.Duration
}

// NewPostgresRepository receives the pool (or a tx) from the container
func NewPostgresRepository(db database.DBTX, queryTimeout time.Duration) RepositoryInterface {
	return &postgresRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

func (r *postgresRepository) WithTx(tx database.DBTX) RepositoryInterface {
	return &postgresRepository{db: tx, queryTimeout: r.queryTimeout}
}

func (r *postgresRepository) FindIDByName(ctx context.Context, name string) (int64, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT author_id FROM authors WHERE author = $1`

	var id int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrAuthorNotFound
		}
		return 0, database.Wrap("failed to find author by name", err)
	}

	return id, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (int64, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO authors (author, "authorUrl")
		VALUES ($1, $2)
		RETURNING author_id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, a.Name, a.URL).Scan(&id); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, model.ErrDuplicateAuthor.Wrap(err)
		}
		return 0, database.Wrap("failed to create author", err)
	}

	a.ID = id
	return id, nil
}

func (r *postgresRepository) InsertIfAbsent(ctx context.Context, a *model.Author) (bool, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO authors (author, "authorUrl")
		VALUES ($1, $2)
		ON CONFLICT (author) DO NOTHING
	`

	cmdTag, err := r.db.Exec(ctx, query, a.Name, a.URL)
	if err != nil {
		return false, database.Wrap("failed to insert author", err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// UpdateByID is keyed on author_id only; callers holding an article id must
// resolve its author_id first.
func (r *postgresRepository) UpdateByID(ctx context.Context, id int64, patch model.AuthorPatch) error {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		UPDATE authors
		SET
			author = COALESCE($1, author),
			"authorUrl" = COALESCE($2, "authorUrl")
		WHERE author_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, patch.Name, patch.URL, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateAuthor.Wrap(err)
		}
		return database.Wrap("failed to update author", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	return nil
}
