package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"article-catalog/internal/domains/article/model"
	"article-catalog/internal/infrastructure/database"
)

type postgresRepository struct {
	db           database.DBTX
	queryTimeout time.Duration
}

func NewPostgresRepository(db database.DBTX, queryTimeout time.Duration) RepositoryInterface {
	return &postgresRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

func (r *postgresRepository) WithTx(tx database.DBTX) RepositoryInterface {
	return &postgresRepository{db: tx, queryTimeout: r.queryTimeout}
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Article) (int64, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO articles (author_id, title, category, "publishedOn", body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING article_id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		a.AuthorID,
		a.Title,
		a.Category,
		a.PublishedOn,
		a.Body,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, model.ErrUnknownAuthor.Wrap(err)
		}
		return 0, database.Wrap("failed to create article", err)
	}

	a.ID = id
	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.ArticlePatch) (int64, error) {
	if id > model.MaxArticleID {
		return 0, model.ErrArticleNotFound
	}

	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		UPDATE articles
		SET
			title = COALESCE($1, title),
			category = COALESCE($2, category),
			"publishedOn" = COALESCE($3, "publishedOn"),
			body = COALESCE($4, body)
		WHERE article_id = $5
		RETURNING author_id
	`

	var authorID int64
	err := r.db.QueryRow(ctx, query,
		patch.Title,
		patch.Category,
		patch.PublishedOn,
		patch.Body,
		id,
	).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrArticleNotFound
		}
		return 0, database.Wrap("failed to update article", err)
	}

	return authorID, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	// pgx would refuse to encode it into int4
	if id > model.MaxArticleID {
		return 0, nil
	}

	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE article_id = $1`, id)
	if err != nil {
		return 0, database.Wrap("failed to delete article", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM articles`)
	if err != nil {
		return 0, database.Wrap("failed to delete articles", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.ArticleView, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		SELECT
			ar.article_id, ar.author_id, ar.title, ar.category,
			au.author, au."authorUrl", ar."publishedOn", ar.body
		FROM articles ar
		INNER JOIN authors au ON au.author_id = ar.author_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, database.Wrap("failed to list articles", err)
	}
	defer rows.Close()

	views := make([]model.ArticleView, 0)
	for rows.Next() {
		var (
			v           model.ArticleView
			publishedOn *time.Time
		)
		if err := rows.Scan(
			&v.ArticleID,
			&v.AuthorID,
			&v.Title,
			&v.Category,
			&v.Author,
			&v.AuthorURL,
			&publishedOn,
			&v.Body,
		); err != nil {
			return nil, database.Wrap("failed to scan article", err)
		}
		v.PublishedOn = model.FormatDate(publishedOn)
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap("failed to iterate articles", err)
	}

	return views, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, database.Wrap("failed to count articles", err)
	}
	return n, nil
}

// CreateForAuthorName is the seed-path insert. Parameters are cast
// explicitly because INSERT ... SELECT does not infer them from the
// target columns.
func (r *postgresRepository) CreateForAuthorName(ctx context.Context, authorName string, a *model.Article) (bool, error) {
	ctx, cancel := database.QueryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO articles (author_id, title, category, "publishedOn", body)
		SELECT author_id, $1::varchar, $2::varchar, $3::date, $4::text
		FROM authors
		WHERE author = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		a.Title,
		a.Category,
		a.PublishedOn,
		a.Body,
		authorName,
	)
	if err != nil {
		return false, database.Wrap("failed to seed article", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
