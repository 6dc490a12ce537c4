package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_CreatesAuthorsBeforeArticles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS\s+authors`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS\s+articles`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	err = EnsureSchema(context.Background(), mock)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_IsIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	for i := 0; i < 2; i++ {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS\s+authors`).
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS\s+articles`).
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), mock))
	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_SurfacesFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS\s+authors`).
		WillReturnError(errors.New("permission denied for schema public"))

	err = EnsureSchema(context.Background(), mock)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authors")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaDDL_KeepsContractColumns(t *testing.T) {
	assert.Contains(t, createAuthorsTable, "author VARCHAR(255) UNIQUE NOT NULL")
	assert.Contains(t, createAuthorsTable, `"authorUrl" VARCHAR (255)`)
	assert.Contains(t, createArticlesTable, "author_id INTEGER NOT NULL REFERENCES authors(author_id)")
	assert.Contains(t, createArticlesTable, "category VARCHAR(20)")
	assert.Contains(t, createArticlesTable, `"publishedOn" DATE`)
	assert.Contains(t, createArticlesTable, "body TEXT NOT NULL")
}
