package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// The schema is the durable contract shared with existing deployments:
// column names (including the quoted camelCase ones), nullability and the
// UNIQUE constraint on authors.author must not change.
const (
	createAuthorsTable = `
		CREATE TABLE IF NOT EXISTS
		authors (
			author_id SERIAL PRIMARY KEY,
			author VARCHAR(255) UNIQUE NOT NULL,
			"authorUrl" VARCHAR (255)
		);`

	createArticlesTable = `
		CREATE TABLE IF NOT EXISTS
		articles (
			article_id SERIAL PRIMARY KEY,
			author_id INTEGER NOT NULL REFERENCES authors(author_id),
			title VARCHAR(255) NOT NULL,
			category VARCHAR(20),
			"publishedOn" DATE,
			body TEXT NOT NULL
		);`
)

// EnsureSchema creates authors and then articles if they are absent.
// It is a no-op on an existing schema; any error must abort startup.
func EnsureSchema(ctx context.Context, db DBTX) error {
	steps := []struct {
		table string
		ddl   string
	}{
		{"authors", createAuthorsTable},
		{"articles", createArticlesTable},
	}

	for _, step := range steps {
		if _, err := db.Exec(ctx, step.ddl); err != nil {
			return fmt.Errorf("failed to ensure table %s: %w", step.table, err)
		}
		log.Debug().Str("table", step.table).Msg("[DATABASE] Table ensured")
	}

	log.Info().Msg("[DATABASE] Schema ready")
	return nil
}
