package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	articleModel "article-catalog/internal/domains/article/model"
	authorModel "article-catalog/internal/domains/author/model"
)

// AuthorSeeder is the conflict-tolerant author insert
type AuthorSeeder interface {
	InsertIfAbsent(ctx context.Context, a *authorModel.Author) (bool, error)
}

// ArticleSeeder counts articles and inserts one under an author name
type ArticleSeeder interface {
	Count(ctx context.Context) (int64, error)
	CreateForAuthorName(ctx context.Context, authorName string, a *articleModel.Article) (bool, error)
}

// Report summarises one seeding pass
type Report struct {
	ExistingArticles int64
	AuthorsInserted  int
	ArticlesInserted int
	ArticlesSkipped  bool
	Failures         int
}

type Loader struct {
	authors  AuthorSeeder
	articles ArticleSeeder
}

func NewLoader(authors AuthorSeeder, articles ArticleSeeder) *Loader {
	return &Loader{authors: authors, articles: articles}
}

// SeedIfEmpty inserts every record's author (skipping existing names) and,
// only when the articles table was empty beforehand, every record's article.
// A failing record is logged and skipped; only the initial count aborts.
func (l *Loader) SeedIfEmpty(ctx context.Context, records []Record) (*Report, error) {
	existing, err := l.articles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	report := &Report{ExistingArticles: existing}

	for i, rec := range records {
		a, err := authorModel.NewAuthor(rec.Author, rec.AuthorURL)
		if err != nil {
			report.Failures++
			log.Warn().Err(err).Int("record", i).Msg("[SEED] Skipping invalid author")
			continue
		}

		inserted, err := l.authors.InsertIfAbsent(ctx, a)
		if err != nil {
			report.Failures++
			log.Error().Err(err).Int("record", i).Str("author", a.Name).Msg("[SEED] Author insert failed")
			continue
		}
		if inserted {
			report.AuthorsInserted++
		}
	}

	if existing > 0 {
		report.ArticlesSkipped = true
		log.Info().Int64("existing", existing).Msg("[SEED] Articles already present, skipping article seed")
		return report, nil
	}

	for i, rec := range records {
		article, err := rec.Article()
		if err == nil {
			err = article.ValidateContent()
		}
		if err != nil {
			report.Failures++
			log.Warn().Err(err).Int("record", i).Str("title", rec.Title).Msg("[SEED] Skipping invalid article")
			continue
		}

		// author_id is looked up by name inside the insert
		name := strings.TrimSpace(rec.Author)
		inserted, err := l.articles.CreateForAuthorName(ctx, name, article)
		if err != nil {
			report.Failures++
			log.Error().Err(err).Int("record", i).Str("title", rec.Title).Msg("[SEED] Article insert failed")
			continue
		}
		if !inserted {
			report.Failures++
			log.Warn().Int("record", i).Str("author", name).Msg("[SEED] No author row for article, skipped")
			continue
		}
		report.ArticlesInserted++
	}

	log.Info().
		Int("authors_inserted", report.AuthorsInserted).
		Int("articles_inserted", report.ArticlesInserted).
		Int("failures", report.Failures).
		Msg("[SEED] Seeding finished")

	return report, nil
}
