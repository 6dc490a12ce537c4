package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"article-catalog/internal/domains/article/model"
	"article-catalog/internal/domains/article/repository"
	authorRepo "article-catalog/internal/domains/author/repository"
	authorService "article-catalog/internal/domains/author/service"
	dbinfra "article-catalog/internal/infrastructure/database"
	"article-catalog/internal/shared/apperror"
	"article-catalog/pkg/cache"
	"article-catalog/pkg/database"
)

// The listing is cached under "articles:list:<gen>". Every mutation bumps
// the generation, so a snapshot read before a write can only land on a key
// no later List will look at.
const (
	ListCacheKeyPrefix = "articles:list"
	ListGenerationKey  = "articles:list:gen"
)

// DefaultListTTL applies when no TTL is configured
const DefaultListTTL = 30 * time.Second

type articleService struct {
	repo       repository.RepositoryInterface
	authorRepo authorRepo.RepositoryInterface
	resolver   authorService.ServiceInterface
	txBeginner database.TxBeginner
	txTimeout  time.Duration // bounds Begin/Commit/Rollback
	cache      cache.Cache   // nil disables caching
	listTTL    time.Duration
}

// NewArticleService wires the article use-cases.
// txBeginner is normally the pgxpool.Pool also backing both repositories.
func NewArticleService(
	repo repository.RepositoryInterface,
	authorRepo authorRepo.RepositoryInterface,
	resolver authorService.ServiceInterface,
	txBeginner database.TxBeginner,
	txTimeout time.Duration,
	c cache.Cache,
	listTTL time.Duration,
) ServiceInterface {
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	if txTimeout <= 0 {
		txTimeout = dbinfra.DefaultQueryTimeout
	}
	return &articleService{
		repo:       repo,
		authorRepo: authorRepo,
		resolver:   resolver,
		txBeginner: txBeginner,
		txTimeout:  txTimeout,
		cache:      c,
		listTTL:    listTTL,
	}
}

func listCacheKey(gen int64) string {
	return fmt.Sprintf("%s:%d", ListCacheKeyPrefix, gen)
}

// listGeneration returns the current cache generation (0 before the first
// mutation). ok is false when the cache is disabled or unreadable.
func (s *articleService) listGeneration(ctx context.Context) (gen int64, ok bool) {
	if s.cache == nil {
		return 0, false
	}
	if _, err := s.cache.Get(ctx, ListGenerationKey, &gen); err != nil {
		log.Warn().Err(err).Str("key", ListGenerationKey).Msg("Cache read failed, falling back to database")
		return 0, false
	}
	return gen, true
}

func (s *articleService) List(ctx context.Context) ([]model.ArticleView, error) {
	gen, cacheable := s.listGeneration(ctx)
	key := listCacheKey(gen)

	if cacheable {
		var cached []model.ArticleView
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to database")
		} else if hit {
			if cached == nil {
				cached = []model.ArticleView{}
			}
			return cached, nil
		}
	}

	views, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []model.ArticleView{}
	}

	// stored under the generation seen before the query
	if cacheable {
		if err := s.cache.Set(ctx, key, views, s.listTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}

	return views, nil
}

func (s *articleService) Create(ctx context.Context, req *model.CreateArticleRequest) (*model.CreateArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("VALIDATION_ERROR", err)
	}

	article, err := req.ToArticle()
	if err != nil {
		return nil, err
	}

	// Resolution must finish before the insert; a failed resolution means
	// no article is written.
	authorID, err := s.resolver.ResolveOrCreate(ctx, req.Author, req.AuthorURL)
	if err != nil {
		return nil, err
	}
	article.AuthorID = authorID

	if err := article.Validate(); err != nil {
		return nil, err
	}

	articleID, err := s.repo.Create(ctx, article)
	if err != nil {
		if errors.Is(err, model.ErrUnknownAuthor) {
			log.Error().Err(err).
				Int64("author_id", authorID).
				Str("author", req.Author).
				Msg("Article insert referenced a missing author")
		}
		return nil, err
	}

	s.invalidateList(ctx)

	log.Info().Int64("article_id", articleID).Int64("author_id", authorID).Msg("Article created")

	return &model.CreateArticleResponse{ArticleID: articleID, AuthorID: authorID}, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req *model.UpdateArticleRequest) error {
	if id <= 0 {
		return model.ErrInvalidArticleID
	}
	if err := req.Validate(); err != nil {
		return apperror.Validation("VALIDATION_ERROR", err)
	}

	articlePatch, authorPatch, err := req.Patches()
	if err != nil {
		return err
	}

	err = database.WithTransactionTimeout(ctx, s.txBeginner, s.txTimeout, func(tx pgx.Tx) error {
		authorID, err := s.repo.WithTx(tx).Update(ctx, id, articlePatch)
		if err != nil {
			return err
		}
		if authorPatch.IsEmpty() {
			return nil
		}
		return s.authorRepo.WithTx(tx).UpdateByID(ctx, authorID, authorPatch)
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			// Begin/Commit failures: pool exhausted, timeout, lost connection
			return dbinfra.Wrap("failed to update article", err)
		}
		return err
	}

	s.invalidateList(ctx)

	log.Info().Int64("article_id", id).Bool("author_updated", !authorPatch.IsEmpty()).Msg("Article updated")
	return nil
}

func (s *articleService) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, model.ErrInvalidArticleID
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidateList(ctx)
	}
	return n, nil
}

func (s *articleService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.invalidateList(ctx)

	log.Info().Int64("deleted", n).Msg("All articles deleted")
	return n, nil
}

func (s *articleService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, ListGenerationKey); err != nil {
		log.Warn().Err(err).Str("key", ListGenerationKey).Msg("Cache invalidation failed, listing may be stale until TTL")
	}
}
