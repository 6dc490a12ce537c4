package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"article-catalog/internal/domains/author/model"
	"article-catalog/internal/domains/author/repository"
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

// ResolveOrCreate: find -> insert -> on unique violation find again.
// The database constraint is the only arbiter, so no lock is held here.
// The url is only used when the author is created; an existing author's
// url is never changed by resolution.
func (s *authorService) ResolveOrCreate(ctx context.Context, name string, url *string) (int64, error) {
	a, err := model.NewAuthor(name, url)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.FindIDByName(ctx, a.Name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return 0, err
	}

	id, err = s.repo.Create(ctx, a)
	if err == nil {
		log.Info().Int64("author_id", id).Str("author", a.Name).Msg("Author created")
		return id, nil
	}
	if !errors.Is(err, model.ErrDuplicateAuthor) {
		return 0, err
	}

	// Lost the race: someone else inserted the same name in between
	log.Debug().Str("author", a.Name).Msg("Author insert lost race, re-reading")

	id, err = s.repo.FindIDByName(ctx, a.Name)
	if errors.Is(err, model.ErrAuthorNotFound) {
		return 0, model.ErrResolveConflict
	}
	return id, err
}
