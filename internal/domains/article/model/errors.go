package model

import "article-catalog/internal/shared/apperror"

var (
	ErrInvalidArticleID   = apperror.New(apperror.KindValidation, "INVALID_ARTICLE_ID", "article id must be a positive integer")
	ErrInvalidTitle       = apperror.New(apperror.KindValidation, "INVALID_TITLE", "title is required")
	ErrInvalidBody        = apperror.New(apperror.KindValidation, "INVALID_BODY", "body is required")
	ErrInvalidPublishedOn = apperror.New(apperror.KindValidation, "INVALID_PUBLISHED_ON", "publishedOn must be a YYYY-MM-DD date")

	ErrArticleNotFound = apperror.New(apperror.KindNotFound, "ARTICLE_NOT_FOUND", "article not found")

	// ErrUnknownAuthor: insert referenced an author_id that does not exist.
	// Resolution always precedes insertion, so seeing this means a bug or a
	// concurrent manual delete.
	ErrUnknownAuthor = apperror.New(apperror.KindReferentialIntegrity, "UNKNOWN_AUTHOR", "article references an unknown author")
)
