package model

import "article-catalog/internal/shared/apperror"

var (
	// Validation Errors
	ErrInvalidName = apperror.New(apperror.KindValidation, "INVALID_AUTHOR_NAME", "author name is required")
	ErrNameTooLong = apperror.New(apperror.KindValidation, "AUTHOR_NAME_TOO_LONG", "author name exceeds 255 characters")
	ErrURLTooLong  = apperror.New(apperror.KindValidation, "AUTHOR_URL_TOO_LONG", "author url exceeds 255 characters")

	// Business Rule Errors
	ErrAuthorNotFound  = apperror.New(apperror.KindNotFound, "AUTHOR_NOT_FOUND", "author not found")
	ErrDuplicateAuthor = apperror.New(apperror.KindConflict, "DUPLICATE_AUTHOR", "an author with this name already exists")

	// ErrResolveConflict: insert hit the unique constraint but the winning
	// row could not be read back (e.g. renamed in between).
	ErrResolveConflict = apperror.New(apperror.KindConflict, "AUTHOR_RESOLVE_CONFLICT", "author was modified concurrently, retry the request")
)
