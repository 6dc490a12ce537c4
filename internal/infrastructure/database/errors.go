package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"article-catalog/internal/shared/apperror"
)

// PostgreSQL SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeStringTooLong       = "22001"
	codeInvalidDatetime     = "22007"
	codeInvalidText         = "22P02"
)

var errInvalidInput = apperror.New(apperror.KindValidation, "INVALID_INPUT", "value rejected by storage")

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// IsInvalidInput covers values rejected by column types or constraints
func IsInvalidInput(err error) bool {
	switch pgCode(err) {
	case codeNotNullViolation, codeStringTooLong, codeInvalidDatetime, codeInvalidText:
		return true
	}
	return false
}

// IsUnavailable reports connection failures and timeouts
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// Wrap turns a driver error into the error a repository returns.
// Unavailable storage and invalid input become typed AppErrors, anything
// else is wrapped with op for the log.
func Wrap(op string, err error) error {
	switch {
	case IsUnavailable(err):
		return apperror.StorageUnavailable.Wrap(fmt.Errorf("%s: %w", op, err))
	case IsInvalidInput(err):
		return errInvalidInput.Wrap(fmt.Errorf("%s: %w", op, err))
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
