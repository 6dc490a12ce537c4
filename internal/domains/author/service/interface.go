package service

import "context"

// ServiceInterface resolves author names to ids.
// It is the only place new authors are created at request time.
type ServiceInterface interface {
	// ResolveOrCreate returns the id of the author with this exact name,
	// creating it with url when absent. Concurrent callers racing on the
	// same new name all receive the same id.
	ResolveOrCreate(ctx context.Context, name string, url *string) (int64, error)
}
