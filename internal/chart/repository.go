package chart

import "context"

// Repository defines the storage interface for rows.
type Repository interface {
	// ListRows returns every stored row. Parents is not filled.
	ListRows(ctx context.Context) ([]*Row, error)

	// SaveRow inserts or replaces a row.
	SaveRow(ctx context.Context, row *Row) error

	// DeleteRow removes a row and moves its children up to its parent.
	// Returns ErrRowNotFound if no row has the id.
	DeleteRow(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
