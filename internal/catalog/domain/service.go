package domain

import "context"

// Store is the transport to the spreadsheet backend.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, product Product) error
	Delete(ctx context.Context, id int64) error
	PatchStock(ctx context.Context, id int64, stock int64) error
}

// Service is the catalog as seen by the panel. Every mutation invalidates
// the cached catalog and refetches it in full before returning; this trades
// one extra round trip per mutation for never tracking partial state.
type Service interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, product Product) error
	Remove(ctx context.Context, id int64) error
	PatchStock(ctx context.Context, id int64, stock int64) error

	Loaded() bool
	Products() []Product
	Search(query string) []Product
}
