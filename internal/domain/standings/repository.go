package standings

import "context"

// Repository describes standings persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Row, error)

	// ReplaceBySeason discards the season's prior row set and writes the new
	// one in a single transaction, so a reader never observes a mix of two
	// computations.
	ReplaceBySeason(ctx context.Context, seasonID string, rows []Row) error
}
