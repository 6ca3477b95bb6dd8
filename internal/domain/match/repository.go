package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)

	// ReplaceBySeason swaps the season's full fixture set in one transaction.
	// Fixture generation is a full replace, never an append.
	ReplaceBySeason(ctx context.Context, seasonID string, matches []Match) error

	// DeleteBySeason removes every match row for the season together with the
	// derived standings rows, as one unit. A result write racing the delete
	// loses with ErrNotFound.
	DeleteBySeason(ctx context.Context, seasonID string) error

	// RecordResult moves a match to completed with both scores, only from a
	// status where completion is legal. Returns ErrAlreadyResolved when the
	// stored status is already completed or cancelled.
	RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (Match, error)
}
