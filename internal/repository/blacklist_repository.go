package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type blacklistRepository struct {
	db *sqlx.DB
}

func NewBlacklistRepository(db *sqlx.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

// IsBlacklisted matches the full name exactly, case-sensitive.
func (r *blacklistRepository) IsBlacklisted(ctx context.Context, fullName string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blacklist WHERE full_name = $1)`

	var found bool
	err := r.db.GetContext(ctx, &found, query, fullName)
	if err != nil {
		return false, err
	}

	return found, nil
}
