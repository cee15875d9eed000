package driveauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finance-tracker-api/internal/application/apperrors"
	domain "finance-tracker-api/internal/domain/driveauth"
	"finance-tracker-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, req *domain.Credential) error {
	_, err := r.db.Exec(
		ctx,
		UpsertCredential,
		req.UserID, req.EncryptedRefreshToken, req.Scopes,
	)
	return err
}

func (r *Repository) Fetch(ctx context.Context, userID string) (*domain.Credential, error) {
	c := new(domain.Credential)

	err := r.db.QueryRow(ctx, SelectCredential, userID).Scan(
		&c.UserID,
		&c.EncryptedRefreshToken,
		&c.Scopes,
		&c.LastValidatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no drive credential for user", apperrors.ErrNotConnected)
		}
		return nil, err
	}

	return c, nil
}

func (r *Repository) Touch(ctx context.Context, userID string, validatedAt time.Time) error {
	_, err := r.db.Exec(ctx, TouchCredential, userID, validatedAt)
	return err
}

func (r *Repository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, DeleteCredential, userID)
	return err
}

func (r *Repository) FetchUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, SelectUserIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
